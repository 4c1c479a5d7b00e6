package geom

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Smoothing converts a per-second response rate into an interpolation factor
// for a frame of dt seconds. Two frames of dt/2 compose to the same result as
// one frame of dt, so damping speed does not depend on frame rate.
func Smoothing(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 || math.IsNaN(rate) || math.IsNaN(dt) {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// Damp moves current toward target with a time-constant exponential.
func Damp(current, target, rate, dt float64) float64 {
	return Lerp(current, target, Smoothing(rate, dt))
}

// WrapAngle maps an angle in radians to [-pi, pi).
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// DampAngle damps an angle toward target along the shortest arc, so a turn
// never travels more than pi radians.
func DampAngle(current, target, rate, dt float64) float64 {
	diff := WrapAngle(target - current)
	return WrapAngle(current + diff*Smoothing(rate, dt))
}
