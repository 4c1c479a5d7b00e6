package cam

// FusePan resolves the frame's pan input from the available sources. An
// active drag pointer wins exclusively; otherwise a non-zero camera axis
// drives the pan; otherwise the pan target is left alone.
func FusePan(dragActive bool, dragDX, dragDY, axisX, axisZ float64) PanInput {
	if dragActive {
		return PanInput{Source: PanDrag, X: dragDX, Z: dragDY}
	}
	if axisX != 0 || axisZ != 0 {
		return PanInput{Source: PanAxis, X: axisX, Z: axisZ}
	}
	return PanInput{Source: PanNone}
}
