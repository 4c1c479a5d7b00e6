// Package narrate runs an optional tengo script that turns POI selections
// into caption lines. Scripts run on detached goroutines and publish into a
// single result cell the frame loop polls, so a slow script never stalls a
// frame.
package narrate

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Line is one caption produced by the script.
type Line struct {
	ID   string
	Text string
}

const dispatchScript = `
__caption = narrate(__poi, __visited)
`

// Narrator owns the compiled script and the result cell. A nil *Narrator is
// usable and never produces lines.
type Narrator struct {
	compiled *tengo.Compiled
	cell     atomic.Pointer[Line]
}

// New compiles a narration script. The script must define
// narrate(id, visited) returning the caption text.
func New(src []byte) (*Narrator, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+dispatchScript)...))
	_ = script.Add("__poi", "")
	_ = script.Add("__visited", false)
	_ = script.Add("__caption", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("narrate: compile: %w", err)
	}
	return &Narrator{compiled: compiled}, nil
}

// Announce runs the script for a selected POI on a detached goroutine. The
// result lands in the cell for a later Poll; errors are logged and dropped.
func (n *Narrator) Announce(id string, visited bool) {
	if n == nil || n.compiled == nil || id == "" {
		return
	}
	c := n.compiled.Clone()
	go func() {
		if err := c.Set("__poi", id); err != nil {
			log.Printf("narrate: %s: %v", id, err)
			return
		}
		if err := c.Set("__visited", visited); err != nil {
			log.Printf("narrate: %s: %v", id, err)
			return
		}
		if err := c.Run(); err != nil {
			log.Printf("narrate: %s: %v", id, err)
			return
		}
		text := strings.TrimSpace(c.Get("__caption").String())
		text = strings.Trim(text, "\"")
		if text == "" {
			return
		}
		n.cell.Store(&Line{ID: id, Text: text})
	}()
}

// Poll takes the pending caption, if any. Only the most recent announcement
// is kept; older unread lines are overwritten.
func (n *Narrator) Poll() (Line, bool) {
	if n == nil {
		return Line{}, false
	}
	if l := n.cell.Swap(nil); l != nil {
		return *l, true
	}
	return Line{}, false
}
