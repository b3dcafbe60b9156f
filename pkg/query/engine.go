package query

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"versailles/pkg/layout"

	"github.com/dop251/goja"
)

// Engine evaluates JavaScript queries against a laid-out flow tree. The
// tree is exposed as a plain object graph; scripts read geometry, marker
// state and damage but cannot reach back into layout.
type Engine struct {
	vm      *goja.Runtime
	console *consoleAPI
}

// New creates an engine with a fresh goja runtime and console bindings.
func New() *Engine {
	vm := goja.New()
	e := &Engine{vm: vm, console: newConsoleAPI()}
	e.console.register(vm)
	return e
}

// SetOutput redirects console.log and console.warn/error output.
func (e *Engine) SetOutput(out, errOut io.Writer) {
	e.console.out = out
	e.console.errOut = errOut
}

// Run exposes root as the global `document` and evaluates the script,
// returning the script's completion value.
func (e *Engine) Run(script string, root layout.Flow) (goja.Value, error) {
	e.vm.Set("document", e.flowObject(root))
	v, err := e.vm.RunString(script)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return v, nil
}

// flowObject converts a flow subtree into JS objects. The snapshot is taken
// eagerly: layout is final by the time a query runs, so nothing can go
// stale underneath the script.
func (e *Engine) flowObject(f layout.Flow) *goja.Object {
	vm := e.vm
	base := f.Base()

	obj := vm.NewObject()
	obj.Set("class", f.Class().String())
	obj.Set("tag", flowTag(f))
	obj.Set("text", flowText(f))
	obj.Set("position", string(f.Positioning()))
	obj.Set("borderBox", e.logicalRectObject(base.Position))
	obj.Set("stackingPosition", e.pointObject(base.StackingRelativePosition))
	obj.Set("damage", e.damageObject(base.Damage))
	obj.Set("overflow", e.overflowObject(f.ComputeOverflow()))

	markers := vm.NewArray()
	n := 0
	if li, ok := f.(*layout.ListItemFlow); ok {
		for i, m := range li.MarkerFragments {
			markers.Set(strconv.Itoa(i), e.markerObject(m))
		}
		n = len(li.MarkerFragments)
	}
	markers.Set("length", n)
	obj.Set("markers", markers)

	children := vm.NewArray()
	for i, child := range base.Children {
		children.Set(strconv.Itoa(i), e.flowObject(child))
	}
	children.Set("length", len(base.Children))
	obj.Set("children", children)

	return obj
}

// markerObject exposes one marker fragment: its text, geometry, and whether
// the content came from a counter or a replaced image.
func (e *Engine) markerObject(m *layout.Fragment) *goja.Object {
	vm := e.vm
	obj := vm.NewObject()
	obj.Set("text", m.Text)
	obj.Set("borderBox", e.logicalRectObject(m.BorderBox))
	obj.Set("generated", m.Generated != nil)
	if m.Replaced != nil {
		rep := vm.NewObject()
		rep.Set("naturalWidth", m.Replaced.NaturalWidth)
		rep.Set("naturalHeight", m.Replaced.NaturalHeight)
		obj.Set("replaced", rep)
	} else {
		obj.Set("replaced", goja.Null())
	}
	return obj
}

func (e *Engine) logicalRectObject(r layout.LogicalRect) *goja.Object {
	obj := e.vm.NewObject()
	obj.Set("x", r.InlineStart)
	obj.Set("y", r.BlockStart)
	obj.Set("width", r.InlineSize)
	obj.Set("height", r.BlockSize)
	return obj
}

func (e *Engine) rectObject(r layout.Rect) *goja.Object {
	obj := e.vm.NewObject()
	obj.Set("x", r.X)
	obj.Set("y", r.Y)
	obj.Set("width", r.Width)
	obj.Set("height", r.Height)
	return obj
}

func (e *Engine) pointObject(p layout.Point) *goja.Object {
	obj := e.vm.NewObject()
	obj.Set("x", p.X)
	obj.Set("y", p.Y)
	return obj
}

func (e *Engine) damageObject(d layout.RestyleDamage) *goja.Object {
	obj := e.vm.NewObject()
	obj.Set("repaint", d.Has(layout.DamageRepaint))
	obj.Set("reflow", d.Has(layout.DamageReflow))
	obj.Set("resolveGeneratedContent", d.Has(layout.DamageResolveGeneratedContent))
	return obj
}

func (e *Engine) overflowObject(o layout.Overflow) *goja.Object {
	obj := e.vm.NewObject()
	obj.Set("scroll", e.rectObject(o.Scroll))
	obj.Set("paint", e.rectObject(o.Paint))
	return obj
}

// flowTag reports the element tag a flow was built from, or "" for
// anonymous flows.
func flowTag(f layout.Flow) string {
	frag := principalFragment(f)
	if frag == nil || frag.Node == nil {
		return ""
	}
	return frag.Node.TagName
}

// flowText joins the flow's own text runs. Child flows carry their own.
func flowText(f layout.Flow) string {
	block := principalBlock(f)
	if block == nil {
		return ""
	}
	var parts []string
	for _, tf := range block.TextFragments {
		parts = append(parts, tf.Text)
	}
	return strings.Join(parts, " ")
}

func principalBlock(f layout.Flow) *layout.BlockFlow {
	switch flow := f.(type) {
	case *layout.BlockFlow:
		return flow
	case *layout.ListItemFlow:
		return flow.Block
	}
	return nil
}

func principalFragment(f layout.Flow) *layout.Fragment {
	if block := principalBlock(f); block != nil {
		return block.Fragment
	}
	return nil
}
