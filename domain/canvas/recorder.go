package canvas

import (
	"fmt"
	"image/color"
	"strings"
)

// Op is one recorded surface call.
type Op struct {
	Name  string
	Args  []float64
	Color color.NRGBA
}

func (o Op) String() string {
	if o.Name == "SetFillColor" {
		return fmt.Sprintf("%s(%d,%d,%d,%d)", o.Name, o.Color.R, o.Color.G, o.Color.B, o.Color.A)
	}
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = fmt.Sprintf("%g", a)
	}
	return o.Name + "(" + strings.Join(parts, ",") + ")"
}

// Recorder is a surface that records every call in order, optionally
// forwarding to another surface. FailFill makes Fill return that error.
type Recorder struct {
	Ops      []Op
	Next     Surface
	FailFill error
}

// Surface mirrors lipstick.Surface so Recorder can forward without an import
// cycle.
type Surface interface {
	SetFillColor(c color.NRGBA)
	SetBlur(radiusPx float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Fill() error
}

func (r *Recorder) SetFillColor(c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Name: "SetFillColor", Color: c})
	if r.Next != nil {
		r.Next.SetFillColor(c)
	}
}

func (r *Recorder) SetBlur(radiusPx float64) {
	r.Ops = append(r.Ops, Op{Name: "SetBlur", Args: []float64{radiusPx}})
	if r.Next != nil {
		r.Next.SetBlur(radiusPx)
	}
}

func (r *Recorder) BeginPath() {
	r.Ops = append(r.Ops, Op{Name: "BeginPath"})
	if r.Next != nil {
		r.Next.BeginPath()
	}
}

func (r *Recorder) MoveTo(x, y float64) {
	r.Ops = append(r.Ops, Op{Name: "MoveTo", Args: []float64{x, y}})
	if r.Next != nil {
		r.Next.MoveTo(x, y)
	}
}

func (r *Recorder) LineTo(x, y float64) {
	r.Ops = append(r.Ops, Op{Name: "LineTo", Args: []float64{x, y}})
	if r.Next != nil {
		r.Next.LineTo(x, y)
	}
}

func (r *Recorder) Fill() error {
	r.Ops = append(r.Ops, Op{Name: "Fill"})
	if r.FailFill != nil {
		return r.FailFill
	}
	if r.Next != nil {
		return r.Next.Fill()
	}
	return nil
}

// Reset drops recorded calls.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Transcript renders the recorded calls one per line.
func (r *Recorder) Transcript() string {
	var b strings.Builder
	for _, op := range r.Ops {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Count returns how many recorded calls have the given name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

var (
	_ Surface = (*Recorder)(nil)
	_ Surface = (*GGSurface)(nil)
)
