package window

import (
	"fmt"

	"github.com/wavelength-fm/kiosk/internal/errors"
)

// Rect is a resolved bounding box in screen cells. Coordinates are floats
// so fractional layout composes without accumulating rounding until the
// renderer quantizes.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether o lies fully inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.W <= r.X+r.W+1e-9 && o.Y+o.H <= r.Y+r.H+1e-9
}

// LayoutKind selects how a node's box is derived from its parent's box.
type LayoutKind int

const (
	// LayoutFill takes the parent's box verbatim.
	LayoutFill LayoutKind = iota
	// LayoutFixed places a box of absolute size at an absolute offset
	// within the parent.
	LayoutFixed
	// LayoutFraction places a box whose position and size are fractions
	// of the parent's box, all in [0,1].
	LayoutFraction
	// LayoutAspectFit centers the largest box of a given aspect ratio
	// that fits within the parent.
	LayoutAspectFit
)

// Layout is a node's placement rule. Resolution needs only the parent's
// resolved box, so a single top-down pass lays out the whole tree.
type Layout struct {
	Kind LayoutKind

	// X, Y, W, H are cell offsets/sizes for LayoutFixed, or fractions of
	// the parent for LayoutFraction. Unused for other kinds.
	X, Y, W, H float64

	// Aspect is the width/height ratio for LayoutAspectFit.
	Aspect float64
}

// Fill returns the rule that mirrors the parent's box.
func Fill() Layout {
	return Layout{Kind: LayoutFill}
}

// Fixed returns an absolute-placement rule.
func Fixed(x, y, w, h float64) Layout {
	return Layout{Kind: LayoutFixed, X: x, Y: y, W: w, H: h}
}

// Fraction returns a parent-relative rule; all values are fractions in [0,1].
func Fraction(x, y, w, h float64) Layout {
	return Layout{Kind: LayoutFraction, X: x, Y: y, W: w, H: h}
}

// AspectFit returns a centered aspect-fitting rule.
func AspectFit(aspect float64) Layout {
	return Layout{Kind: LayoutAspectFit, Aspect: aspect}
}

// Validate rejects rules that could never resolve to a box inside a parent.
func (l Layout) Validate() error {
	switch l.Kind {
	case LayoutFill:
		return nil
	case LayoutFixed:
		if l.W < 0 || l.H < 0 {
			return errors.New(errors.ErrLayout,
				fmt.Sprintf("fixed layout has negative size (%vx%v)", l.W, l.H), "")
		}
	case LayoutFraction:
		for _, v := range []float64{l.X, l.Y, l.W, l.H} {
			if v < 0 || v > 1 {
				return errors.New(errors.ErrLayout,
					fmt.Sprintf("fraction layout value %v is outside [0,1]", v), "")
			}
		}
		if l.X+l.W > 1+1e-9 || l.Y+l.H > 1+1e-9 {
			return errors.New(errors.ErrLayout,
				"fraction layout extends past its parent", "")
		}
	case LayoutAspectFit:
		if l.Aspect <= 0 {
			return errors.New(errors.ErrLayout,
				fmt.Sprintf("aspect-fit layout needs a positive aspect ratio, got %v", l.Aspect), "")
		}
	default:
		return errors.New(errors.ErrLayout,
			fmt.Sprintf("unknown layout kind %d", l.Kind), "")
	}
	return nil
}

// Resolve computes the node's box from its parent's resolved box.
func (l Layout) Resolve(parent Rect) Rect {
	switch l.Kind {
	case LayoutFixed:
		return Rect{X: parent.X + l.X, Y: parent.Y + l.Y, W: l.W, H: l.H}

	case LayoutFraction:
		return Rect{
			X: parent.X + parent.W*l.X,
			Y: parent.Y + parent.H*l.Y,
			W: parent.W * l.W,
			H: parent.H * l.H,
		}

	case LayoutAspectFit:
		w := parent.W
		h := w / l.Aspect
		if h > parent.H {
			h = parent.H
			w = h * l.Aspect
		}
		return Rect{
			X: parent.X + (parent.W-w)/2,
			Y: parent.Y + (parent.H-h)/2,
			W: w,
			H: h,
		}

	default: // LayoutFill
		return parent
	}
}
