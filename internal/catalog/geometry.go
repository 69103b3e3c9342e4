package catalog

import (
	"fmt"
	"math"
)

// Orientation of the page.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation accepts "portrait"/"p" and "landscape"/"l".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "portrait", "p", "P":
		return Portrait, nil
	case "landscape", "l", "L":
		return Landscape, nil
	default:
		return "", fmt.Errorf("unknown orientation %q", s)
	}
}

// Rect is an axis-aligned rectangle in points, origin at the page top-left.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether o lies inside r, allowing eps of slack on every edge.
func (r Rect) Contains(o Rect, eps float64) bool {
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.Right() <= r.Right()+eps && o.Bottom() <= r.Bottom()+eps
}

// Overlaps reports whether r and o share more than eps of area on both axes.
func (r Rect) Overlaps(o Rect, eps float64) bool {
	if r.Right() <= o.X+eps || o.Right() <= r.X+eps {
		return false
	}
	if r.Bottom() <= o.Y+eps || o.Bottom() <= r.Y+eps {
		return false
	}
	return true
}

// Margins in points.
type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// UniformMargins returns margins of m on every side.
func UniformMargins(m float64) Margins {
	return Margins{Top: m, Bottom: m, Left: m, Right: m}
}

// PageConfig describes the physical page. Width and Height are given for the
// portrait sheet; Landscape swaps them.
type PageConfig struct {
	Width       float64
	Height      float64
	Margins     Margins
	Orientation Orientation
}

// PageGeometry is a validated page with its usable region.
type PageGeometry struct {
	Width   float64 `json:"width"`  // after orientation
	Height  float64 `json:"height"` // after orientation
	Margins Margins `json:"margins"`
	Usable  Rect    `json:"usable"`
}

// NewPageGeometry applies orientation and margins and fails with
// ErrInvalidGeometry when nothing positive is left to draw in.
func NewPageGeometry(pc PageConfig) (PageGeometry, error) {
	w, h := pc.Width, pc.Height
	if pc.Orientation == Landscape {
		w, h = h, w
	}
	m := pc.Margins
	for _, v := range []float64{w, h, m.Top, m.Bottom, m.Left, m.Right} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return PageGeometry{}, fmt.Errorf("%w: page %.2fx%.2f with margins %+v", ErrInvalidGeometry, w, h, m)
		}
	}

	usableW := w - m.Left - m.Right
	usableH := h - m.Top - m.Bottom
	if usableW <= 0 || usableH <= 0 {
		return PageGeometry{}, fmt.Errorf("%w: usable area %.2fx%.2f on %.2fx%.2f page", ErrInvalidGeometry, usableW, usableH, w, h)
	}

	return PageGeometry{
		Width:   w,
		Height:  h,
		Margins: m,
		Usable:  Rect{X: m.Left, Y: m.Top, W: usableW, H: usableH},
	}, nil
}
