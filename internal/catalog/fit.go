package catalog

import "fmt"

// Fit scales an image of natural size nw x nh uniformly so it fits inside
// target, and centers it. Small images are scaled up to fill the target.
func Fit(nw, nh int, target Rect) (Rect, error) {
	if nw <= 0 || nh <= 0 {
		return Rect{}, fmt.Errorf("%w: natural size %dx%d", ErrUnreadableImage, nw, nh)
	}
	scale := min(target.W/float64(nw), target.H/float64(nh))
	w := float64(nw) * scale
	h := float64(nh) * scale
	return Rect{
		X: target.X + (target.W-w)/2,
		Y: target.Y + (target.H-h)/2,
		W: w,
		H: h,
	}, nil
}
