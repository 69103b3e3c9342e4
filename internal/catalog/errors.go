package catalog

import "errors"

var (
	// ErrInvalidGeometry means the page, margins or grid leave no positive area to draw in.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrUnreadableImage means an image record has missing or zero natural dimensions.
	ErrUnreadableImage = errors.New("unreadable image")
)
