package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateHotel = errors.New("duplicate hotel id")

	ErrLocationDenied      = errors.New("location permission denied")
	ErrLocationUnsupported = errors.New("location lookup unsupported")
	ErrLocationTimeout     = errors.New("location lookup timed out")
	ErrInvalidLocation     = errors.New("invalid coordinates")
)
