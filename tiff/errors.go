package tiff

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeader means the block does not start with a valid "Exif" signature and TIFF header.
	ErrInvalidHeader = errors.New("invalid exif header")
	// ErrCorruptDirectory means an IFD, or the link to it, lies outside the buffer.
	ErrCorruptDirectory = errors.New("corrupt directory")
)

func invalidHeader(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidHeader, fmt.Sprintf(format, args...))
}

func corruptDirectory(offset int, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: directory at offset %d", ErrCorruptDirectory, offset)
	}
	return fmt.Errorf("%w: directory at offset %d: %w", ErrCorruptDirectory, offset, cause)
}
