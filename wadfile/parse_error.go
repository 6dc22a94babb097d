package wadfile

import (
	"fmt"
)

// ParseError describes a malformed archive.
type ParseError struct {
	Message string

	// Offset is a byte offset inside the archive.
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("wad: %s (offset=%d)", e.Message, e.Offset)
}
