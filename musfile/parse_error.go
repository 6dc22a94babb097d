package musfile

import (
	"fmt"
)

// ParseError describes a malformed MUS lump.
type ParseError struct {
	// Stage is a parser stage that failed, like "header" or "instrument[3]".
	Stage string

	Message string

	// Offset is a byte offset inside the lump.
	Offset int
}

func (e *ParseError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("%s (offset=%d)", e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: %s (offset=%d)", e.Stage, e.Message, e.Offset)
}
