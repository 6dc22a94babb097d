package wadfile

import (
	"bytes"
	"strings"
)

// lumpName decodes a fixed-size, zero-padded lump name.
func lumpName(data []byte) string {
	if i := bytes.IndexByte(data, 0); i != -1 {
		data = data[:i]
	}
	return strings.ToUpper(string(data))
}
