package taxme

import (
	"fmt"
	"strings"
)

// Codec converts a delimited text line to cells and back.
//
// There is no quoting: a delimiter inside a value cannot be told apart from a field
// separator.
type Codec struct {
	Delimiter rune // ',' when zero
}

func (c Codec) delimiter() string {
	if c.Delimiter == 0 {
		return ","
	}
	return string(c.Delimiter)
}

// Decode splits line into cells. A trailing delimiter yields a trailing empty cell.
func (c Codec) Decode(line string) []string {
	return strings.Split(line, c.delimiter())
}

// Encode joins cells into a line, without a trailing delimiter.
func (c Codec) Encode(cells []string) (string, error) {
	if len(cells) == 0 {
		return "", fmt.Errorf("cannot encode: %w", ErrEmptyRow)
	}
	return strings.Join(cells, c.delimiter()), nil
}
