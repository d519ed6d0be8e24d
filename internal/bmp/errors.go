package bmp

import "fmt"

// IOError reports that a bitmap source or destination could not be opened,
// read or written. It is the only error the codec produces: malformed headers
// and short pixel payloads are accepted as declared.
type IOError struct {
	Op   string // "open", "read", "seek", "create" or "write"
	Path string // Empty when decoding from a plain reader
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("bmp: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("bmp: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
