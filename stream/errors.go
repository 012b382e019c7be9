package stream

import "fmt"

// Error represents a stream grammar error. Path locates the value being
// written or read when the error occurred.
type Error struct {
	Msg  string
	Path string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s at %s", e.Msg, e.Path)
}
