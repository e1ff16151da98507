package addrmap

import "fmt"

// MalformedRowError is returned for a row of a known kind that can not be parsed.
type MalformedRowError struct {
	Line int
	Kind Kind
	Msg  string
	Err  error
}

func (e *MalformedRowError) Error() string {
	msg := fmt.Sprintf("malformed %s row at line %d: %s", e.Kind, e.Line, e.Msg)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}
