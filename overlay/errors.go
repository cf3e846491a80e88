package overlay

import "fmt"

// ResourceLoadError reports a mask or template image that cannot be used: it
// failed to decode, or does not fit the rest of the library.
type ResourceLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ResourceLoadError) Error() string {
	msg := e.Reason
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}
