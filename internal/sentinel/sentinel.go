package sentinel

var _ error = Error("")

// Error is an immutable error backed by a string constant.
// Two Error values are equal when their text is equal, which is what
// errors.Is relies on when walking a wrapped chain.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}
