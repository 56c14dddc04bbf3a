package editorcore

import "fmt"

// CommandError is the sum type of every error execute can return. An error
// never mutates state: version, text, carets, and the undo stack are left
// exactly as they were before the failed command.
type CommandError interface {
	error
	commandError()
}

// InvalidOffsetError reports a character offset outside [0, char_count].
type InvalidOffsetError struct {
	Offset int
}

func (e InvalidOffsetError) Error() string { return fmt.Sprintf("invalid offset: %d", e.Offset) }
func (InvalidOffsetError) commandError()   {}

// InvalidPositionError reports a (line, column) outside the document.
type InvalidPositionError struct {
	Line   int
	Column int
}

func (e InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position: line %d, column %d", e.Line, e.Column)
}
func (InvalidPositionError) commandError() {}

// InvalidRangeError reports a malformed or out-of-bounds [Start, End) range.
type InvalidRangeError struct {
	Start int
	End   int
}

func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: %d..%d", e.Start, e.End)
}
func (InvalidRangeError) commandError() {}

// InvalidLineRangeError reports a malformed or out-of-bounds [StartLine, EndLine] fold range.
type InvalidLineRangeError struct {
	StartLine int
	EndLine   int
}

func (e InvalidLineRangeError) Error() string {
	return fmt.Sprintf("invalid line range: %d..%d", e.StartLine, e.EndLine)
}
func (InvalidLineRangeError) commandError() {}

// EmptyTextError reports an Insert command whose text is empty.
type EmptyTextError struct{}

func (EmptyTextError) Error() string { return "text cannot be empty" }
func (EmptyTextError) commandError() {}

// OtherError covers logic errors that are not a malformed argument: nothing
// to undo/redo, a search pattern that fails to compile, and similar
// unreachable-invariant reports. A search with no match is not an error: it
// returns a ResultSearchNotFound result.
type OtherError struct {
	Message string
}

func (e OtherError) Error() string { return e.Message }
func (OtherError) commandError()   {}

// newOtherError builds an OtherError from a formatted message.
func newOtherError(format string, args ...any) OtherError {
	return OtherError{Message: fmt.Sprintf(format, args...)}
}
