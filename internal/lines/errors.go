package lines

import "fmt"

// DuplicateLineError reports a line number declared more than once.
type DuplicateLineError struct {
	Number int
}

func (e *DuplicateLineError) Error() string {
	return fmt.Sprintf("duplicate line number %d", e.Number)
}
