package screen

import "fmt"

// NotOnScreenError reports an address outside the current screen's bounds.
// Every positional screen API returns this instead of panicking.
type NotOnScreenError struct {
	Row, Col int
	Rows, Cols int
}

func (e *NotOnScreenError) Error() string {
	return fmt.Sprintf("screen: row=%d col=%d outside %dx%d screen", e.Row, e.Col, e.Rows, e.Cols)
}

// ErrNoSavedErrorLine is returned by RestoreErrorLine when no line was saved.
type ErrNoSavedErrorLine struct{}

func (e *ErrNoSavedErrorLine) Error() string { return "screen: no saved error line to restore" }
