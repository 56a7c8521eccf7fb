package clipboard

import (
	"fmt"

	osclip "github.com/atotto/clipboard"
)

// System writes to the operating system clipboard.
type System struct{}

func (System) WriteText(text string) error {
	if osclip.Unsupported {
		return ErrDenied
	}
	if err := osclip.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrDenied, err)
	}
	return nil
}
