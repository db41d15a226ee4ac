package document

import (
	"errors"
	"fmt"
)

// ErrNoReferencePage is returned when a page insert is requested on an
// empty document, which has no page size to copy.
var ErrNoReferencePage = errors.New("document is empty: no reference page size for insert")

// ParseError reports a malformed token in a page-range spec.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid page range token %q: %s", e.Token, e.Reason)
}
