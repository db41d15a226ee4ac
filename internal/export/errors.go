package export

import "fmt"

// EmptySelectionError is returned when an export is requested with zero
// qualifying pages. No output file is written.
type EmptySelectionError struct{}

func (e *EmptySelectionError) Error() string {
	return "no pages selected for export"
}

// EncodingError reports a codec or assembly failure mid-export. The
// current export is aborted and no partial output is left at the
// destination. Page is 1-based, or 0 when the failure is not tied to a
// single page.
type EncodingError struct {
	Page int
	Err  error
}

func (e *EncodingError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("encoding failed on page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("encoding failed: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
