package core

import "fmt"

// DirectoryReadError reports that a scan root could not be listed. It is
// fatal to that scan attempt: the displayed state resets to empty. Errors
// on individual children never surface; those entries are simply skipped.
type DirectoryReadError struct {
	Path string
	Err  error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryReadError) Unwrap() error { return e.Err }
