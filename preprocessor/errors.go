package preprocessor

import (
	"fmt"
)

// ProviderError wraps any error returned by a Provider.
type ProviderError struct {
	// File is the include path as written in the directive that triggered the
	// failing call.
	File string
	Err  error
}

func (err ProviderError) Error() string {
	return fmt.Sprintf("include provider error: %v when trying to include %q", err.Err, err.File)
}

func (err ProviderError) Unwrap() error {
	return err.Err
}

// RecursiveIncludeError is returned when a file includes one of its own
// ancestors.
type RecursiveIncludeError struct {
	// File is the file that was included recursively.
	File string
	// From is the file containing the offending directive.
	From string
	// Line is the 1-based line of the directive in From.
	Line int
}

func (err RecursiveIncludeError) Error() string {
	return fmt.Sprintf("file %q is recursively included; triggered in %q (%d)", err.File, err.From, err.Line)
}

// ParseError is returned for a malformed include directive.
type ParseError struct {
	File string
	Line int
}

func (err ParseError) Error() string {
	return fmt.Sprintf("parse error: malformed include directive in %q (%d)", err.File, err.Line)
}
