// Package rendering renders developer pages to HTML.
package rendering

import "fmt"

// TemplateError represents an error parsing a page template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure executing a page template
type RenderError struct {
	Page    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error (%s): %s: %v", e.Page, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error (%s): %s", e.Page, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
