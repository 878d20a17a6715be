// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors with enough context to act on:
// what operation failed, which file or pack was involved, and what to try.
package issue

import (
	"errors"
	"strings"
)

type (
	// ActionableError is an error carrying operation, resource, and
	// suggestion context for CLI output.
	//
	// Use the Context builder for incremental construction:
	//
	//	err := issue.NewContext().
	//		Operation("load pack config").
	//		Resource("datapacks/1.21/graves/config.yaml").
	//		Suggest("Check the YAML syntax").
	//		Wrap(cause)
	ActionableError struct {
		// Op describes what was being attempted (e.g. "discover packs").
		Op string
		// Resource identifies the file, directory, or pack involved (optional).
		Resource string
		// Suggestions are hints on how to fix the issue (optional).
		Suggestions []string
		// Cause is the underlying error (optional).
		Cause error
	}

	// Context is a fluent builder for ActionableError. A Context can be
	// prepared up front and completed with Wrap when an error occurs.
	Context struct {
		op          string
		resource    string
		suggestions []string
	}
)

// NewContext creates an empty Context builder.
func NewContext() *Context {
	return &Context{}
}

// Operation sets what was being attempted.
func (c *Context) Operation(op string) *Context {
	c.op = op
	return c
}

// Resource sets the file, directory, or pack involved.
func (c *Context) Resource(resource string) *Context {
	c.resource = resource
	return c
}

// Suggest appends a hint on how to fix the issue.
func (c *Context) Suggest(suggestion string) *Context {
	c.suggestions = append(c.suggestions, suggestion)
	return c
}

// Wrap finishes the builder around a cause. It returns nil when err is nil so
// it can wrap call results directly.
func (c *Context) Wrap(err error) error {
	if err == nil {
		return nil
	}
	return &ActionableError{
		Op:          c.op,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       err,
	}
}

// Error implements the error interface. It returns the concise single-line
// form; Detail adds the suggestions.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Op)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ActionableError) Unwrap() error { return e.Cause }

// Detail returns the multi-line form with suggestions, for verbose output.
func (e *ActionableError) Detail() string {
	var msg strings.Builder
	msg.WriteString(e.Error())
	for _, s := range e.Suggestions {
		msg.WriteString("\n  - ")
		msg.WriteString(s)
	}
	return msg.String()
}

// SuggestionsOf extracts the suggestions from an error chain, or nil.
func SuggestionsOf(err error) []string {
	var actionable *ActionableError
	if errors.As(err, &actionable) {
		return actionable.Suggestions
	}
	return nil
}
