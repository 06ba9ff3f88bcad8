package cli

import (
	"slices"
	"strings"
)

// ErrorMap collects one error per named item so a command can report every
// failure at once.
type ErrorMap struct {
	Title  string
	Errors map[string]error
}

func (e *ErrorMap) Error() string {
	if len(e.Errors) == 0 {
		return ""
	}

	builder := strings.Builder{}
	if e.Title != "" {
		builder.WriteString(e.Title + ":\n")
	} else {
		builder.WriteString("Errors:\n")
	}
	names := make([]string, 0, len(e.Errors))
	for name := range e.Errors {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(e.Errors[name].Error())
		builder.WriteString("\n")
	}
	return builder.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ErrorMap) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		errs = append(errs, err)
	}
	return errs
}

func (e *ErrorMap) AddError(name string, err error) {
	if e.Errors == nil {
		e.Errors = make(map[string]error)
	}
	e.Errors[name] = err
}

func (e *ErrorMap) HasErrors() bool {
	return len(e.Errors) > 0
}

// Err returns e if it holds any errors and nil otherwise.
func (e *ErrorMap) Err() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
