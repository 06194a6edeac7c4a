package mft

import (
	"fmt"
	"strings"
)

// Error is a syntax error at a source position. Hint, when set, suggests
// a fix and is printed in parentheses after the message.
type Error struct {
	Pos     Position
	Message string
	Hint    string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: error: %s", e.Pos, e.Message)
	if e.Hint == "" {
		return msg
	}
	return msg + " (" + e.Hint + ")"
}

// NewErrorf returns an Error with a formatted message and no hint.
func NewErrorf(pos Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// ErrorList is an ordered list of errors. It is itself an error, printing
// one error per line.
type ErrorList struct {
	errors []*Error
}

func NewErrorList() *ErrorList {
	return &ErrorList{}
}

func (el *ErrorList) Add(err *Error) {
	el.errors = append(el.errors, err)
}

func (el *ErrorList) AddErrorf(pos Position, format string, args ...any) {
	el.Add(NewErrorf(pos, format, args...))
}

func (el *ErrorList) Len() int {
	return len(el.errors)
}

func (el *ErrorList) HasErrors() bool {
	return len(el.errors) > 0
}

// Errors returns a copy of the recorded errors.
func (el *ErrorList) Errors() []*Error {
	return append([]*Error(nil), el.errors...)
}

// First returns the earliest recorded error, or nil.
func (el *ErrorList) First() *Error {
	if len(el.errors) == 0 {
		return nil
	}
	return el.errors[0]
}

func (el *ErrorList) Error() string {
	lines := make([]string, len(el.errors))
	for i, err := range el.errors {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// Err returns the list as an error, or nil when it is empty.
func (el *ErrorList) Err() error {
	if len(el.errors) == 0 {
		return nil
	}
	return el
}
