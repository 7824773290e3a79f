/*
Package core holds error taxonomy and primitive types shared by the
layout scheduler and its collaborators.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package core

import (
	"errors"
	"fmt"
	"os"
)

// Error kinds surfaced by the layout scheduler and its collaborators (spec §7).
const (
	NOERROR int = 0

	// produced by the core itself
	ENoColumns          int = 200 // scheduler reached zero present columns when ≥1 was expected
	ENoMoreWords        int = 201 // fit search asked to operate on an already-exhausted cursor
	ERenderFailed       int = 202 // renderer oracle returned an error
	EExtractFailed      int = 203 // line-extraction oracle failed on a rendered PDF
	EMinLinesFailed     int = 204 // every column measurement failed during min computation

	// produced by collaborators, merely surfaced here
	EParseFailed        int = 210 // upstream Markdown parse failure
	ENoFont             int = 211
	EConfigRead         int = 212
	EConfigParse        int = 213
	ERawTextRead        int = 214
	ENumberOfParagraphs int = 215
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case ENoColumns:
		return "no columns present"
	case ENoMoreWords:
		return "no more words"
	case ERenderFailed:
		return "render failed"
	case EExtractFailed:
		return "line extraction failed"
	case EMinLinesFailed:
		return "minimum-line computation failed"
	case EParseFailed:
		return "markdown parse failed"
	case ENoFont:
		return "font not found"
	case EConfigRead:
		return "could not read configuration"
	case EConfigParse:
		return "could not parse configuration"
	case ERawTextRead:
		return "could not read source text"
	case ENumberOfParagraphs:
		return "unexpected number of paragraphs"
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	return fmt.Sprintf("[%d] %v", e.code, e.error)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

var _ AppError = coreError{}

// WrapError wraps an error in a core error, featuring an error code and
// a user message. If err is nil, an error denoting the code's default
// text is created first.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Error creates an error with an error code and a user-message, with no
// underlying cause.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EMinLinesFailed as the catch-all.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EMinLinesFailed
}

// UserMessage returns the user message associated with an error.
// If no message is found, it falls back to the code's default text.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// ErrNoColumns reports that the scheduler reached a state with zero
// present columns when at least one was expected.
func ErrNoColumns() error {
	return Error(ENoColumns, "layout reached a fragment with no present columns")
}

// ErrNoMoreWords reports that a fit search was asked to operate on an
// already-exhausted cursor.
func ErrNoMoreWords(position string) error {
	return Error(ENoMoreWords, "cursor %s has no more words", position)
}

// ErrRenderFailed wraps a renderer-oracle failure, carrying detail (for
// the engine, its captured output) in the user message.
func ErrRenderFailed(detail string, cause error) error {
	return WrapError(cause, ERenderFailed, "render failed: %s", detail)
}

// ErrExtractFailed wraps a line-extraction failure on a rendered PDF.
func ErrExtractFailed(detail string, cause error) error {
	return WrapError(cause, EExtractFailed, "line extraction failed: %s", detail)
}

// ErrMinLinesFailed aggregates the first failure encountered while
// measuring every present column's line count during min computation.
func ErrMinLinesFailed(cause error) error {
	return WrapError(cause, EMinLinesFailed, "every column measurement failed")
}

// UserError prints a failed page as a single line naming the kind and a
// short detail, matching the core's user-visible failure contract (§7).
func UserError(err error) {
	if e, ok := err.(AppError); ok {
		fmt.Fprintf(os.Stderr, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}
