package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	Validation          Kind = "validation"
	NotFoundOrForbidden Kind = "not_found_or_forbidden"
	Conflict            Kind = "conflict"
	Storage             Kind = "storage"
)

type Error struct {
	Kind Kind
	Op   string   // repository/service operation, e.g. "createOption"
	Msg  string   // safe to show to the merchant
	IDs  []string // offending ids for NotFoundOrForbidden
	// Fields maps request field -> message for Validation errors.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else {
		b.WriteString(string(e.Kind))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func ValidationErr(op, msg string) *Error {
	return &Error{Kind: Validation, Op: op, Msg: msg}
}

func FieldsErr(op string, fields map[string]string) *Error {
	return &Error{Kind: Validation, Op: op, Msg: "invalid option data", Fields: fields}
}

func NotFoundOrForbiddenErr(op string, ids []string) *Error {
	return &Error{
		Kind: NotFoundOrForbidden,
		Op:   op,
		Msg:  "options not found or not owned by shop: " + strings.Join(ids, ", "),
		IDs:  ids,
	}
}

func ConflictErr(op, msg string, err error) *Error {
	return &Error{Kind: Conflict, Op: op, Msg: msg, Err: err}
}

// StorageErr wraps an underlying read/write failure.
func StorageErr(op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: Storage, Op: op, Msg: "storage failure", Err: err}
}

func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf returns Storage for errors that are not *Error.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return Storage
}

func Is(err error, k Kind) bool {
	ae, ok := As(err)
	return ok && ae.Kind == k
}

// IsPersistence reports whether err came out of the storage boundary
// (constraint violations included).
func IsPersistence(err error) bool {
	k := KindOf(err)
	return k == Conflict || k == Storage
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case NotFoundOrForbidden:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func PublicMessage(err error) string {
	if ae, ok := As(err); ok {
		if ae.Kind == Storage {
			return "Something went wrong while saving options. Please try again."
		}
		if ae.Msg != "" {
			return ae.Msg
		}
	}
	return "Something went wrong while saving options. Please try again."
}
