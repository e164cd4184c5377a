package apierror

// kinds.go defines the typed error kinds returned by the service layer.
//
// Handlers map kinds to HTTP statuses; callers inside the module use
// errors.As / KindOf to branch. Restricted and Protected share the same
// observable blocking behavior but are distinct so a client can tell
// "reassign child records first" (category) from "reassign dependents
// first" (supplier).

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindRestricted // delete blocked: RESTRICT relation (e.g. product → category)
	KindProtected  // delete blocked: PROTECT relation (e.g. product → supplier)
	KindConflict   // duplicate unique value
)

// Error is the domain error carried from services up to handlers.
type Error struct {
	Kind   Kind
	Detail string
	Fields map[string]string // populated for KindValidation only
}

func (e *Error) Error() string { return e.Detail }

func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

func ValidationFields(detail string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: detail, Fields: fields}
}

func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

func Restricted(detail string) *Error {
	return &Error{Kind: KindRestricted, Detail: detail}
}

func Protected(detail string) *Error {
	return &Error{Kind: KindProtected, Detail: detail}
}

func Conflict(detail string) *Error {
	return &Error{Kind: KindConflict, Detail: detail}
}

// KindOf extracts the kind from any error in the chain; KindUnknown for
// plain errors (DB failures and the like).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
