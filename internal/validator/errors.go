package validator

import "errors"

// Kind classifies a validation failure.
type Kind string

const (
	KindMissingField      Kind = "MissingField"
	KindAgeTooYoung       Kind = "AgeTooYoung"
	KindStartBeforeBirth  Kind = "StartBeforeBirth"
	KindInvalidState      Kind = "InvalidState"
	KindInvalidDepartment Kind = "InvalidDepartment"
	KindDuplicateEmployee Kind = "DuplicateEmployee"
)

var (
	ErrMissingField      = errors.New("missing field")
	ErrAgeTooYoung       = errors.New("employee is too young")
	ErrStartBeforeBirth  = errors.New("start date is not after date of birth")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidDepartment = errors.New("invalid department")
	ErrDuplicateEmployee = errors.New("duplicate employee")
)

var sentinels = map[Kind]error{
	KindMissingField:      ErrMissingField,
	KindAgeTooYoung:       ErrAgeTooYoung,
	KindStartBeforeBirth:  ErrStartBeforeBirth,
	KindInvalidState:      ErrInvalidState,
	KindInvalidDepartment: ErrInvalidDepartment,
	KindDuplicateEmployee: ErrDuplicateEmployee,
}

// Error is the single user-facing message produced by a failed validation.
// It matches its kind's sentinel with errors.Is.
type Error struct {
	Kind    Kind   `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}

func newError(kind Kind, field, message string) *Error {
	return &Error{Kind: kind, Field: field, Message: message}
}

// AsError extracts a validation error from err, if there is one.
func AsError(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
