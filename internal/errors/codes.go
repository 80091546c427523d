package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInsufficientXP     Code = "INSUFFICIENT_XP"
	CodeInternal           Code = "INTERNAL"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Kind is the caller-facing error category reported in operation results.
type Kind string

// Error kinds
const (
	KindNone            Kind = ""
	KindNotFound        Kind = "NotFound"
	KindValidationError Kind = "ValidationError"
	KindInsufficientXP  Kind = "InsufficientXp"
	KindDatabaseError   Kind = "DatabaseError"
)

// Kind collapses the code into the caller-facing category.
// Anything that is not a known business failure came from storage.
func (c Code) Kind() Kind {
	switch c {
	case CodeOK:
		return KindNone
	case CodeNotFound:
		return KindNotFound
	case CodeInvalidArgument, CodeAlreadyExists, CodeFailedPrecondition:
		return KindValidationError
	case CodeInsufficientXP:
		return KindInsufficientXP
	default:
		return KindDatabaseError
	}
}
