package app

import "errors"

// ErrorKind classifies service failures. The HTTP layer maps each kind to
// exactly one status code.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuthRequired
	KindInvalidToken
	KindTokenExpired
	KindInvalidCredentials
	KindForbidden
	KindNotFound
	KindConflict
	KindConfiguration
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthRequired:
		return "auth_required"
	case KindInvalidToken:
		return "invalid_token"
	case KindTokenExpired:
		return "token_expired"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindConfiguration:
		return "configuration"
	default:
		return "internal"
	}
}

// Error is a classified failure whose Message is safe to show to clients.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind and message, so a sentinel re-raised with a
// cause attached still satisfies errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == e.Message
}

func (e *Error) with(cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: cause}
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func validationError(message string) *Error {
	return newError(KindValidation, message)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

var (
	ErrAuthRequired      = newError(KindAuthRequired, "Authentication required")
	ErrInvalidToken      = newError(KindInvalidToken, "Invalid token")
	ErrTokenExpired      = newError(KindTokenExpired, "Token expired")
	ErrInvalidCredential = newError(KindInvalidCredentials, "Invalid credentials")
	ErrServerConfig      = newError(KindConfiguration, "Server configuration error")

	ErrInvalidEmail        = validationError("Invalid email format")
	ErrWeakPassword        = validationError("Password must be at least 8 characters with uppercase, lowercase, and number")
	ErrInvalidName         = validationError("Name is required")
	ErrNameTooLong         = validationError("Name must be at most 128 characters")
	ErrCredentialsRequired = validationError("Email and password are required")
	ErrInvalidTitle        = validationError("Title must be at least 3 characters")
	ErrTitleTooLong        = validationError("Title must be at most 255 characters")
	ErrInvalidContent      = validationError("Content must be at least 10 characters")
	ErrInvalidComment      = validationError("Comment must be at least 2 characters long")
	ErrInvalidPagination   = validationError("Invalid pagination parameters")

	ErrUserNotFound    = newError(KindNotFound, "User not found")
	ErrPostNotFound    = newError(KindNotFound, "Post not found")
	ErrCommentNotFound = newError(KindNotFound, "Comment not found")

	ErrEmailExists = newError(KindConflict, "User with this email already exists")
	ErrSlugExists  = newError(KindConflict, "Post with this slug already exists")

	ErrPostUpdateForbidden    = newError(KindForbidden, "Unauthorized to update this post")
	ErrPostDeleteForbidden    = newError(KindForbidden, "Unauthorized to delete this post")
	ErrCommentUpdateForbidden = newError(KindForbidden, "Unauthorized to update this comment")
	ErrCommentDeleteForbidden = newError(KindForbidden, "Unauthorized to delete this comment")
)

// DeleteResult confirms a deletion.
type DeleteResult struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
