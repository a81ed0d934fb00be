package application

import (
	"errors"
	"fmt"

	"github.com/oksasatya/go-hexagonal-users/internal/domain"
)

var (
	// ErrApplication is the root of every use-case failure.
	ErrApplication = errors.New("application error")

	// ErrUserAlreadyExists also matches domain.ErrDuplicateEntity.
	ErrUserAlreadyExists = &appError{msg: "user already exists", kind: domain.ErrDuplicateEntity}
	// ErrUserNotFound also matches domain.ErrEntityNotFound.
	ErrUserNotFound = &appError{msg: "user not found", kind: domain.ErrEntityNotFound}
)

// appError is a use-case sentinel that errors.Is matches against itself,
// ErrApplication and the domain kind it refines.
type appError struct {
	msg  string
	kind error
}

func (e *appError) Error() string { return e.msg }

func (e *appError) Is(target error) bool {
	return target == ErrApplication || errors.Is(e.kind, target)
}

func userAlreadyExists(email string) error {
	return fmt.Errorf("%w: email %s is already registered", ErrUserAlreadyExists, email)
}

func userNotFound(id fmt.Stringer) error {
	return fmt.Errorf("%w: no user with id %s", ErrUserNotFound, id)
}
