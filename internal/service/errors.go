package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/domain"
)

var (
	// ErrForbidden is returned when the session may not perform an action.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState is returned when an entity is not in a state that
	// allows the action, such as editing a job that is already in progress.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidCredentials is returned by Login for any email or password mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func requireAuth(sess domain.Session) error {
	if !sess.Authenticated() {
		return fmt.Errorf("%w: sign in first", ErrForbidden)
	}
	return nil
}

func requireStudent(sess domain.Session) error {
	if !sess.IsStudent() {
		return fmt.Errorf("%w: only students can do this", ErrForbidden)
	}
	return nil
}

func requireEmployer(sess domain.Session) error {
	if !sess.IsEmployer() {
		return fmt.Errorf("%w: only employers can do this", ErrForbidden)
	}
	return nil
}

func invalidState(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidState, err)
}
