package cli

import (
	"github.com/alexanderramin/fleksjobb/internal/domain"
)

// SharedState holds context shared across all views via pointer.
// It is only touched from the bubbletea update loop.
type SharedState struct {
	App *App

	// Session is the signed-in account; the zero value is a visitor.
	Session domain.Session

	// Terminal dimensions
	Width  int
	Height int
}

// SignIn replaces the current session.
func (s *SharedState) SignIn(sess domain.Session) {
	s.Session = sess
}

// SignOut clears the session.
func (s *SharedState) SignOut() {
	s.Session = domain.Session{}
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
