package cli

import (
	"errors"
	"strings"
	"sync"

	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/repository"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/alexanderramin/fleksjobb/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// effectQueue collects notices, navigations and session changes raised
// while a submission runs off the update loop. The owning view drains it
// into an effectsMsg once the submission settles.
type effectQueue struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (q *effectQueue) Notify(n form.Notice) { q.push(noticeMsg{notice: n}) }

func (q *effectQueue) Navigate(to route.Route) { q.push(navigateMsg{to: to, replace: true}) }

func (q *effectQueue) push(msg tea.Msg) {
	q.mu.Lock()
	q.msgs = append(q.msgs, msg)
	q.mu.Unlock()
}

func (q *effectQueue) drain() []tea.Msg {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.msgs
	q.msgs = nil
	return out
}

// flush returns a command delivering everything queued so far, or nil.
func (q *effectQueue) flush() tea.Cmd {
	msgs := q.drain()
	if len(msgs) == 0 {
		return nil
	}
	return func() tea.Msg { return effectsMsg{msgs: msgs} }
}

// describeError turns a service error into notice text.
func describeError(err error) string {
	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Fields.Summary()
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Wrong email or password"
	case errors.Is(err, repository.ErrNotFound):
		return "Not found"
	case errors.Is(err, service.ErrForbidden):
		return strings.TrimPrefix(err.Error(), service.ErrForbidden.Error()+": ")
	case errors.Is(err, service.ErrInvalidState):
		return strings.TrimPrefix(err.Error(), service.ErrInvalidState.Error()+": ")
	}
	return err.Error()
}
