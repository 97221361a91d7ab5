package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/route"
)

// DefaultLatency is the simulated round trip before an action runs.
const DefaultLatency = 1500 * time.Millisecond

// Receipt describes a successful action. Next overrides the submitter's
// default destination; Message becomes the success notice description.
type Receipt struct {
	Next    route.Route
	Message string
}

// Action performs the screen's side effect with validated data.
type Action func(ctx context.Context, data Values) (Receipt, error)

// Submitter drives one form instance through the submission state machine.
// It is safe for concurrent use: Begin is typically called from a UI event
// loop while Complete runs in a background command.
type Submitter struct {
	schema    Schema
	action    Action
	validator *Validator
	notifier  Notifier
	navigator Navigator
	latency   time.Duration
	next      route.Route
	logger    *slog.Logger

	successTitle string
	invalidTitle string
	failureTitle string

	mu     sync.Mutex
	status Status
	errs   Errors
}

// Option configures a Submitter.
type Option func(*Submitter)

func WithLatency(d time.Duration) Option { return func(s *Submitter) { s.latency = d } }
func WithNotifier(n Notifier) Option     { return func(s *Submitter) { s.notifier = n } }
func WithNavigator(n Navigator) Option   { return func(s *Submitter) { s.navigator = n } }
func WithValidator(v *Validator) Option  { return func(s *Submitter) { s.validator = v } }
func WithLogger(l *slog.Logger) Option   { return func(s *Submitter) { s.logger = l } }

// WithNext sets the route to navigate to after success when the action's
// Receipt does not name one.
func WithNext(r route.Route) Option { return func(s *Submitter) { s.next = r } }

// WithTitles overrides the success and failure notice titles.
func WithTitles(success, failure string) Option {
	return func(s *Submitter) {
		if success != "" {
			s.successTitle = success
		}
		if failure != "" {
			s.failureTitle = failure
		}
	}
}

func NewSubmitter(schema Schema, action Action, opts ...Option) *Submitter {
	s := &Submitter{
		schema:       schema,
		action:       action,
		validator:    defaultValidator,
		notifier:     discard{},
		navigator:    discard{},
		latency:      DefaultLatency,
		next:         route.Home,
		logger:       slog.New(slog.DiscardHandler),
		successTitle: "Saved",
		invalidTitle: "Please fix the highlighted fields",
		failureTitle: "Something went wrong",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = discard{}
	}
	if s.navigator == nil {
		s.navigator = discard{}
	}
	return s
}

func (s *Submitter) Schema() Schema { return s.schema }

func (s *Submitter) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Errors returns a copy of the current field errors.
func (s *Submitter) Errors() Errors {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(Errors, len(s.errs))
	for k, v := range s.errs {
		out[k] = v
	}
	return out
}

// Reset returns a succeeded or failed form to Idle so it can be reused.
// It has no effect while a submission is in flight.
func (s *Submitter) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == Validating || s.status == Submitting {
		return
	}
	s.status = Idle
	s.errs = nil
}

// Submit runs Begin and Complete back to back.
// A submit while another is in flight returns OutcomeIgnored and no error.
func (s *Submitter) Submit(ctx context.Context, values Values) (Outcome, error) {
	data, err := s.Begin(ctx, values)
	if errors.Is(err, ErrInFlight) {
		return OutcomeIgnored, nil
	}
	if err != nil {
		return OutcomeInvalid, err
	}
	return s.Complete(ctx, data)
}

// Begin validates values and, if they pass, locks the form in Submitting.
// Field errors are cleared before validation and replaced wholesale after.
// On failure the form returns to Idle, an error notice is shown and a
// *ValidationError is returned; no action runs.
func (s *Submitter) Begin(ctx context.Context, values Values) (Values, error) {
	s.mu.Lock()
	if s.status.Busy() {
		st := s.status
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "submit ignored", "form", s.schema.Name, "status", st.String())
		return nil, ErrInFlight
	}
	s.status = Validating
	s.errs = nil
	s.mu.Unlock()

	data, errs := s.validator.Validate(ctx, values, s.schema)

	s.mu.Lock()
	if len(errs) > 0 {
		s.status = Idle
		s.errs = errs
		s.mu.Unlock()
		s.logger.InfoContext(ctx, "form invalid", "form", s.schema.Name, "fields", errs.Names())
		s.notifier.Notify(Notice{Kind: NoticeError, Title: s.invalidTitle, Description: errs.Summary()})
		return nil, &ValidationError{Form: s.schema.Name, Fields: errs}
	}
	s.status = Submitting
	s.mu.Unlock()
	return data, nil
}

// Complete waits the configured latency, runs the action and settles the
// form. Cancelling ctx during the wait abandons the submission silently:
// the form returns to Idle, the action does not run, and nothing is
// notified or navigated.
func (s *Submitter) Complete(ctx context.Context, data Values) (Outcome, error) {
	if st := s.Status(); st != Submitting {
		return OutcomeIgnored, fmt.Errorf("%w (status %s)", ErrNotSubmitting, st)
	}

	if err := s.wait(ctx); err != nil {
		s.settle(Idle, nil)
		s.logger.InfoContext(ctx, "submit canceled", "form", s.schema.Name)
		return OutcomeCanceled, err
	}

	started := time.Now()
	receipt, err := s.action(ctx, data)
	if err != nil {
		if ctx.Err() != nil {
			s.settle(Idle, nil)
			return OutcomeCanceled, fmt.Errorf("%w: %w", ErrCanceled, err)
		}
		var verr *ValidationError
		var fieldErrs Errors
		if errors.As(err, &verr) {
			fieldErrs = verr.Fields
		}
		s.settle(Failed, fieldErrs)
		s.logger.WarnContext(ctx, "submit failed", "form", s.schema.Name, "error", err.Error())
		s.notifier.Notify(Notice{Kind: NoticeError, Title: s.failureTitle, Description: describe(err)})
		// Failed is only held while the notice goes out; the form is
		// editable again with the action's field errors kept.
		s.settle(Idle, fieldErrs)
		return OutcomeFailed, err
	}

	s.settle(Succeeded, nil)
	s.logger.InfoContext(ctx, "submit succeeded", "form", s.schema.Name,
		"action_ms", time.Since(started).Milliseconds())

	next := receipt.Next
	if next == "" {
		next = s.next
	}
	s.notifier.Notify(Notice{Kind: NoticeSuccess, Title: s.successTitle, Description: receipt.Message})
	s.navigator.Navigate(next)
	return OutcomeSucceeded, nil
}

func (s *Submitter) settle(st Status, errs Errors) {
	s.mu.Lock()
	s.status = st
	s.errs = errs
	s.mu.Unlock()
}

func (s *Submitter) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	if s.latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
	}
}

// describe strips the "validation failed" prefix from action errors so the
// notice reads like the field message.
func describe(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields.Summary()
	}
	return err.Error()
}
