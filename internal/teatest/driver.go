// Package teatest drives a bubbletea model in tests without a tea.Program.
//
// Update runs on the test goroutine and every Cmd it returns is executed
// and fed back until the model goes quiet. Cmds that wait on timers
// (cursor blink, spinner ticks, toast expiry) do not return within the
// driver's timeout and are dropped, so a step never sleeps.
package teatest

import (
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many follow-up Cmds one step may chain.
const MaxDrainDepth = 100

// DefaultCmdTimeout separates Cmds that do work (queries, a submission
// with no latency) from Cmds that wait on a timer.
const DefaultCmdTimeout = 25 * time.Millisecond

// Driver is a synchronous harness for a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced. The runtime
	// normally swallows it, so the driver records it.
	Quitting bool

	cmdTimeout time.Duration
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout changes how long a Cmd may run before it is dropped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.cmdTimeout = timeout }
}

func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init Cmd to completion.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains whatever it sets off.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlC}) }
func (d *Driver) PressTab()   { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyTab}) }
func (d *Driver) PressUp()    { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyUp}) }
func (d *Driver) PressDown()  { d.T.Helper(); d.SendKey(tea.KeyMsg{Type: tea.KeyDown}) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: gave up after %d chained commands", MaxDrainDepth)
		return
	}

	msg := d.run(cmd)
	switch {
	case msg == nil, isCursorBlink(msg):
		return
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			d.drain(sub, depth+1)
		}
		return
	}
	// tea.Sequence yields an unexported []tea.Cmd; order is already
	// preserved because each Cmd drains fully before the next.
	if seq, ok := asSequence(msg); ok {
		for _, sub := range seq {
			d.drain(sub, depth+1)
		}
		return
	}

	if _, ok := msg.(tea.QuitMsg); ok {
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
		return
	}

	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.drain(next, depth+1)
}

// run executes cmd and returns its message, or nil when it outlives the
// driver's timeout.
func (d *Driver) run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	timer := time.NewTimer(d.cmdTimeout)
	defer timer.Stop()
	select {
	case msg := <-ch:
		return msg
	case <-timer.C:
		return nil
	}
}

var cmdType = reflect.TypeOf(tea.Cmd(nil))

func asSequence(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || v.Type().Elem() != cmdType {
		return nil, false
	}
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i], _ = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds, true
}

// isCursorBlink matches the unexported blink messages from bubbles/cursor.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(reflect.TypeOf(msg).String()), "blink")
}
