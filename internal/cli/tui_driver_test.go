package cli

import (
	"testing"

	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
)

// TestDriver wraps teatest.Driver with fleksjobb-specific inspection methods.
// It provides access to appModel internals (view stack, session, toasts,
// command bar focus) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App signed in as sess.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads the first view's data synchronously via in-memory SQLite).
func NewTestDriver(t *testing.T, app *App, sess domain.Session) *TestDriver {
	t.Helper()

	m := newAppModel(app, sess)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// Command focuses the command bar with ':', types the command, and presses Enter.
// Output-only commands leave the bar focused, so it is blurred afterwards
// to route subsequent key presses to the active view.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

// PressCtrl sends a ctrl chord such as tea.KeyCtrlS.
func (d *TestDriver) PressCtrl(k tea.KeyType) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: k})
}

// FillForm writes values straight into the active form's binding, as if
// each field had been typed.
func (d *TestDriver) FillForm(values form.Values) {
	d.T.Helper()
	fv := d.ActiveForm()
	if fv == nil {
		d.T.Fatalf("active view %v is not a form", d.ActiveViewID())
	}
	for name, val := range values {
		fv.bind.set(name, val)
	}
}

// Submit fills the active form and presses ctrl+s.
func (d *TestDriver) Submit(values form.Values) {
	d.T.Helper()
	d.FillForm(values)
	d.PressCtrl(tea.KeyCtrlS)
}

// ── fleksjobb-specific inspection ────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveView returns the top view on the stack.
func (d *TestDriver) ActiveView() View {
	m := d.appModel()
	return m.activeView()
}

// ActiveForm returns the top view as a form view, or nil.
func (d *TestDriver) ActiveForm() *formView {
	fv, _ := d.ActiveView().(*formView)
	return fv
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// Session returns the session the app currently acts as.
func (d *TestDriver) Session() domain.Session {
	return d.appModel().state.Session
}

// Notices returns the toasts currently shown, oldest first.
func (d *TestDriver) Notices() []form.Notice {
	m := d.appModel()
	return m.toasts.notices()
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// CmdBarFocused returns whether the command bar currently has focus.
func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

// LastOutput returns the last command output displayed in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().output.text
}
