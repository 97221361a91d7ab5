package cli

import (
	"github.com/alexanderramin/fleksjobb/internal/domain"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/route"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// navigateMsg asks the app to show the view registered for a route.
// A view already on the stack for the same route is revealed instead of
// opened twice. With replace set, the current top view is swapped out.
type navigateMsg struct {
	to      route.Route
	replace bool
}

// refreshViewMsg asks every view on the stack to reload its data.
type refreshViewMsg struct{}

// cmdOutputMsg carries text output from a command execution
// to be displayed transiently in the current view.
type cmdOutputMsg struct {
	output string
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// noticeMsg shows a toast.
type noticeMsg struct {
	notice form.Notice
}

// toastExpiredMsg dismisses the toast with the given id.
type toastExpiredMsg struct {
	id int
}

// signInMsg replaces the session, signOutMsg clears it.
type signInMsg struct {
	session domain.Session
}

type signOutMsg struct{}

// effectsMsg delivers side effects collected off the update loop, in the
// order they happened.
type effectsMsg struct {
	msgs []tea.Msg
}

// quitMsg signals the app to quit.
type quitMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// navigate returns a tea.Cmd that opens the view for a route.
func navigate(to route.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

func refresh() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

func notify(kind form.NoticeKind, title, desc string) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg{notice: form.Notice{Kind: kind, Title: title, Description: desc}}
	}
}

func notifyError(err error) tea.Cmd {
	return notify(form.NoticeError, "Something went wrong", describeError(err))
}

// outputCmd displays s in the content area until the next key press.
func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}
