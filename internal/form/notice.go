package form

import "github.com/alexanderramin/fleksjobb/internal/route"

type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
	NoticeInfo
)

// Notice is a transient, auto-dismissing notification.
type Notice struct {
	Kind        NoticeKind
	Title       string
	Description string
}

// Notifier displays notices. Implementations must not block.
type Notifier interface {
	Notify(n Notice)
}

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(r route.Route)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route.Route)

func (f NavigatorFunc) Navigate(r route.Route) { f(r) }

type discard struct{}

func (discard) Notify(Notice)        {}
func (discard) Navigate(route.Route) {}
