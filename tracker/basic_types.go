package tracker

// Enabler is an interface that defines a single Enabled() method, which is used
// by the UI to check if an Action is enabled or not.
type Enabler interface {
	Enabled() bool
}

type (
	// Action describes a user command that can be performed on the model, which
	// can be initiated by calling the Do() method. It is usually initiated by a
	// key binding. Action advertises whether it is enabled, so the UI can e.g.
	// dim the hint of a command that would do nothing. The underlying Doer can
	// optionally implement the Enabler interface; if it does not, the action
	// is always allowed.
	Action struct {
		doer Doer
	}

	// Doer is an interface that defines a single Do() method, which is called
	// when an action is performed.
	Doer interface {
		Do()
	}

	// DoFunc adapts a plain function into a Doer.
	DoFunc func()
)

func MakeAction(doer Doer) Action { return Action{doer: doer} }

func (f DoFunc) Do() { f() }

func (a Action) Do() {
	e, ok := a.doer.(Enabler)
	if ok && !e.Enabled() {
		return
	}
	if a.doer != nil {
		a.doer.Do()
	}
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false // no doer, not allowed
	}
	e, ok := a.doer.(Enabler)
	if !ok {
		return true // not enabler, always allowed
	}
	return e.Enabled()
}
