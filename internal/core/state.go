package core

import "fmt"

// State is the lifecycle state of a Pool. Transitions are linear:
// NotStarted → Started → Stopped. There is no way back to Started.
type State uint32

const (
	NotStarted State = iota // zero value; New returns pools in this state
	Started                 // executor live, Execute accepted
	Stopped                 // executor shut down, Execute rejected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "NOT_STARTED"
	case Started:
		return "STARTED"
	case Stopped:
		return "STOPPED"
	default:
		return fmt.Sprintf("State(%d)", uint32(s))
	}
}

// LifecycleEvent identifies a notification delivered to lifecycle listeners.
type LifecycleEvent int

const (
	// EventStarting fires before the executor is created.
	EventStarting LifecycleEvent = iota
	// EventStarted fires once the executor is published.
	EventStarted
	// EventFailure fires when Start fails. The listener receives the error.
	EventFailure
	// EventStopping fires before the executor is shut down.
	EventStopping
	// EventStopped fires after shutdown was requested. Tasks may still be
	// winding down; use Join to wait for them.
	EventStopped
)

// String returns the event name.
func (e LifecycleEvent) String() string {
	switch e {
	case EventStarting:
		return "starting"
	case EventStarted:
		return "started"
	case EventFailure:
		return "failure"
	case EventStopping:
		return "stopping"
	case EventStopped:
		return "stopped"
	default:
		return fmt.Sprintf("LifecycleEvent(%d)", int(e))
	}
}

// LifecycleListener observes Start and Stop. It is called synchronously
// while the lifecycle lock is held, so it must not call Start or Stop on the
// same pool. err is non-nil only for EventFailure.
type LifecycleListener func(ev LifecycleEvent, err error)
