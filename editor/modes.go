package editor

// State is the interaction state reported to the host.
type State int

const (
	StateIdle           State = iota // Nothing pending
	StateConnectPending              // A node is selected as the source of a click-to-connect
	StateDragPending                 // A node is being dragged and may be dropped on another
)

// String returns the state name for display
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateConnectPending:
		return "CONNECT"
	case StateDragPending:
		return "DRAG"
	default:
		return "UNKNOWN"
	}
}

// State reports the most specific pending gesture. The connect and drag
// sources are tracked independently; a drag is reported first because it is
// always the more recent gesture.
func (e *Editor) State() State {
	switch {
	case e.dragSource != "":
		return StateDragPending
	case e.connectSource != "":
		return StateConnectPending
	default:
		return StateIdle
	}
}

// ConnectSource returns the node selected for connecting, or "" if none.
func (e *Editor) ConnectSource() string {
	return e.connectSource
}

// DragSource returns the node last picked up by a drag, or "" if none.
func (e *Editor) DragSource() string {
	return e.dragSource
}
