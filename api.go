package mandel

import "fmt"

// EventKind tags a ComputeEvent.
type EventKind uint8

const (
	EventStart EventKind = iota
	EventProgress
	EventEnd
)

// ComputeEvent is one step of a computation's lifecycle:
// a single Start, one Progress per finished row, a single End.
type ComputeEvent struct {
	Kind  EventKind
	Row   uint32 // finished row, Progress only
	Done  uint32 // rows finished so far including Row, Progress only
	Total uint32 // number of rows, Progress only
}

func StartEvent() ComputeEvent { return ComputeEvent{Kind: EventStart} }

func ProgressEvent(row, done, total uint32) ComputeEvent {
	return ComputeEvent{Kind: EventProgress, Row: row, Done: done, Total: total}
}

func EndEvent() ComputeEvent { return ComputeEvent{Kind: EventEnd} }

// Fraction returns the completed share of the computation for display.
// It is based on Done, so it fills monotonically even when rows finish
// out of order.
func (e ComputeEvent) Fraction() float64 {
	switch e.Kind {
	case EventEnd:
		return 1
	case EventProgress:
		if e.Total == 0 {
			return 1
		}
		return float64(e.Done) / float64(e.Total)
	}
	return 0
}

func (e ComputeEvent) String() string {
	switch e.Kind {
	case EventStart:
		return "Start"
	case EventProgress:
		return fmt.Sprintf("Progress(%d, %d) done=%d", e.Row, e.Total, e.Done)
	case EventEnd:
		return "End"
	}
	return fmt.Sprintf("ComputeEvent(%d)", e.Kind)
}

// Observer receives lifecycle events of a computation.
// Send must not block the caller.
type Observer interface {
	Send(ComputeEvent)
}
