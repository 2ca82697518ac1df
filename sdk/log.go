package sdk

// EventLog collects the terse event lines a call emits. Lines are only
// published when the call succeeds.
type EventLog struct {
	lines []string
}

// Log appends one event line.
// Example payload: log.Log("pc|id:0|by:6gE2..52St")
func (l *EventLog) Log(s string) {
	l.lines = append(l.lines, s)
}

// Lines returns a copy of everything logged so far.
func (l *EventLog) Lines() []string {
	return append([]string(nil), l.lines...)
}
