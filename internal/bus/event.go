package bus

import "time"

// Event is a change notification published on the bus. Kind is a dotted
// topic ("doc.threads", "gateway.started"); Payload is topic-specific.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
