// internal/domain/customer/events.go
package customer

// EventAction is the kind of change announced on the change feed.
type EventAction string

const (
	EventCreated EventAction = "created"
	EventUpdated EventAction = "updated"
	EventDeleted EventAction = "deleted"
)

// Event describes a single customer change within one partition. Consumers
// subscribed to other partitions never see it. Record carries the
// normalized state after the change and is nil for deletions.
type Event struct {
	Action    EventAction `json:"action"`
	Partition string      `json:"partition"`
	ID        string      `json:"id"`
	Record    *Customer   `json:"record,omitempty"`
}
