package event

import "time"

// RecordChangedDestination is the default topic for record change events. The
// topic can be overridden with messaging.topics.record_changed.
const RecordChangedDestination string = "record_changed"

const RecordChangedConsumerDepartmentCache string = "record_changed_department_cache"

const (
	OperationCreated string = "created"
	OperationUpdated string = "updated"
	OperationDeleted string = "deleted"
)

// RecordChangedMessage announces that a department or employee was created,
// updated or deleted through this service.
type RecordChangedMessage struct {
	Entity     string    `json:"entity" validate:"required,entity"`
	Operation  string    `json:"operation" validate:"omitempty,oneof=created updated deleted"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}
