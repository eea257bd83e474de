package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Actions carried by expense change events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ExpenseEvent is a lightweight change notification. It carries only the
// record id and action; consumers fetch the full record from the store.
type ExpenseEvent struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEvent creates a change event stamped with the current time.
func NewExpenseEvent(id int64, action string) *ExpenseEvent {
	return &ExpenseEvent{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// Validate checks the event carries a known action and a plausible id.
func (e *ExpenseEvent) Validate() error {
	switch e.Action {
	case ActionCreated, ActionUpdated, ActionDeleted:
	default:
		return fmt.Errorf("unknown expense event action %q", e.Action)
	}
	if e.ID <= 0 {
		return fmt.Errorf("invalid expense event id %d", e.ID)
	}
	return nil
}

func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var ev ExpenseEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
