package events

import (
	"time"

	"github.com/spec-kit/employee-directory/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated EventType = "employee_created"
	EventEmployeeUpdated EventType = "employee_updated"
	EventEmployeeDeleted EventType = "employee_deleted"
	EventEmployeeLogin   EventType = "employee_login"
)

// Actor identifies the authenticated caller behind an event.
type Actor struct {
	EmployeeID int64       `json:"employee_id"`
	Role       domain.Role `json:"role"`
}

// Event represents a domain event emitted after a successful mutation.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EmployeeID int64       `json:"employee_id"`
	Actor      *Actor      `json:"actor,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload,omitempty"`
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// EmployeeUpdatedPayload payload.
type EmployeeUpdatedPayload struct {
	Email string `json:"email"`
}

// EmployeeDeletedPayload payload.
type EmployeeDeletedPayload struct {
	Email string `json:"email"`
}

// EmployeeLoginPayload payload.
type EmployeeLoginPayload struct {
	Email string `json:"email"`
}
