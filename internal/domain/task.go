package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TaskStatus is the lifecycle state of a maintenance task.
type TaskStatus string

// Known task statuses. The set mirrors the states shown by the operator dashboard.
const (
	TaskStatusCurrent   TaskStatus = "Current"
	TaskStatusUpcoming  TaskStatus = "Upcoming"
	TaskStatusPastDue   TaskStatus = "PastDue"
	TaskStatusUrgent    TaskStatus = "Urgent"
	TaskStatusEscalated TaskStatus = "Escalated"
	TaskStatusCompleted TaskStatus = "Completed"
)

// DefaultTaskStatus is applied on creation when no status is supplied.
const DefaultTaskStatus = TaskStatusCurrent

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusCurrent, TaskStatusUpcoming, TaskStatusPastDue,
		TaskStatusUrgent, TaskStatusEscalated, TaskStatusCompleted:
		return true
	}
	return false
}

// DateLayout is the wire format of task due dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, s)
	}
	return NewDate(t), nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: date must be a string", ErrValidation)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TaskFields are the client-replaceable fields of a task.
// A nil pointer means the field was absent and is stored as NULL.
type TaskFields struct {
	BuildingName *string     `json:"building_name"`
	GeneratorID  *string     `json:"generator_id"`
	Title        *string     `json:"task_title"`
	Description  *string     `json:"task_description"`
	DueDate      *Date       `json:"due_date"`
	Status       *TaskStatus `json:"status"`
}

// Validate rejects statuses outside the known set. Absent fields are allowed.
func (f TaskFields) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return NewValidationError("status", fmt.Sprintf("%q is not a known status", *f.Status), ErrInvalidTaskStatus)
	}
	return nil
}

// WithDefaultStatus returns a copy whose status is DefaultTaskStatus when absent.
func (f TaskFields) WithDefaultStatus() TaskFields {
	if f.Status == nil {
		s := DefaultTaskStatus
		f.Status = &s
	}
	return f
}

// Task is a work item on a building's generator, owned by exactly one user.
type Task struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	TaskFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
