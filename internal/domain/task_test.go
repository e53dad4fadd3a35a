package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatusValid(t *testing.T) {
	t.Parallel()

	for _, s := range []TaskStatus{
		TaskStatusCurrent, TaskStatusUpcoming, TaskStatusPastDue,
		TaskStatusUrgent, TaskStatusEscalated, TaskStatusCompleted,
	} {
		assert.True(t, s.Valid(), "status %s", s)
	}
	assert.False(t, TaskStatus("").Valid())
	assert.False(t, TaskStatus("current").Valid())
	assert.False(t, TaskStatus("Done").Valid())
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "calendar date", input: "2025-06-30", want: "2025-06-30"},
		{name: "rfc3339 timestamp", input: "2025-06-30T18:45:00Z", want: "2025-06-30"},
		{name: "rfc3339 with offset keeps local date", input: "2025-06-30T23:30:00-05:00", want: "2025-06-30"},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "impossible date", input: "2025-02-30", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d, err := ParseDate(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.String())
		})
	}
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	d := NewDate(time.Date(2025, 7, 4, 15, 4, 5, 0, time.UTC))
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-07-04"`, string(data))

	var fields TaskFields
	require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2025-07-04","status":null}`), &fields))
	require.NotNil(t, fields.DueDate)
	assert.Equal(t, "2025-07-04", fields.DueDate.String())
	assert.Nil(t, fields.Status)

	err = json.Unmarshal([]byte(`{"due_date":12}`), &fields)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestTaskFieldsValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, TaskFields{}.Validate())

	ok := TaskStatusUrgent
	assert.NoError(t, TaskFields{Status: &ok}.Validate())

	bad := TaskStatus("Done")
	err := TaskFields{Status: &bad}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)
	assert.ErrorIs(t, err, ErrValidation)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Field)
}

func TestTaskFieldsWithDefaultStatus(t *testing.T) {
	t.Parallel()

	got := TaskFields{}.WithDefaultStatus()
	require.NotNil(t, got.Status)
	assert.Equal(t, TaskStatusCurrent, *got.Status)

	done := TaskStatusCompleted
	got = TaskFields{Status: &done}.WithDefaultStatus()
	assert.Equal(t, TaskStatusCompleted, *got.Status)
}

func TestTaskJSONShape(t *testing.T) {
	t.Parallel()

	title := "Refuel"
	status := TaskStatusCurrent
	task := Task{
		ID:     1,
		UserID: 2,
		TaskFields: TaskFields{
			Title:  &title,
			Status: &status,
		},
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 1,
		"user_id": 2,
		"building_name": null,
		"generator_id": null,
		"task_title": "Refuel",
		"task_description": null,
		"due_date": null,
		"status": "Current",
		"created_at": "2025-01-01T00:00:00Z",
		"updated_at": "2025-01-01T00:00:00Z"
	}`, string(data))
}
