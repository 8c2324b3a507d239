package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypePersistent = "persistent"
	TypeRecurring  = "recurring"
	TypeScheduled  = "scheduled"
)

const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekday = "weekday"
	RecurrenceWeekly  = "weekly"
)

type Todo struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Body              string     `json:"body"`
	AssignedTo        string     `json:"assigned_to"`
	Completed         bool       `json:"completed"`
	CompletedAt       *time.Time `json:"completed_at"`
	TodoType          string     `json:"todo_type"`
	DueDate           *time.Time `json:"due_date"`
	Recurrence        string     `json:"recurrence"`
	LastCompletedDate *time.Time `json:"last_completed_date"`
	Priority          int        `json:"priority"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TodoPatch — частичное обновление, nil означает "поле не трогать"
type TodoPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Body        *string    `json:"body"`
	Completed   *bool      `json:"completed"`
	TodoType    *string    `json:"todo_type"`
	DueDate     *time.Time `json:"due_date"`
	Recurrence  *string    `json:"recurrence"`
}

type TodoFilter struct {
	Type      *string
	Completed *bool
}

type PriorityUpdate struct {
	ID       uuid.UUID `json:"id"`
	Priority int       `json:"priority"`
}

func ValidTodoType(t string) bool {
	return t == TypePersistent || t == TypeRecurring || t == TypeScheduled
}

func ValidRecurrence(r string) bool {
	return r == RecurrenceDaily || r == RecurrenceWeekday || r == RecurrenceWeekly
}
