package entity

import (
	"slices"
	"time"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// TaskStatuses lists every valid task status.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone}

// IsValid checks if the TaskStatus is a valid value.
func (s TaskStatus) IsValid() bool {
	return slices.Contains(TaskStatuses, s)
}

// TaskPriority orders tasks inside a project.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid checks if the TaskPriority is a valid value.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// Task is a unit of work inside a project, optionally owned by a team.
type Task struct {
	ID          int64        `json:"id"`
	ProjectID   int64        `json:"projectId"`
	TeamID      *int64       `json:"teamId,omitempty"`
	AssigneeID  *int64       `json:"assigneeId,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CreatedBy   int64        `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// IsAssignedTo reports whether userID is the task's assignee.
func (t *Task) IsAssignedTo(userID int64) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// TaskField names one updatable attribute of a Task.
type TaskField uint8

const (
	TaskFieldTitle TaskField = iota
	TaskFieldDescription
	TaskFieldStatus
	TaskFieldPriority
	TaskFieldDueDate
	TaskFieldAssignee
	TaskFieldTeam

	taskFieldCount
)

var taskFieldNames = [taskFieldCount]string{
	TaskFieldTitle:       "title",
	TaskFieldDescription: "description",
	TaskFieldStatus:      "status",
	TaskFieldPriority:    "priority",
	TaskFieldDueDate:     "dueDate",
	TaskFieldAssignee:    "assigneeId",
	TaskFieldTeam:        "teamId",
}

func (f TaskField) String() string {
	if f >= taskFieldCount {
		return "unknown"
	}

	return taskFieldNames[f]
}

// TaskFieldSet is a set of TaskFields.
type TaskFieldSet uint16

// AllTaskFields contains every updatable field.
const AllTaskFields TaskFieldSet = 1<<taskFieldCount - 1

// NewTaskFieldSet builds a set from fields.
func NewTaskFieldSet(fields ...TaskField) TaskFieldSet {
	var s TaskFieldSet
	for _, f := range fields {
		s |= 1 << f
	}

	return s
}

// Has reports whether f is in the set.
func (s TaskFieldSet) Has(f TaskField) bool {
	return s&(1<<f) != 0
}

// Names returns the names of the fields in the set, in declaration order.
func (s TaskFieldSet) Names() []string {
	var names []string
	for f := range taskFieldCount {
		if s.Has(f) {
			names = append(names, f.String())
		}
	}

	return names
}

// TaskPatch is a partial task update. A nil field is left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDate     *time.Time
	AssigneeID  *int64
	TeamID      *int64
}

// Fields returns the set of fields the patch touches.
func (p TaskPatch) Fields() TaskFieldSet {
	var s TaskFieldSet
	if p.Title != nil {
		s |= NewTaskFieldSet(TaskFieldTitle)
	}
	if p.Description != nil {
		s |= NewTaskFieldSet(TaskFieldDescription)
	}
	if p.Status != nil {
		s |= NewTaskFieldSet(TaskFieldStatus)
	}
	if p.Priority != nil {
		s |= NewTaskFieldSet(TaskFieldPriority)
	}
	if p.DueDate != nil {
		s |= NewTaskFieldSet(TaskFieldDueDate)
	}
	if p.AssigneeID != nil {
		s |= NewTaskFieldSet(TaskFieldAssignee)
	}
	if p.TeamID != nil {
		s |= NewTaskFieldSet(TaskFieldTeam)
	}

	return s
}

// Restrict returns a copy of the patch holding only the allowed fields.
// Disallowed fields are dropped, not reported as an error.
func (p TaskPatch) Restrict(allowed TaskFieldSet) TaskPatch {
	if !allowed.Has(TaskFieldTitle) {
		p.Title = nil
	}
	if !allowed.Has(TaskFieldDescription) {
		p.Description = nil
	}
	if !allowed.Has(TaskFieldStatus) {
		p.Status = nil
	}
	if !allowed.Has(TaskFieldPriority) {
		p.Priority = nil
	}
	if !allowed.Has(TaskFieldDueDate) {
		p.DueDate = nil
	}
	if !allowed.Has(TaskFieldAssignee) {
		p.AssigneeID = nil
	}
	if !allowed.Has(TaskFieldTeam) {
		p.TeamID = nil
	}

	return p
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Fields() == 0
}

// ApplyTo writes the patch onto t.
func (p TaskPatch) ApplyTo(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.AssigneeID != nil {
		assignee := *p.AssigneeID
		t.AssigneeID = &assignee
	}
	if p.TeamID != nil {
		team := *p.TeamID
		t.TeamID = &team
	}
}
