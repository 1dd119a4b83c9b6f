package models

import (
	"time"

	"github.com/google/uuid"
)

// IssueStatus is the closed set of workflow states. Transitions are
// permissive: any recognized status may be set from any other.
type IssueStatus string

const (
	StatusOpen       IssueStatus = "OPEN"
	StatusAssigned   IssueStatus = "ASSIGNED"
	StatusInProgress IssueStatus = "IN_PROGRESS"
	StatusReview     IssueStatus = "REVIEW"
	StatusCompleted  IssueStatus = "COMPLETED"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusAssigned, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// IssuePriority is a flat set; no ordering semantics beyond naming.
type IssuePriority string

const (
	PriorityLow      IssuePriority = "LOW"
	PriorityMedium   IssuePriority = "MEDIUM"
	PriorityHigh     IssuePriority = "HIGH"
	PriorityCritical IssuePriority = "CRITICAL"
)

func (p IssuePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type IssueType string

const (
	TypeBug         IssueType = "BUG"
	TypeTask        IssueType = "TASK"
	TypeFeature     IssueType = "FEATURE"
	TypeEnhancement IssueType = "ENHANCEMENT"
)

func (t IssueType) Valid() bool {
	switch t {
	case TypeBug, TypeTask, TypeFeature, TypeEnhancement:
		return true
	}
	return false
}

// Issue belongs to exactly one project and always has a creator.
// AssignedToID and CreatedByID are two distinct references to users:
// the assignee is optional, the creator is immutable after creation.
type Issue struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Status       IssueStatus
	Priority     IssuePriority
	Type         IssueType
	ProjectID    uuid.UUID
	AssignedToID *uuid.UUID
	CreatedByID  uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IssueAttachment records a file stored in the S3-compatible backend
// under StorageKey, linked to an issue.
type IssueAttachment struct {
	ID           uuid.UUID
	IssueID      uuid.UUID
	FileName     string
	StorageKey   string
	UploadedByID uuid.UUID
	CreatedAt    time.Time
}
