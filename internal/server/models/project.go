package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is owned by exactly one PM user (PMID).
type Project struct {
	ID          uuid.UUID
	Title       string
	Description string
	PMID        uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
