package issues

import (
	"context"

	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, issue *models.Issue) (*models.Issue, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Issue, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Issue, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.IssueStatus) (*models.Issue, error)
	UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) (*models.Issue, error)
}
