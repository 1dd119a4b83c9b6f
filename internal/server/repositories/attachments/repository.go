package attachments

import (
	"context"

	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, attachment *models.IssueAttachment) (*models.IssueAttachment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.IssueAttachment, error)
	ListByIssue(ctx context.Context, issueID uuid.UUID) ([]*models.IssueAttachment, error)
}
