package projects

import (
	"context"

	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	ListByPM(ctx context.Context, pmID uuid.UUID) ([]*models.Project, error)
}
