package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tushar822/bugtracker/internal/common"
	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/Tushar822/bugtracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

// Create records a new project owned by the calling PM. The owning PM
// is always the caller, never taken from the request body.
func (s *ProjectService) Create(ctx context.Context, caller *models.User, title, description string) (*models.Project, error) {

	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	project := &models.Project{
		Title:       title,
		Description: description,
		PMID:        caller.ID,
	}

	repo := s.repomanager.Projects(s.db)

	project, err := repo.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}

	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	repo := s.repomanager.Projects(s.db)

	project, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	repo := s.repomanager.Projects(s.db)

	result, err := repo.List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return result, nil
}

func (s *ProjectService) ListByPM(ctx context.Context, pmID uuid.UUID) ([]*models.Project, error) {
	repo := s.repomanager.Projects(s.db)

	result, err := repo.ListByPM(ctx, pmID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return result, nil
}
