package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tushar822/bugtracker/internal/common"
	"github.com/Tushar822/bugtracker/internal/dbx"
	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/Tushar822/bugtracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type IssueService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewIssueService(db *sql.DB, m repomanager.RepositoryManager) *IssueService {
	return &IssueService{db: db, repomanager: m}
}

// CreateIssueParams carries caller-supplied fields for issue creation.
// Status and creator are not among them: status always starts OPEN and
// the creator is always the authenticated caller.
type CreateIssueParams struct {
	Title       string
	Description string
	Priority    models.IssuePriority
	Type        models.IssueType
	ProjectID   uuid.UUID
}

func (s *IssueService) Create(ctx context.Context, caller *models.User, params CreateIssueParams) (*models.Issue, error) {

	if params.Title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if !params.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", common.ErrorValidation, params.Priority)
	}
	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown issue type %q", common.ErrorValidation, params.Type)
	}

	if _, err := s.repomanager.Projects(s.db).GetByID(ctx, params.ProjectID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: project", common.ErrorNotFound)
		}
		return nil, common.ErrorInternal
	}

	issue := &models.Issue{
		Title:       params.Title,
		Description: params.Description,
		Status:      models.StatusOpen,
		Priority:    params.Priority,
		Type:        params.Type,
		ProjectID:   params.ProjectID,
		CreatedByID: caller.ID,
	}

	issue, err := s.repomanager.Issues(s.db).Create(ctx, issue)
	if err != nil {
		return nil, fmt.Errorf("error creating issue: %w", err)
	}

	return issue, nil
}

func (s *IssueService) Get(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	issue, err := s.repomanager.Issues(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return issue, nil
}

func (s *IssueService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Issue, error) {
	result, err := s.repomanager.Issues(s.db).ListByProject(ctx, projectID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return result, nil
}

// UpdateStatus sets the issue's status to any recognized value; the
// workflow is deliberately permissive, so moving backwards (for example
// COMPLETED to OPEN) is accepted. An out-of-vocabulary value fails
// before anything is written.
func (s *IssueService) UpdateStatus(ctx context.Context, caller *models.User, id uuid.UUID, status models.IssueStatus) (*models.Issue, error) {

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, status)
	}

	issue, err := s.repomanager.Issues(s.db).UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return issue, nil
}

// Assign sets the issue's assignee. The caller must be the PM who owns
// the issue's project; the target user must exist. The existence checks
// and the update run in one transaction so a concurrent user deletion
// cannot produce a dangling reference.
func (s *IssueService) Assign(ctx context.Context, caller *models.User, id uuid.UUID, assigneeID uuid.UUID) (*models.Issue, error) {

	var issue *models.Issue

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		current, err := s.repomanager.Issues(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}

		project, err := s.repomanager.Projects(tx).GetByID(ctx, current.ProjectID)
		if err != nil {
			return err
		}

		if caller.Role != models.RolePM || project.PMID != caller.ID {
			return fmt.Errorf("%w: only the project's Project Manager can assign issues", common.ErrorForbidden)
		}

		if _, err := s.repomanager.Users(tx).GetByID(ctx, assigneeID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("%w: user", common.ErrorNotFound)
			}
			return err
		}

		issue, err = s.repomanager.Issues(tx).UpdateAssignee(ctx, id, assigneeID)
		return err
	})

	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorForbidden):
			return nil, err
		default:
			return nil, common.ErrorInternal
		}
	}

	return issue, nil
}
