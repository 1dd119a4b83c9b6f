package issues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tushar822/bugtracker/internal/common"
	"github.com/Tushar822/bugtracker/internal/dbx"
	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const issueColumns = `id, title, description, status, priority, type,
	project_id, assigned_to_id, created_by_id, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, issue *models.Issue) (*models.Issue, error) {

	query :=
		`INSERT INTO issues (title, description, status, priority, type, project_id, created_by_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		issue.Title, issue.Description, issue.Status, issue.Priority, issue.Type,
		issue.ProjectID, issue.CreatedByID).
		Scan(&issue.ID, &issue.CreatedAt, &issue.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return issue, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = $1`

	return r.scanIssue(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE project_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Issue
	for rows.Next() {
		issue := &models.Issue{}
		err := rows.Scan(&issue.ID, &issue.Title, &issue.Description, &issue.Status,
			&issue.Priority, &issue.Type, &issue.ProjectID, &issue.AssignedToID,
			&issue.CreatedByID, &issue.CreatedAt, &issue.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, issue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// UpdateStatus sets the status in a single atomic statement; updated_at
// always advances, even when the value is unchanged.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.IssueStatus) (*models.Issue, error) {
	query :=
		`UPDATE issues
		 SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + issueColumns

	return r.scanIssue(r.db.QueryRowContext(ctx, query, id, status))
}

func (r *PostgresRepository) UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) (*models.Issue, error) {
	query :=
		`UPDATE issues
		 SET assigned_to_id = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + issueColumns

	return r.scanIssue(r.db.QueryRowContext(ctx, query, id, assigneeID))
}

func (r *PostgresRepository) scanIssue(row *sql.Row) (*models.Issue, error) {
	issue := &models.Issue{}
	err := row.Scan(&issue.ID, &issue.Title, &issue.Description, &issue.Status,
		&issue.Priority, &issue.Type, &issue.ProjectID, &issue.AssignedToID,
		&issue.CreatedByID, &issue.CreatedAt, &issue.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return issue, nil
}
