package attachments

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

func (r *PostgresRepository) Create(ctx context.Context, attachment *models.IssueAttachment) (*models.IssueAttachment, error) {

	query :=
		`INSERT INTO issue_attachments (issue_id, file_name, storage_key, uploaded_by_id)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		attachment.IssueID, attachment.FileName, attachment.StorageKey, attachment.UploadedByID).
		Scan(&attachment.ID, &attachment.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return attachment, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.IssueAttachment, error) {
	query :=
		`SELECT id, issue_id, file_name, storage_key, uploaded_by_id, created_at
		 FROM issue_attachments
		 WHERE id = $1
		 `

	attachment := &models.IssueAttachment{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&attachment.ID, &attachment.IssueID, &attachment.FileName,
			&attachment.StorageKey, &attachment.UploadedByID, &attachment.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return attachment, nil
}

func (r *PostgresRepository) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]*models.IssueAttachment, error) {
	query :=
		`SELECT id, issue_id, file_name, storage_key, uploaded_by_id, created_at
		 FROM issue_attachments
		 WHERE issue_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, issueID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.IssueAttachment
	for rows.Next() {
		attachment := &models.IssueAttachment{}
		err := rows.Scan(&attachment.ID, &attachment.IssueID, &attachment.FileName,
			&attachment.StorageKey, &attachment.UploadedByID, &attachment.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, attachment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
