package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Tushar822/bugtracker/internal/common"
	"github.com/Tushar822/bugtracker/internal/dbx"
	"github.com/Tushar822/bugtracker/internal/server/config"
	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/Tushar822/bugtracker/internal/server/repositories/attachments"
	"github.com/Tushar822/bugtracker/internal/server/repositories/issues"
	"github.com/Tushar822/bugtracker/internal/server/repositories/projects"
	"github.com/Tushar822/bugtracker/internal/server/repositories/users"
	"github.com/google/uuid"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		S3Bucket:                    "attachments",
		S3Region:                    "us-east-1",
	}
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User

	created []*models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = uuid.New()
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeProjectsRepo struct {
	byID map[uuid.UUID]*models.Project

	created []*models.Project
	listOut []*models.Project
}

func (f *fakeProjectsRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	f.created = append(f.created, p)
	p.ID = uuid.New()
	return p, nil
}

func (f *fakeProjectsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeProjectsRepo) List(ctx context.Context) ([]*models.Project, error) {
	return f.listOut, nil
}

func (f *fakeProjectsRepo) ListByPM(ctx context.Context, pmID uuid.UUID) ([]*models.Project, error) {
	return f.listOut, nil
}

type fakeIssuesRepo struct {
	byID map[uuid.UUID]*models.Issue

	created []*models.Issue

	statusCalls   int
	assigneeCalls int
}

func (f *fakeIssuesRepo) Create(ctx context.Context, i *models.Issue) (*models.Issue, error) {
	f.created = append(f.created, i)
	i.ID = uuid.New()
	return i, nil
}

func (f *fakeIssuesRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	if i, ok := f.byID[id]; ok {
		return i, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeIssuesRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Issue, error) {
	var out []*models.Issue
	for _, i := range f.byID {
		if i.ProjectID == projectID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeIssuesRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.IssueStatus) (*models.Issue, error) {
	f.statusCalls++
	i, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	i.Status = status
	i.UpdatedAt = time.Now()
	return i, nil
}

func (f *fakeIssuesRepo) UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID uuid.UUID) (*models.Issue, error) {
	f.assigneeCalls++
	i, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	i.AssignedToID = &assigneeID
	i.UpdatedAt = time.Now()
	return i, nil
}

type fakeAttachmentsRepo struct {
	byID map[uuid.UUID]*models.IssueAttachment

	created []*models.IssueAttachment
	listOut []*models.IssueAttachment
}

func (f *fakeAttachmentsRepo) Create(ctx context.Context, a *models.IssueAttachment) (*models.IssueAttachment, error) {
	f.created = append(f.created, a)
	a.ID = uuid.New()
	return a, nil
}

func (f *fakeAttachmentsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.IssueAttachment, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAttachmentsRepo) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]*models.IssueAttachment, error) {
	return f.listOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakeProjectsRepo
	i *fakeIssuesRepo
	a *fakeAttachmentsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                  { return m.u }
func (m *fakeRepoManager) Projects(db dbx.DBTX) projects.Repository            { return m.p }
func (m *fakeRepoManager) Issues(db dbx.DBTX) issues.Repository                { return m.i }
func (m *fakeRepoManager) Attachments(db dbx.DBTX) attachments.Repository      { return m.a }
