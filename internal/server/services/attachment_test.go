package services

import (
	"context"
	"strings"
	"testing"

	"github.com/Tushar822/bugtracker/internal/common"
	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// stubPresign swaps the AWS seams for stubs that never touch the network
// and restores them when the test finishes.
func stubPresign(t *testing.T, putURL, getURL string) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origClient := newS3ClientFromConfig
	origPresign := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origClient
		newS3PresignClient = origPresign
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return nil
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: putURL + *in.Key, Method: "PUT"}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: getURL + *in.Key, Method: "GET"}, nil
	}
}

func newAttachmentService(t *testing.T, rm *fakeRepoManager) *AttachmentService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	return NewAttachmentService(db, rm, testConfig())
}

func TestCreateUpload_Success(t *testing.T) {
	stubPresign(t, "https://s3.local/put/", "https://s3.local/get/")

	issueID := uuid.New()
	caller := &models.User{ID: uuid.New(), Role: models.RoleDeveloper}
	rm := &fakeRepoManager{
		i: &fakeIssuesRepo{byID: map[uuid.UUID]*models.Issue{issueID: {ID: issueID}}},
		a: &fakeAttachmentsRepo{},
	}
	s := newAttachmentService(t, rm)

	attachment, uploadURL, err := s.CreateUpload(context.Background(), caller, issueID, "screenshot.png")
	require.NoError(t, err)

	assert.Equal(t, "screenshot.png", attachment.FileName)
	assert.Equal(t, issueID, attachment.IssueID)
	assert.Equal(t, caller.ID, attachment.UploadedByID)
	assert.True(t, strings.HasPrefix(uploadURL, "https://s3.local/put/issues/"))
	assert.Contains(t, uploadURL, issueID.String())
	require.Len(t, rm.a.created, 1)
	assert.Equal(t, attachment.StorageKey, rm.a.created[0].StorageKey)
}

func TestCreateUpload_EmptyFileName(t *testing.T) {
	stubPresign(t, "https://s3.local/put/", "https://s3.local/get/")

	issueID := uuid.New()
	caller := &models.User{ID: uuid.New()}
	rm := &fakeRepoManager{
		i: &fakeIssuesRepo{byID: map[uuid.UUID]*models.Issue{issueID: {ID: issueID}}},
		a: &fakeAttachmentsRepo{},
	}
	s := newAttachmentService(t, rm)

	_, _, err := s.CreateUpload(context.Background(), caller, issueID, "")
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, rm.a.created)
}

func TestCreateUpload_UnknownIssue(t *testing.T) {
	stubPresign(t, "https://s3.local/put/", "https://s3.local/get/")

	caller := &models.User{ID: uuid.New()}
	rm := &fakeRepoManager{
		i: &fakeIssuesRepo{byID: map[uuid.UUID]*models.Issue{}},
		a: &fakeAttachmentsRepo{},
	}
	s := newAttachmentService(t, rm)

	_, _, err := s.CreateUpload(context.Background(), caller, uuid.New(), "screenshot.png")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Empty(t, rm.a.created)
}

func TestGetDownloadURL_Success(t *testing.T) {
	stubPresign(t, "https://s3.local/put/", "https://s3.local/get/")

	issueID := uuid.New()
	attachment := &models.IssueAttachment{
		ID:         uuid.New(),
		IssueID:    issueID,
		FileName:   "screenshot.png",
		StorageKey: "issues/abc/2025/1/2/key",
	}
	rm := &fakeRepoManager{
		a: &fakeAttachmentsRepo{byID: map[uuid.UUID]*models.IssueAttachment{attachment.ID: attachment}},
	}
	s := newAttachmentService(t, rm)

	url, err := s.GetDownloadURL(context.Background(), issueID, attachment.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/get/"+attachment.StorageKey, url)
}

func TestGetDownloadURL_WrongIssue(t *testing.T) {
	stubPresign(t, "https://s3.local/put/", "https://s3.local/get/")

	attachment := &models.IssueAttachment{
		ID:         uuid.New(),
		IssueID:    uuid.New(),
		StorageKey: "issues/abc/2025/1/2/key",
	}
	rm := &fakeRepoManager{
		a: &fakeAttachmentsRepo{byID: map[uuid.UUID]*models.IssueAttachment{attachment.ID: attachment}},
	}
	s := newAttachmentService(t, rm)

	_, err := s.GetDownloadURL(context.Background(), uuid.New(), attachment.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetDownloadURL_UnknownAttachment(t *testing.T) {
	stubPresign(t, "https://s3.local/put/", "https://s3.local/get/")

	rm := &fakeRepoManager{
		a: &fakeAttachmentsRepo{byID: map[uuid.UUID]*models.IssueAttachment{}},
	}
	s := newAttachmentService(t, rm)

	_, err := s.GetDownloadURL(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetRandomStorageKey_UniquePerCall(t *testing.T) {
	issueID := uuid.New()
	a := GetRandomStorageKey(issueID)
	b := GetRandomStorageKey(issueID)
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "issues/"+issueID.String()+"/"))
}
