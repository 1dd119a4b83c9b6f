package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Tushar822/bugtracker/internal/common"
	sc "github.com/Tushar822/bugtracker/internal/server/config"
	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/Tushar822/bugtracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Test seams for the AWS SDK plumbing.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type AttachmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewAttachmentService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *AttachmentService {
	return &AttachmentService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

// GetRandomStorageKey returns a date-partitioned object key for a new
// attachment upload.
func GetRandomStorageKey(issueID uuid.UUID) string {
	d := time.Now()
	return fmt.Sprintf("issues/%s/%d/%d/%d/%v", issueID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *AttachmentService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// CreateUpload registers attachment metadata for an issue and returns
// the stored record along with a presigned PUT URL the client uploads
// the file body to.
func (s *AttachmentService) CreateUpload(ctx context.Context, caller *models.User, issueID uuid.UUID, fileName string) (*models.IssueAttachment, string, error) {

	if fileName == "" {
		return nil, "", fmt.Errorf("%w: file_name is required", common.ErrorValidation)
	}

	if _, err := s.repomanager.Issues(s.db).GetByID(ctx, issueID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", common.ErrorInternal
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(issueID)

	// Presigned PUT
	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	attachment := &models.IssueAttachment{
		IssueID:      issueID,
		FileName:     fileName,
		StorageKey:   key,
		UploadedByID: caller.ID,
	}

	attachment, err = s.repomanager.Attachments(s.db).Create(ctx, attachment)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return attachment, req.URL, nil
}

func (s *AttachmentService) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]*models.IssueAttachment, error) {
	result, err := s.repomanager.Attachments(s.db).ListByIssue(ctx, issueID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// GetDownloadURL returns a presigned GET URL for an existing attachment
// of the given issue.
func (s *AttachmentService) GetDownloadURL(ctx context.Context, issueID, attachmentID uuid.UUID) (string, error) {

	attachment, err := s.repomanager.Attachments(s.db).GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	if attachment.IssueID != issueID {
		return "", common.ErrorNotFound
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key := attachment.StorageKey

	// Presigned GET
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", common.ErrorInternal
	}

	return req.URL, nil
}
