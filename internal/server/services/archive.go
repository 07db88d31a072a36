package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petguard/internal/logging"
	sc "github.com/dmitrijs2005/petguard/internal/server/config"
	"github.com/dmitrijs2005/petguard/internal/server/models"
	"github.com/dmitrijs2005/petguard/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Seams over the AWS SDK, replaced in tests.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const (
	archivePageSize    = 500
	archiveLinkExpires = 15 * time.Minute
)

// snapshotLine is one record in an archived snapshot. The handle is kept;
// ciphertexts are never exported.
type snapshotLine struct {
	ID                   uint64    `json:"id"`
	Owner                string    `json:"owner"`
	Category             uint8     `json:"category"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	CreatedAt            time.Time `json:"created_at"`
	HasConfidentialField bool      `json:"has_confidential_field"`
	Handle               string    `json:"handle"`
}

// Snapshot describes an uploaded archive.
type Snapshot struct {
	Key     string
	Records uint64
	URL     string
}

// ArchiveService exports the public part of the ledger as JSON lines to
// S3-compatible storage and hands out presigned download links.
type ArchiveService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
}

func NewArchiveService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config, logger logging.Logger) *ArchiveService {
	return &ArchiveService{
		db:          db,
		repomanager: m,
		config:      cfg,
		logger:      logger.With("module", "archive"),
	}
}

// SnapshotKey returns a fresh object key under snapshots/<date>/.
func SnapshotKey(now time.Time) string {
	return fmt.Sprintf("snapshots/%d/%02d/%02d/%v.jsonl", now.Year(), now.Month(), now.Day(), uuid.New())
}

func (s *ArchiveService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// encode writes every record, in id order, as one JSON line.
func (s *ArchiveService) encode(ctx context.Context) ([]byte, uint64, error) {
	records := s.repomanager.CareLogs(s.db)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	var from, count uint64
	for {
		page, err := records.List(ctx, from, archivePageSize)
		if err != nil {
			return nil, 0, fmt.Errorf("list records: %w", err)
		}
		for _, r := range page {
			if err := enc.Encode(toSnapshotLine(r)); err != nil {
				return nil, 0, err
			}
			count++
			from = r.ID + 1
		}
		if len(page) < archivePageSize {
			return buf.Bytes(), count, nil
		}
	}
}

func toSnapshotLine(r *models.CareLog) snapshotLine {
	l := snapshotLine{
		ID:                   r.ID,
		Owner:                r.Owner.Hex(),
		Category:             uint8(r.Category),
		Title:                r.Title,
		Description:          r.Description,
		CreatedAt:            r.CreatedAt.UTC(),
		HasConfidentialField: r.HasConfidentialField,
	}
	if r.HasConfidentialField {
		l.Handle = r.Handle.Hex()
	}
	return l
}

// Snapshot uploads the current ledger and returns a presigned GET link.
func (s *ArchiveService) Snapshot(ctx context.Context) (*Snapshot, error) {
	body, count, err := s.encode(ctx)
	if err != nil {
		return nil, err
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := SnapshotKey(time.Now().UTC())

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/x-ndjson"),
	}); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(archiveLinkExpires))
	if err != nil {
		return nil, fmt.Errorf("presign snapshot: %w", err)
	}

	s.logger.Info(ctx, "snapshot archived", "key", key, "records", count)
	return &Snapshot{Key: key, Records: count, URL: req.URL}, nil
}
