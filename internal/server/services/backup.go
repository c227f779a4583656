package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/netx"
	sc "github.com/dmitrijs2005/fortuneseal/internal/server/config"
	"github.com/dmitrijs2005/fortuneseal/internal/server/metrics"
	"github.com/google/uuid"
)

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

var storageKeyPattern = regexp.MustCompile(`^backups/\d{4}/\d{2}/\d{2}/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.json$`)

// BackupService issues short-lived presigned URLs so clients can store and
// fetch backup bundles directly in S3-compatible storage.
type BackupService struct {
	config  *sc.Config
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewBackupService(config *sc.Config, clk clock.Clock, m *metrics.Metrics) *BackupService {
	if clk == nil {
		clk = clock.Real{}
	}
	if m == nil {
		m = metrics.Noop()
	}
	return &BackupService{config: config, clock: clk, metrics: m}
}

// StorageKey names a new archive object: backups/YYYY/MM/DD/<uuid>.json.
func StorageKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("backups/%04d/%02d/%02d/%s.json", t.Year(), int(t.Month()), t.Day(), uuid.New())
}

// ValidStorageKey reports whether key has the shape StorageKey produces.
func ValidStorageKey(key string) bool {
	return storageKeyPattern.MatchString(key)
}

func (s *BackupService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
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

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

func (s *BackupService) expiry() time.Duration {
	if s.config.PresignExpiry > 0 {
		return s.config.PresignExpiry
	}
	return 15 * time.Minute
}

// UploadURL allocates a storage key and returns a presigned PUT URL for it.
func (s *BackupService) UploadURL(ctx context.Context) (string, string, error) {
	if !s.config.BackupsEnabled() {
		return "", "", common.ErrorStorageDisabled
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := StorageKey(s.clock.Now())
	contentType := netx.ContentType

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(s.expiry()))
	if err != nil {
		return "", "", err
	}

	s.metrics.BackupURLIssued("upload")
	return key, req.URL, nil
}

// DownloadURL returns a presigned GET URL for a key issued by UploadURL.
func (s *BackupService) DownloadURL(ctx context.Context, key string) (string, error) {
	if !s.config.BackupsEnabled() {
		return "", common.ErrorStorageDisabled
	}
	if !ValidStorageKey(key) {
		return "", fmt.Errorf("%w: malformed backup key %q", common.ErrorValidation, key)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.expiry()))
	if err != nil {
		return "", err
	}

	s.metrics.BackupURLIssued("download")
	return req.URL, nil
}
