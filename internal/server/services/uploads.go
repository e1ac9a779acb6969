package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/paperkeeper/internal/common"
	sc "github.com/dmitrijs2005/paperkeeper/internal/server/config"
	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
	"github.com/dmitrijs2005/paperkeeper/internal/server/ratelimit"
	"github.com/google/uuid"
)

const uploadURLValidity = 15 * time.Minute

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

	now = time.Now
)

// UploadService hands out presigned object-storage URLs so clients can
// upload a local PDF and then create a paper from it.
type UploadService struct {
	config  *sc.Config
	limiter *ratelimit.Guard
}

func NewUploadService(cfg *sc.Config, limiter *ratelimit.Guard) *UploadService {
	return &UploadService{config: cfg, limiter: limiter}
}

// StorageKey is users/<uid>/<yyyy>/<mm>/<dd>/<uuid>.pdf.
func StorageKey(userID string, t time.Time) string {
	return fmt.Sprintf("users/%s/%04d/%02d/%02d/%s.pdf", userID, t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *UploadService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
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

// Presign returns a PUT URL for a new object and its permanent public URL,
// which is what the paper stores.
func (s *UploadService) Presign(ctx context.Context, userID, clientID string) (*models.UploadTicket, error) {
	if err := s.limiter.Check(ctx, clientID); err != nil {
		return nil, err
	}
	base := strings.TrimRight(s.config.S3PublicBaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("%w: uploads need a public base URL", common.ErrorInternal)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating presign client: %w", err)
	}

	issued := now()
	bucket := s.config.S3Bucket
	key := StorageKey(userID, issued)

	put, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String("application/pdf"),
	}, s3.WithPresignExpires(uploadURLValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	return &models.UploadTicket{
		Key:       key,
		UploadURL: put.URL,
		FileURL:   base + "/" + key,
		ExpiresAt: issued.Add(uploadURLValidity),
	}, nil
}
