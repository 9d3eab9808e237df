// Package images backs up stored shoe images to S3-compatible object
// storage (minio in development).
package images

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/shoestock/internal/server/config"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/shoes"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// Uploader copies shoe images into an S3 bucket.
type Uploader struct {
	config *config.Config
}

func NewUploader(cfg *config.Config) *Uploader {
	return &Uploader{config: cfg}
}

// StorageKey builds an object key for a shoe image. The uuid suffix keeps
// repeated backups of the same code from overwriting each other.
func StorageKey(code string) string {
	d := time.Now()
	return fmt.Sprintf("shoes/%d/%d/%s-%v", d.Year(), d.Month(), code, uuid.New())
}

func (u *Uploader) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(u.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.config.S3RootUser,     // MINIO_ROOT_USER
			u.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(u.config.S3BaseEndpoint)
	})

	return client, nil
}

// Upload stores data in the configured bucket under key.
func (u *Uploader) Upload(ctx context.Context, client *s3.Client, key string, data []byte) error {
	bucket := u.config.S3Bucket

	_, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("error uploading %s: %w", key, err)
	}
	return nil
}

// BackupAll uploads every stored shoe image and returns how many
// objects were written. Records without an image are skipped.
func (u *Uploader) BackupAll(ctx context.Context, repo shoes.Repository) (int, error) {
	client, err := u.getClient(ctx)
	if err != nil {
		return 0, err
	}

	records, err := repo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing shoes: %w", err)
	}

	uploaded := 0
	for _, shoe := range records {
		if len(shoe.Image) == 0 {
			continue
		}
		if err := u.Upload(ctx, client, StorageKey(shoe.Code), shoe.Image); err != nil {
			return uploaded, err
		}
		uploaded++
	}

	return uploaded, nil
}
