// Package aws defines functions used to interact with S3 compatible
// object storage (AWS S3, Cloudflare R2)
package aws

import (
	"bitwise74/medflow-api/config"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type S3Client struct {
	C         *s3.Client
	Bucket    *string
	PublicURL string

	uploader *manager.Uploader
}

// NewS3 builds a client for the configured bucket and makes sure the
// bucket exists. Setting s3.endpoint points the client at an R2 or other
// S3 compatible endpoint.
func NewS3(ctx context.Context, c *config.Config) (*S3Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3.AccessKeyID,
			c.S3.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(c.S3.Bucket)

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = c.S3.Region
		if c.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.S3.Endpoint)
			o.UsePathStyle = true
		}
	})

	_, err = client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return nil, fmt.Errorf("bucket '%s' does not exist", *bucket)
			}
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &S3Client{
		C:         client,
		Bucket:    bucket,
		PublicURL: strings.TrimSuffix(c.Storage.PublicURL, "/"),
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.Concurrency = 2
			u.PartSize = 6 << 20
		}),
	}, nil
}
