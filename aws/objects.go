package aws

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Put uploads an object and returns its public URL
func (s *S3Client) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:       s.Bucket,
		Key:          aws.String(key),
		Body:         body,
		CacheControl: aws.String("public, max-age=31536000, immutable"),
		ContentType:  aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s, %w", key, err)
	}

	return s.PublicURL + "/" + key, nil
}

// Delete removes the object a public URL points to
func (s *S3Client) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.PublicURL+"/")
	if !ok || key == "" {
		return fmt.Errorf("url %q is not served from this bucket", url)
	}

	_, err := s.C.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s, %w", key, err)
	}

	return nil
}
