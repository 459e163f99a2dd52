package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	// Endpoint is set for S3 compatible stores; empty means AWS.
	Endpoint string
}

// S3Client uploads public images to an S3 compatible bucket.
type S3Client struct {
	s3Client *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	baseURL  string
}

func NewS3Client(config S3Config) (*S3Client, error) {
	awsConfig := &aws.Config{Region: aws.String(config.Region)}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}
	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", config.Bucket, config.Region)
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		baseURL = strings.TrimRight(config.Endpoint, "/") + "/" + config.Bucket
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return &S3Client{
		s3Client: s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   config.Bucket,
		baseURL:  baseURL,
	}, nil
}

func (c *S3Client) UploadFile(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	key := objectName(folder, contentType, time.Now())
	_, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(c.bucket),
		Key:          aws.String(key),
		Body:         file,
		ACL:          aws.String(s3.ObjectCannedACLPublicRead),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=86400"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return c.baseURL + "/" + key, nil
}

func (c *S3Client) DeleteFile(ctx context.Context, fileURL string) error {
	prefix := c.baseURL + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return fmt.Errorf("not an object of bucket %s: %s", c.bucket, fileURL)
	}
	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(strings.TrimPrefix(fileURL, prefix)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (c *S3Client) Close() error {
	return nil
}
