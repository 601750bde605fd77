package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/infras/otel"
	"roombook/shared/constant"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
	defaultRegion     = "auto"
)

// S3 stores public objects in the configured bucket.
type S3 interface {
	Upload(ctx context.Context, directory, fileName, contentType string, body io.Reader) (url string, err error)
	Delete(ctx context.Context, directory, objectName string) error
	ObjectNameFromURL(url string) (objectName string)
}

type s3Impl struct {
	client       *s3.Client
	bucket       string
	publicDomain string
	otel         otel.Otel
}

func New(config *config.Config, otel otel.Otel) S3 {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			config.External.S3.AccessKeyID,
			config.External.S3.SecretAccessKey,
			"",
		)),
		awsConfig.WithRegion(defaultRegion),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.External.S3.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(config.External.S3.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		client:       client,
		bucket:       config.External.S3.BucketName,
		publicDomain: strings.TrimSuffix(config.External.S3.PublicDomain, "/"),
		otel:         otel,
	}
}

func (svc *s3Impl) Upload(ctx context.Context, directory, fileName, contentType string, body io.Reader) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(&err)

	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    svc.bucket,
	})

	data, err := io.ReadAll(body)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", svc.publicDomain, objectKey), nil
}

func (svc *s3Impl) Delete(ctx context.Context, directory, objectName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	objectKey := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    svc.bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// ObjectNameFromURL returns the file name of an object previously returned by Upload,
// or an empty string when the URL does not belong to this bucket.
func (svc *s3Impl) ObjectNameFromURL(url string) string {
	key, ok := strings.CutPrefix(url, svc.publicDomain+"/")
	if !ok {
		return constant.Empty
	}

	return path.Base(key)
}
