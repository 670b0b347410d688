package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"tourismrelay/config"
	"tourismrelay/infras/otel"
	"tourismrelay/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"
)

var ErrNoBucket = errors.New("no S3 bucket configured")

type S3 interface {
	Enabled() bool
	UploadBytes(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error)
}

type s3Impl struct {
	client       *s3.Client
	bucket       string
	publicDomain string
	otel         otel.Otel
}

func (svc *s3Impl) Enabled() bool {
	return svc.client != nil && svc.bucket != ""
}

func (svc *s3Impl) UploadBytes(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadBytes")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !svc.Enabled() {
		return constant.Empty, ErrNoBucket
	}

	scope.SetAttributes(map[string]any{
		otelAttrFileName: fileName,
		otelAttrBucket:   svc.bucket,
	})

	objectKey := path.Join(directory, fileName)
	reader := bytes.NewReader(data)

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(objectKey),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(reader.Size()),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return ObjectURL(svc.publicDomain, svc.bucket, objectKey), nil
}

// ObjectURL prefers the public domain and falls back to s3://bucket/key.
func ObjectURL(publicDomain, bucket, objectKey string) string {
	if publicDomain != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(publicDomain, "/"), objectKey)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, objectKey)
}

// New returns an S3 client for the configured bucket. Without a bucket the
// returned value reports Enabled() == false and refuses uploads.
func New(config *config.Config, otel otel.Otel) S3 {
	s3Cfg := config.External.S3

	if s3Cfg.BucketName == "" {
		log.Info().Msg("No S3 bucket configured, object storage disabled")

		return &s3Impl{otel: otel}
	}

	staticProvider := credentials.NewStaticCredentialsProvider(
		s3Cfg.AccessKeyID,
		s3Cfg.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration, object storage disabled")

		return &s3Impl{otel: otel}
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Cfg.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.APIEndpoint)
		}

		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		client:       client,
		bucket:       s3Cfg.BucketName,
		publicDomain: s3Cfg.PublicDomain,
		otel:         otel,
	}
}
