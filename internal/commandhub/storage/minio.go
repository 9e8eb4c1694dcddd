package storage

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/pkg/log"
	"github.com/autopeer-io/commandhub/pkg/options"
)

var _ Provider = (*minioProvider)(nil)

type minioProvider struct {
	client     *minio.Client
	bucketName string
	prefix     string
	logger     log.Logger
}

// NewMinIOProvider creates an S3 compatible report archive.
func NewMinIOProvider(opts *options.S3Options, logger log.Logger) (Provider, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	minioOpts := &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	}
	if opts.InsecureSkipVerify {
		minioOpts.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	client, err := minio.New(opts.Endpoint, minioOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioProvider{
		client:     client,
		bucketName: opts.BucketName,
		prefix:     opts.Prefix,
		logger:     logger.WithName("storage"),
	}, nil
}

func (p *minioProvider) CheckBucket(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		p.logger.Info("Bucket does not exist, creating...", "bucket", p.bucketName)
		if err := p.client.MakeBucket(ctx, p.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

func (p *minioProvider) SaveReport(ctx context.Context, report *model.BatchReport) (string, error) {
	if report == nil || report.Result == nil {
		return "", errors.New("empty report")
	}
	body, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	key := ObjectKey(p.prefix, report.Result.ID)
	_, err = p.client.PutObject(ctx, p.bucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
		UserMetadata: map[string]string{
			"action":  report.Result.ActionID,
			"session": report.SessionID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", key, err)
	}
	p.logger.Debug("Batch report archived", "bucket", p.bucketName, "key", key)
	return key, nil
}

func (p *minioProvider) ReportURL(ctx context.Context, executionID string, expiry time.Duration) (string, error) {
	if executionID == "" {
		return "", errors.New("execution id is empty")
	}
	reqParams := make(url.Values)
	reqParams.Set("response-content-type", "application/json")

	u, err := p.client.PresignedGetObject(ctx, p.bucketName, ObjectKey(p.prefix, executionID), expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned url: %w", err)
	}
	return u.String(), nil
}

// ObjectKey is where the report of an execution is stored.
func ObjectKey(prefix, executionID string) string {
	return path.Join(prefix, executionID+".json")
}
