// Package storage copies rendered schedules to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNoBucket is returned when an exporter is built without a bucket
var ErrNoBucket = errors.New("s3 bucket required")

// Config holds the construction parameters for an Exporter
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional, e.g. MinIO
	AccessKeyID     string // optional, falls back to the default credentials chain
	SecretAccessKey string
	PathStyle       bool
	Prefix          string // defaults to "schedules"
}

// Exporter writes schedule documents to a single bucket.
type Exporter struct {
	client *s3.Client
	bucket string
	prefix string
	now    func() time.Time
}

// New creates an Exporter from cfg
func New(ctx context.Context, cfg Config) (*Exporter, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// S3-compatible servers often reject the default trailing checksums
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		}
	})

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "schedules"
	}
	return &Exporter{client: client, bucket: cfg.Bucket, prefix: prefix, now: time.Now}, nil
}

// Key returns the object key a run is stored under, grouped by UTC date
func (e *Exporter) Key(runID, ext string) string {
	return path.Join(e.prefix, e.now().UTC().Format("2006-01-02"), runID+"."+ext)
}

// Put uploads body under the run's key and returns that key
func (e *Exporter) Put(ctx context.Context, runID, ext, contentType string, body []byte) (string, error) {
	key := e.Key(runID, ext)
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{"run-id": runID},
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}
