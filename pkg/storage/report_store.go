package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// maxPresignExpiry is the S3 v4 signature ceiling. Report access beyond it
// is handled by re-presigning on fetch, not by longer links.
const maxPresignExpiry = 7 * 24 * time.Hour

// ReportStore persists generated PDF reports and hands out download links.
type ReportStore interface {
	PutReport(ctx context.Context, auditID string, pdf []byte) error
	ReportURL(ctx context.Context, auditID string, expiry time.Duration) (string, error)
	DeleteReport(ctx context.Context, auditID string) error
}

// MinioReportStore keeps reports in a MinIO/S3 bucket keyed by audit id.
type MinioReportStore struct {
	client *minio.Client
	bucket string
}

// NewMinioReportStore connects to the object store and ensures the report
// bucket exists.
func NewMinioReportStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioReportStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &MinioReportStore{client: client, bucket: bucket}, nil
}

func reportKey(auditID string) string {
	return "reports/" + auditID + ".pdf"
}

// PutReport uploads a rendered report.
func (m *MinioReportStore) PutReport(ctx context.Context, auditID string, pdf []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, reportKey(auditID),
		bytes.NewReader(pdf), int64(len(pdf)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return fmt.Errorf("put report %s: %w", auditID, err)
	}
	return nil
}

// ReportURL generates a pre-signed download link. The requested expiry is
// capped at the signature ceiling.
func (m *MinioReportStore) ReportURL(ctx context.Context, auditID string, expiry time.Duration) (string, error) {
	if expiry <= 0 || expiry > maxPresignExpiry {
		expiry = maxPresignExpiry
	}
	u, err := m.client.PresignedGetObject(ctx, m.bucket, reportKey(auditID), expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign report %s: %w", auditID, err)
	}
	return u.String(), nil
}

// DeleteReport removes a stored report.
func (m *MinioReportStore) DeleteReport(ctx context.Context, auditID string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, reportKey(auditID), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete report %s: %w", auditID, err)
	}
	return nil
}
