package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"complyhub-backend/shared/config"
)

// PayloadArchiver retains raw verified webhook payloads for compliance
type PayloadArchiver interface {
	ArchivePayload(eventID string, raw []byte) error
}

// ArchiveService stores raw webhook payloads in an object bucket so every
// provisioning run can be reconstructed from the exact bytes the processor
// sent
type ArchiveService struct {
	client     *minio.Client
	bucketName string
}

// NewArchiveService connects to MinIO and ensures the archive bucket exists
func NewArchiveService() (*ArchiveService, error) {
	cfg := config.GetConfig()

	// Parse endpoint URL to get host
	parsedURL, err := url.Parse(cfg.MinIOServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MinIO endpoint: %v", err)
	}

	endpoint := parsedURL.Host
	useSSL := cfg.MinIOUseSSL

	log.Printf("🔗 Connecting to MinIO: %s (SSL: %v)", endpoint, useSSL)

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIORootUser, cfg.MinIORootPassword, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	service := &ArchiveService{
		client:     minioClient,
		bucketName: cfg.MinIOBucketName,
	}

	if err := service.initializeBucket(); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *ArchiveService) initializeBucket() error {
	ctx := context.Background()

	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("✅ MinIO bucket '%s' created successfully", s.bucketName)
	}

	return nil
}

// ArchivePayload stores one raw payload under events/<event-id>.json.
// Overwriting the same key on duplicate delivery is harmless - the bytes are
// identical by definition of the signature check.
func (s *ArchiveService) ArchivePayload(eventID string, raw []byte) error {
	if eventID == "" {
		return fmt.Errorf("event ID is required")
	}

	objectName := fmt.Sprintf("events/%s.json", eventID)
	_, err := s.client.PutObject(
		context.Background(),
		s.bucketName,
		objectName,
		bytes.NewReader(raw),
		int64(len(raw)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to archive payload %s: %v", objectName, err)
	}

	return nil
}
