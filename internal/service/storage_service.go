package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
)

const (
	evidencePathPrefix = "evidence"
	presignedURLTTL    = 15 * time.Minute
	sniffLen           = 512
)

var (
	ErrStorageDisabled      = errors.New("evidence storage is disabled")
	ErrFileTooBig           = errors.New("evidence file exceeds size limit")
	ErrInvalidFileType      = errors.New("invalid file type, only PDF, JPEG and PNG are allowed")
	ErrInvalidLearnerID     = errors.New("learner id is required")
	ErrBucketCreationFailed = errors.New("failed to create storage bucket")
	ErrUploadFailed         = errors.New("failed to upload file")
	ErrDeleteFailed         = errors.New("failed to delete file")
	ErrURLGenerationFailed  = errors.New("failed to generate presigned URL")
	ErrUnauthorizedAccess   = errors.New("unauthorized access to resource")

	allowedEvidenceTypes = map[string]string{
		"application/pdf": ".pdf",
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
	}
	learnerKeySegment = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

type EvidenceObject struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// EvidenceStorage stores the files behind file-sourced certificates.
type EvidenceStorage interface {
	// UploadEvidence stores the file under the learner's namespace and returns
	// the object key to use as a certificate file_url.
	UploadEvidence(ctx context.Context, learnerID string, file io.Reader, fileSize int64) (EvidenceObject, error)

	// DeleteEvidence removes an object owned by the learner.
	DeleteEvidence(ctx context.Context, learnerID, objectKey string) error

	// EvidenceURL returns a short-lived download URL.
	EvidenceURL(ctx context.Context, objectKey string) (string, error)
}

type DisabledEvidenceStorage struct{}

func (DisabledEvidenceStorage) UploadEvidence(context.Context, string, io.Reader, int64) (EvidenceObject, error) {
	return EvidenceObject{}, ErrStorageDisabled
}

func (DisabledEvidenceStorage) DeleteEvidence(context.Context, string, string) error {
	return ErrStorageDisabled
}

func (DisabledEvidenceStorage) EvidenceURL(context.Context, string) (string, error) {
	return "", ErrStorageDisabled
}

// MinIOEvidenceStorage implements EvidenceStorage on MinIO/S3-compatible storage.
type MinIOEvidenceStorage struct {
	client     *minio.Client
	bucketName string
	maxSize    int64
	initOnce   sync.Once
	initErr    error
}

// NewMinIOEvidenceStorage builds the client only. The bucket is created on first use.
func NewMinIOEvidenceStorage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, maxSize int64) (*MinIOEvidenceStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinIOEvidenceStorage{client: client, bucketName: bucketName, maxSize: maxSize}, nil
}

func (s *MinIOEvidenceStorage) lazyInit(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucketName)
		if err != nil {
			s.initErr = fmt.Errorf("%w: check bucket existence: %v", ErrBucketCreationFailed, err)
			return
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{}); err != nil {
				s.initErr = fmt.Errorf("%w: create bucket: %v", ErrBucketCreationFailed, err)
			}
		}
	})
	return s.initErr
}

// UploadEvidence sniffs the content type from the file bytes; the client's
// Content-Type header is ignored.
func (s *MinIOEvidenceStorage) UploadEvidence(ctx context.Context, learnerID string, file io.Reader, fileSize int64) (EvidenceObject, error) {
	outcome := "success"
	defer func() { observability.RecordEvidenceUpload(ctx, outcome, fileSize) }()

	segment := learnerKeySegment.ReplaceAllString(strings.TrimSpace(learnerID), "")
	if segment == "" {
		outcome = "bad_request"
		return EvidenceObject{}, ErrInvalidLearnerID
	}
	if s.maxSize > 0 && fileSize > s.maxSize {
		outcome = "too_big"
		return EvidenceObject{}, ErrFileTooBig
	}

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		outcome = "error"
		return EvidenceObject{}, fmt.Errorf("%w: read file for content detection: %v", ErrUploadFailed, err)
	}
	buf = buf[:n]
	detected := strings.ToLower(strings.TrimSpace(strings.Split(http.DetectContentType(buf), ";")[0]))
	ext, allowed := allowedEvidenceTypes[detected]
	if !allowed {
		outcome = "invalid_type"
		return EvidenceObject{}, ErrInvalidFileType
	}

	if err := s.lazyInit(ctx); err != nil {
		outcome = "error"
		return EvidenceObject{}, err
	}

	objectKey := fmt.Sprintf("%s/learner-%s/%s%s", evidencePathPrefix, segment, uuid.NewString(), ext)
	_, err = s.client.PutObject(ctx, s.bucketName, objectKey, io.MultiReader(bytes.NewReader(buf), file), fileSize, minio.PutObjectOptions{
		ContentType: detected,
		UserMetadata: map[string]string{
			"Learner-ID":  learnerID,
			"Uploaded-At": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		outcome = "error"
		return EvidenceObject{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return EvidenceObject{Key: objectKey, ContentType: detected, Size: fileSize}, nil
}

// IsEvidenceObjectKey reports whether key names an uploaded evidence object
// rather than an external or legacy file path.
func IsEvidenceObjectKey(key string) bool {
	return strings.HasPrefix(key, evidencePathPrefix+"/learner-")
}

func (s *MinIOEvidenceStorage) DeleteEvidence(ctx context.Context, learnerID, objectKey string) error {
	if strings.TrimSpace(objectKey) == "" {
		return nil
	}
	if strings.Contains(objectKey, "..") {
		return ErrUnauthorizedAccess
	}
	segment := learnerKeySegment.ReplaceAllString(strings.TrimSpace(learnerID), "")
	if segment == "" || !strings.HasPrefix(objectKey, fmt.Sprintf("%s/learner-%s/", evidencePathPrefix, segment)) {
		return ErrUnauthorizedAccess
	}
	if err := s.lazyInit(ctx); err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucketName, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

func (s *MinIOEvidenceStorage) EvidenceURL(ctx context.Context, objectKey string) (string, error) {
	if strings.TrimSpace(objectKey) == "" {
		return "", fmt.Errorf("%w: empty object key", ErrURLGenerationFailed)
	}
	if err := s.lazyInit(ctx); err != nil {
		return "", err
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucketName, objectKey, presignedURLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrURLGenerationFailed, err)
	}
	return u.String(), nil
}

// Ping reports whether the bucket endpoint is reachable.
func (s *MinIOEvidenceStorage) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucketName); err != nil {
		return fmt.Errorf("evidence storage ping: %w", err)
	}
	return nil
}
