package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"submeet-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxFileSize is the upload ceiling (10 MiB).
const MaxFileSize = 10 * 1024 * 1024

// allowedMimeTypes is the fixed manuscript-format allow-list.
var allowedMimeTypes = map[string]bool{
	"text/plain":      true,
	"application/pdf": true,
	"application/rtf": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.oasis.opendocument.text":                                 true,
}

var allowedFileRoles = map[string]bool{
	"manuscript":   true,
	"cover_letter": true,
	"bio":          true,
}

// FileService implements file intake: validate, hash, dedupe, store the blob
// remotely, then persist metadata. The blob write and the metadata insert
// are kept all-or-nothing by a compensating delete.
type FileService struct {
	db        *gorm.DB
	store     ObjectStore
	urlExpiry time.Duration
	now       func() time.Time
}

func NewFileService(db *gorm.DB, store ObjectStore, urlExpiry time.Duration) *FileService {
	return &FileService{db: db, store: store, urlExpiry: urlExpiry, now: time.Now}
}

// UploadInput describes one incoming blob.
type UploadInput struct {
	SubmissionID int
	UserID       int
	FieldID      string
	FileRole     string
	OriginalName string
	MimeType     string
	Size         int64
	Content      io.Reader
}

// ValidateUpload applies the size, MIME and role checks. It runs before any
// database or storage access so rejected blobs cost nothing.
func ValidateUpload(mimeType string, size int64, role string) error {
	if size > MaxFileSize {
		return &ValidationError{Reason: "File too large. Maximum size is 10MB."}
	}
	if !allowedMimeTypes[mimeType] {
		return &ValidationError{Reason: "Invalid file type. Accepted: .doc, .docx, .pdf, .txt, .rtf, .odt"}
	}
	if role != "" && !allowedFileRoles[role] {
		return &ValidationError{Reason: "Invalid file role"}
	}
	return nil
}

// Upload runs the full intake: ownership check, duplicate detection by
// sha256, remote write, metadata insert. Returns the metadata record and a
// fresh presigned download URL (empty string when signing fails; signing is
// best-effort).
func (s *FileService) Upload(ctx context.Context, input UploadInput) (*models.SubmissionFile, string, error) {
	if err := ValidateUpload(input.MimeType, input.Size, input.FileRole); err != nil {
		return nil, "", err
	}
	role := input.FileRole
	if role == "" {
		role = "manuscript"
	}

	// Ownership-scoped lookup: a foreign submission is indistinguishable
	// from a missing one.
	var submission models.Submission
	if err := s.db.Where("submission_id = ? AND user_id = ? AND delete_at IS NULL",
		input.SubmissionID, input.UserID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	content, err := io.ReadAll(io.LimitReader(input.Content, MaxFileSize+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(content)) > MaxFileSize {
		return nil, "", &ValidationError{Reason: "File too large. Maximum size is 10MB."}
	}

	digest := sha256.Sum256(content)
	fileHash := hex.EncodeToString(digest[:])

	var duplicates int64
	if err := s.db.Model(&models.SubmissionFile{}).
		Where("submission_id = ? AND file_hash = ?", input.SubmissionID, fileHash).
		Count(&duplicates).Error; err != nil {
		return nil, "", err
	}
	if duplicates > 0 {
		return nil, "", &ValidationError{Reason: "This file has already been uploaded for this submission"}
	}

	ext := strings.ToLower(filepath.Ext(input.OriginalName))
	fileName := fmt.Sprintf("%d_%s_%s%s", input.SubmissionID, input.FieldID, uuid.New().String(), ext)
	storedPath := fmt.Sprintf("submissions/%d/%s", input.SubmissionID, fileName)

	// Remote write first: a failed put leaves no record behind.
	if err := s.store.Put(ctx, storedPath, bytes.NewReader(content), int64(len(content)), input.MimeType); err != nil {
		return nil, "", fmt.Errorf("failed to store file: %w", err)
	}

	record := models.SubmissionFile{
		SubmissionID:  input.SubmissionID,
		FileName:      fileName,
		OriginalName:  input.OriginalName,
		StoredPath:    storedPath,
		FileSizeBytes: int64(len(content)),
		MimeType:      input.MimeType,
		FileHash:      fileHash,
		FileType:      role,
		UploadedAt:    s.now(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		// Compensate so a failed metadata write does not orphan the blob.
		_ = s.store.Remove(ctx, storedPath)
		return nil, "", fmt.Errorf("failed to save file record: %w", err)
	}

	signedURL, err := s.store.PresignedGet(ctx, storedPath, s.urlExpiry)
	if err != nil {
		signedURL = ""
	}
	return &record, signedURL, nil
}

// DownloadURL re-derives a fresh presigned URL for an owned file. The lookup
// is scoped through the submission's owner.
func (s *FileService) DownloadURL(ctx context.Context, fileID, submissionID, userID int) (*models.SubmissionFile, string, error) {
	var file models.SubmissionFile
	err := s.db.
		Joins("JOIN submissions ON submissions.submission_id = submission_files.submission_id").
		Where("submission_files.file_id = ? AND submission_files.submission_id = ? AND submissions.user_id = ? AND submissions.delete_at IS NULL",
			fileID, submissionID, userID).
		First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	signedURL, err := s.store.PresignedGet(ctx, file.StoredPath, s.urlExpiry)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign download url: %w", err)
	}
	return &file, signedURL, nil
}
