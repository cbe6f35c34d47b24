package service

import (
	"alcyxob/fitness-market/internal/access"
	"alcyxob/fitness-market/internal/domain"
	"alcyxob/fitness-market/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMediaDisabled      = errors.New("media uploads are not configured")
	ErrInvalidContentType = errors.New("content type must be an image")
)

// ImageUploadRequest describes the file a trainer is about to upload.
type ImageUploadRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
}

// UploadTicket tells the caller where to PUT the file and under which key
// to reference it afterwards.
type UploadTicket struct {
	ObjectKey string    `json:"objectKey"`
	UploadURL string    `json:"uploadUrl"`
	ViewURL   string    `json:"viewUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type MediaService interface {
	TrainerImageUpload(ctx context.Context, principal domain.Principal, req ImageUploadRequest) (*UploadTicket, error)
	GymImageUpload(ctx context.Context, principal domain.Principal, req ImageUploadRequest) (*UploadTicket, error)
}

type mediaService struct {
	files  storage.FileStorage
	expiry time.Duration
}

// NewMediaService creates a MediaService. A nil files disables uploads.
func NewMediaService(files storage.FileStorage, expiry time.Duration) MediaService {
	if expiry <= 0 {
		expiry = storage.DefaultPresignedURLExpiry
	}
	return &mediaService{files: files, expiry: expiry}
}

func (s *mediaService) TrainerImageUpload(ctx context.Context, principal domain.Principal, req ImageUploadRequest) (*UploadTicket, error) {
	return s.ticket(ctx, principal, "trainers", req)
}

func (s *mediaService) GymImageUpload(ctx context.Context, principal domain.Principal, req ImageUploadRequest) (*UploadTicket, error) {
	return s.ticket(ctx, principal, "gyms", req)
}

func (s *mediaService) ticket(ctx context.Context, principal domain.Principal, prefix string, req ImageUploadRequest) (*UploadTicket, error) {
	if err := access.Require(principal, access.Role(domain.RoleTrainer)); err != nil {
		return nil, err
	}
	if s.files == nil {
		return nil, ErrMediaDisabled
	}
	if err := validateRequest(req, map[string]string{
		"fileName":    "File name is required",
		"contentType": "Content type is required",
	}); err != nil {
		return nil, err
	}
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidContentType
	}

	key := objectKey(prefix, principal.PrincipalID().Hex(), req.FileName)
	uploadURL, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	viewURL, err := s.files.GeneratePresignedDownloadURL(ctx, key, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign view: %w", err)
	}
	return &UploadTicket{
		ObjectKey: key,
		UploadURL: uploadURL,
		ViewURL:   viewURL,
		ExpiresAt: time.Now().UTC().Add(s.expiry),
	}, nil
}

// objectKey builds <prefix>/<owner>/<uuid><ext>; the client file name only
// contributes its extension.
func objectKey(prefix, owner, fileName string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(fileName, `\`, "/"))))
	return fmt.Sprintf("%s/%s/%s%s", prefix, owner, uuid.NewString(), ext)
}
