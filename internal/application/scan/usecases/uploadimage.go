package usecases

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"captr/internal/shared/biztime"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// ImageStore abstracts the object store holding card images. Put writes the
// object and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// UploadImageCommand represents the input for uploading one card image.
// DataBase64 accepts both a bare base64 payload and a data URL.
type UploadImageCommand struct {
	UserID     uint
	Filename   string
	DataBase64 string
}

// UploadImageResult represents the stored image.
type UploadImageResult struct {
	URL string
	Key string
}

// UploadImageUseCase handles decoding and storing card images.
type UploadImageUseCase struct {
	store  ImageStore
	logger logger.Interface
}

// NewUploadImageUseCase creates a new UploadImageUseCase instance.
func NewUploadImageUseCase(store ImageStore, logger logger.Interface) *UploadImageUseCase {
	return &UploadImageUseCase{
		store:  store,
		logger: logger,
	}
}

func (uc *UploadImageUseCase) Execute(ctx context.Context, cmd UploadImageCommand) (*UploadImageResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	if cmd.DataBase64 == "" {
		return nil, errors.NewValidationError("image data is required")
	}

	payload := cmd.DataBase64
	contentType := "image/jpeg"
	if strings.HasPrefix(payload, "data:") {
		header, rest, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, errors.NewValidationError("malformed data URL")
		}
		payload = rest
		contentType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.NewValidationError("image data is not valid base64")
	}
	if len(data) == 0 {
		return nil, errors.NewValidationError("image data is empty")
	}

	key := uc.objectKey(cmd.UserID, cmd.Filename, contentType)
	url, err := uc.store.Put(ctx, key, contentType, data)
	if err != nil {
		uc.logger.Errorw("failed to store card image", "user_id", cmd.UserID, "key", key, "error", err)
		return nil, errors.NewUpstreamError("failed to store the card image")
	}

	uc.logger.Debugw("card image stored", "user_id", cmd.UserID, "key", key, "bytes", len(data))

	return &UploadImageResult{URL: url, Key: key}, nil
}

func (uc *UploadImageUseCase) objectKey(userID uint, filename, contentType string) string {
	ext := path.Ext(filename)
	if ext == "" {
		switch contentType {
		case "image/png":
			ext = ".png"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".jpg"
		}
	}
	return fmt.Sprintf("cards/%d/%d-%s%s", userID, biztime.NowUTC().Unix(), uuid.NewString(), ext)
}
