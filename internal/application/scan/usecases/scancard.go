// Package usecases provides application-level use cases for the scan flow:
// metering a scan against the caller's quota, extracting card fields through
// the OCR boundary, and uploading card images.
package usecases

import (
	"context"

	usage "captr/internal/application/usage/usecases"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

// ExtractedCard holds the fields the OCR provider read off a card image.
// Fields the provider could not find are empty strings.
type ExtractedCard struct {
	Name     string `json:"name"`
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
}

// OCRClient abstracts the vision provider that reads card images. backBase64
// is empty when only the front of the card was captured.
type OCRClient interface {
	ExtractCard(ctx context.Context, frontBase64, backBase64 string) (*ExtractedCard, error)
}

// ScanRecorder meters one scan against the caller's entitlement.
type ScanRecorder interface {
	Execute(ctx context.Context, cmd usage.RecordScanCommand) (*usage.RecordScanResult, error)
}

// ScanCardCommand represents the input for scanning one card. The back image
// is optional; both sides of one card count as a single scan.
type ScanCardCommand struct {
	UserID     uint
	FrontImage string
	BackImage  string
}

// ScanCardResult carries the extracted fields and the post-scan quota state.
type ScanCardResult struct {
	Card      *ExtractedCard
	ScansUsed int
	ScanLimit int
}

// ScanCardUseCase handles one scan: the quota permit is taken first, then the
// image goes to OCR. A scan that passes metering but fails at the provider
// still consumed its permit; the counter is the number of scans attempted
// under the quota, not the number that extracted cleanly.
type ScanCardUseCase struct {
	recorder ScanRecorder
	ocr      OCRClient
	logger   logger.Interface
}

// NewScanCardUseCase creates a new ScanCardUseCase instance.
func NewScanCardUseCase(recorder ScanRecorder, ocr OCRClient, logger logger.Interface) *ScanCardUseCase {
	return &ScanCardUseCase{
		recorder: recorder,
		ocr:      ocr,
		logger:   logger,
	}
}

func (uc *ScanCardUseCase) Execute(ctx context.Context, cmd ScanCardCommand) (*ScanCardResult, error) {
	if cmd.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	if cmd.FrontImage == "" {
		return nil, errors.NewValidationError("front image is required")
	}

	recorded, err := uc.recorder.Execute(ctx, usage.RecordScanCommand{UserID: cmd.UserID})
	if err != nil {
		return nil, err
	}

	extracted, err := uc.ocr.ExtractCard(ctx, cmd.FrontImage, cmd.BackImage)
	if err != nil {
		uc.logger.Errorw("OCR extraction failed", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewUpstreamError("failed to read the card image")
	}

	return &ScanCardResult{
		Card:      extracted,
		ScansUsed: recorded.Count,
		ScanLimit: recorded.Limit,
	}, nil
}
