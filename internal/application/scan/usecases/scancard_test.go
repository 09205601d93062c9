package usecases

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usage "captr/internal/application/usage/usecases"
	"captr/internal/shared/errors"
	"captr/internal/shared/logger"
)

type mockScanRecorder struct {
	result *usage.RecordScanResult
	err    error
	calls  int
}

func (m *mockScanRecorder) Execute(ctx context.Context, cmd usage.RecordScanCommand) (*usage.RecordScanResult, error) {
	m.calls++
	return m.result, m.err
}

type mockOCRClient struct {
	card     *ExtractedCard
	err      error
	calls    int
	lastBack string
}

func (m *mockOCRClient) ExtractCard(ctx context.Context, frontBase64, backBase64 string) (*ExtractedCard, error) {
	m.calls++
	m.lastBack = backBase64
	return m.card, m.err
}

type mockImageStore struct {
	lastKey         string
	lastContentType string
	lastData        []byte
	err             error
}

func (m *mockImageStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	m.lastKey = key
	m.lastContentType = contentType
	m.lastData = data
	if m.err != nil {
		return "", m.err
	}
	return "https://cdn.example.com/" + key, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }

func TestScanCardUseCase_MetersBeforeOCR(t *testing.T) {
	recorder := &mockScanRecorder{result: &usage.RecordScanResult{Count: 4, Limit: 10}}
	ocr := &mockOCRClient{card: &ExtractedCard{Name: "Jane Doe", Company: "Acme"}}
	uc := NewScanCardUseCase(recorder, ocr, &mockLogger{})

	result, err := uc.Execute(context.Background(), ScanCardCommand{UserID: 1, FrontImage: "aGVsbG8="})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", result.Card.Name)
	assert.Equal(t, 4, result.ScansUsed)
	assert.Equal(t, 10, result.ScanLimit)
	assert.Equal(t, 1, recorder.calls)
	assert.Equal(t, 1, ocr.calls)
}

func TestScanCardUseCase_BackImageCountsAsOneScan(t *testing.T) {
	recorder := &mockScanRecorder{result: &usage.RecordScanResult{Count: 5, Limit: 10}}
	ocr := &mockOCRClient{card: &ExtractedCard{Name: "Jane Doe"}}
	uc := NewScanCardUseCase(recorder, ocr, &mockLogger{})

	_, err := uc.Execute(context.Background(), ScanCardCommand{
		UserID:     1,
		FrontImage: "ZnJvbnQ=",
		BackImage:  "YmFjaw==",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, recorder.calls, "both sides of one card are a single scan")
	assert.Equal(t, "YmFjaw==", ocr.lastBack)
}

func TestScanCardUseCase_LimitReachedSkipsOCR(t *testing.T) {
	recorder := &mockScanRecorder{err: errors.NewLimitReachedError("monthly scan limit reached")}
	ocr := &mockOCRClient{card: &ExtractedCard{}}
	uc := NewScanCardUseCase(recorder, ocr, &mockLogger{})

	_, err := uc.Execute(context.Background(), ScanCardCommand{UserID: 1, FrontImage: "aGVsbG8="})

	require.Error(t, err)
	assert.True(t, errors.IsLimitReachedError(err))
	assert.Equal(t, 0, ocr.calls, "quota rejection must not reach the OCR provider")
}

func TestScanCardUseCase_OCRFailureIsOpaqueUpstreamError(t *testing.T) {
	recorder := &mockScanRecorder{result: &usage.RecordScanResult{Count: 1, Limit: 10}}
	ocr := &mockOCRClient{err: fmt.Errorf("openai: status 500: internal details")}
	uc := NewScanCardUseCase(recorder, ocr, &mockLogger{})

	_, err := uc.Execute(context.Background(), ScanCardCommand{UserID: 1, FrontImage: "aGVsbG8="})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUpstream, appErr.Type)
	assert.NotContains(t, appErr.Message, "openai", "provider detail must not leak to the caller")
}

func TestUploadImageUseCase_DataURL(t *testing.T) {
	store := &mockImageStore{}
	uc := NewUploadImageUseCase(store, &mockLogger{})

	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	result, err := uc.Execute(context.Background(), UploadImageCommand{
		UserID:     7,
		Filename:   "front",
		DataBase64: dataURL,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Key, "cards/7/"))
	assert.True(t, strings.HasSuffix(result.Key, ".png"))
	assert.Equal(t, "image/png", store.lastContentType)
	assert.Equal(t, raw, store.lastData)
	assert.Equal(t, "https://cdn.example.com/"+result.Key, result.URL)
}

func TestUploadImageUseCase_BarePayloadKeepsFilenameExtension(t *testing.T) {
	store := &mockImageStore{}
	uc := NewUploadImageUseCase(store, &mockLogger{})

	result, err := uc.Execute(context.Background(), UploadImageCommand{
		UserID:     7,
		Filename:   "back.webp",
		DataBase64: base64.StdEncoding.EncodeToString([]byte("img")),
	})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.Key, ".webp"))
	assert.Equal(t, "image/jpeg", store.lastContentType)
}

func TestUploadImageUseCase_InvalidBase64(t *testing.T) {
	uc := NewUploadImageUseCase(&mockImageStore{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), UploadImageCommand{
		UserID:     7,
		DataBase64: "not-!!-base64",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestUploadImageUseCase_StoreFailure(t *testing.T) {
	store := &mockImageStore{err: fmt.Errorf("s3: forbidden")}
	uc := NewUploadImageUseCase(store, &mockLogger{})

	_, err := uc.Execute(context.Background(), UploadImageCommand{
		UserID:     7,
		DataBase64: base64.StdEncoding.EncodeToString([]byte("img")),
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUpstream, appErr.Type)
}
