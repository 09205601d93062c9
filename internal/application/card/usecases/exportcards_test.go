package usecases

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"captr/internal/domain/card"
	"captr/internal/shared/errors"
)

func TestExportCardsUseCase_Execute_CSV(t *testing.T) {
	mockRepo := &mockCardRepository{
		ListByUserFunc: func(ctx context.Context, userID uint, limit, offset int) ([]*card.Card, error) {
			return []*card.Card{
				storedCard(t, 1, "card_a", card.Fields{Name: "Jane Doe", Company: "Acme", Email: "jane@acme.com"}),
				storedCard(t, 2, "card_b", card.Fields{Name: "John Smith", Phone: "+1 555 0100"}),
			}, nil
		},
	}

	uc := NewExportCardsUseCase(mockRepo, &mockLogger{})
	result, err := uc.Execute(context.Background(), 7, ExportFormatCSV)

	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "captr-contacts.csv", result.Filename)

	records, err := csv.NewReader(strings.NewReader(string(result.Content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "Jane Doe", records[1][0])
	assert.Equal(t, "Acme", records[1][2])
	assert.Equal(t, "+1 555 0100", records[2][4])
}

func TestExportCardsUseCase_Execute_XLSX(t *testing.T) {
	mockRepo := &mockCardRepository{
		ListByUserFunc: func(ctx context.Context, userID uint, limit, offset int) ([]*card.Card, error) {
			return []*card.Card{
				storedCard(t, 1, "card_a", card.Fields{Name: "Jane Doe"}),
			}, nil
		},
	}

	uc := NewExportCardsUseCase(mockRepo, &mockLogger{})
	result, err := uc.Execute(context.Background(), 7, ExportFormatXLSX)

	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.ContentType)
	assert.Equal(t, "captr-contacts.xlsx", result.Filename)
	assert.NotEmpty(t, result.Content)
	// xlsx files are zip archives.
	assert.Equal(t, []byte{0x50, 0x4b}, result.Content[:2])
}

func TestExportCardsUseCase_Execute_UnsupportedFormat(t *testing.T) {
	uc := NewExportCardsUseCase(&mockCardRepository{}, &mockLogger{})
	_, err := uc.Execute(context.Background(), 7, "pdf")

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestExportCardsUseCase_Execute_DefaultsToXLSX(t *testing.T) {
	uc := NewExportCardsUseCase(&mockCardRepository{}, &mockLogger{})
	result, err := uc.Execute(context.Background(), 7, "")

	require.NoError(t, err)
	assert.Equal(t, "captr-contacts.xlsx", result.Filename)
}
