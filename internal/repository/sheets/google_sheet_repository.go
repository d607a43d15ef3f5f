package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/adnanfarms/chickledger/internal/config"
	"github.com/adnanfarms/chickledger/internal/domain/models"
)

// dailyPricesRange is the sheet tab receiving one row per daily snapshot.
const dailyPricesRange = "DailyPrices!A:H"

// Repository defines the export operations supported by the Google Sheets adapter.
type Repository interface {
	AppendDailySnapshot(ctx context.Context, entry models.DailyChickPrice) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDailySnapshot appends the daily cost snapshot as a spreadsheet row.
func (r *GoogleSheetRepository) AppendDailySnapshot(ctx context.Context, entry models.DailyChickPrice) error {
	values := []interface{}{
		entry.Date,
		entry.CurrentStock,
		entry.PerChickPrice,
		entry.TotalCost,
		entry.FeedCost,
		entry.MedicineCost,
		entry.ExtraExpenses,
		entry.MortalityCost,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, dailyPricesRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append daily snapshot into range %s: %w", dailyPricesRange, err)
	}

	r.logger.Debug("daily snapshot appended to sheet", zap.String("date", entry.Date))
	return nil
}
