package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/rancher/internal/config"
)

const snapshotRange = "Snapshots!A:H"

// SnapshotRow is one weekly financial snapshot appended to the spreadsheet.
type SnapshotRow struct {
	Date          string
	PeriodStart   string
	PeriodEnd     string
	TotalRevenue  float64
	DirectCosts   float64
	FixedCosts    float64
	NetResult     float64
	ActiveAnimals int
}

// Exporter appends financial snapshots to an external spreadsheet.
type Exporter interface {
	AppendSnapshot(ctx context.Context, row SnapshotRow) error
}

// GoogleSheetExporter implements the Exporter interface using the official
// Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSnapshot appends the snapshot values as a new spreadsheet row.
func (e *GoogleSheetExporter) AppendSnapshot(ctx context.Context, row SnapshotRow) error {
	values := []interface{}{
		row.Date,
		row.PeriodStart,
		row.PeriodEnd,
		row.TotalRevenue,
		row.DirectCosts,
		row.FixedCosts,
		row.NetResult,
		row.ActiveAnimals,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, snapshotRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append snapshot row into range %s: %w", snapshotRange, err)
	}

	e.logger.Debug("snapshot appended to sheet", zap.String("range", snapshotRange))
	return nil
}
