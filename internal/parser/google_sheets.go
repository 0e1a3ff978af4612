package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/konigunited/restdelbot/internal/domain"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheetsSource reads the catalog from a spreadsheet laid out as category rows
// followed by item rows: code, name, description, weight, price, unit.
type GoogleSheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
}

type Config struct {
	CredentialsJSON []byte
	SpreadsheetID   string
	ReadRange       string
}

func NewGoogleSheetsSource(ctx context.Context, cfg Config) (*GoogleSheetsSource, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(cfg.CredentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	readRange := cfg.ReadRange
	if readRange == "" {
		readRange = "A:F"
	}

	return &GoogleSheetsSource{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     readRange,
	}, nil
}

func (p *GoogleSheetsSource) Name() string {
	return domain.SourceGoogleSheets
}

// WithSpreadsheet returns a source reading another spreadsheet through the same client.
func (p *GoogleSheetsSource) WithSpreadsheet(spreadsheetID string) *GoogleSheetsSource {
	c := *p
	c.spreadsheetID = spreadsheetID
	return &c
}

func (p *GoogleSheetsSource) Load(ctx context.Context) ([]domain.CategoryRecords, error) {
	if p.spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is not configured")
	}

	resp, err := p.service.Spreadsheets.Values.Get(p.spreadsheetID, p.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("no data found in spreadsheet")
	}

	return ParseSheetRows(resp.Values), nil
}

// ParseSheetRows groups spreadsheet rows by the category rows that precede them.
// The first row is the header.
func ParseSheetRows(values [][]interface{}) []domain.CategoryRecords {
	var groups []domain.CategoryRecords
	currentCategory := "Основное меню"

	for i := 1; i < len(values); i++ {
		row := values[i]
		if len(row) == 0 {
			continue
		}

		// category row
		if len(row) == 1 || (cell(row, 0) != "" && cell(row, 1) == "") {
			currentCategory = cell(row, 0)
			continue
		}

		if cell(row, 1) == "" {
			continue
		}

		rec := domain.RawRecord{
			Code:        cell(row, 0),
			Name:        cell(row, 1),
			Description: cell(row, 2),
			WeightGrams: max(1, extractNumber(cell(row, 3), defaultWeightGrams)),
			Price:       max(1, extractNumber(cell(row, 4), defaultPrice)),
			Unit:        cell(row, 5),
			Line:        i + 1,
		}

		groups = appendGroup(groups, currentCategory, []domain.RawRecord{rec})
	}

	return groups
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[i]))
}
