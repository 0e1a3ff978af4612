package render

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelRenderer_Render(t *testing.T) {
	dir := t.TempDir()
	r := NewExcelRenderer(dir)
	r.now = func() time.Time { return time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC) }

	est := domain.Estimate{
		ID:         "0195a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
		EventType:  domain.EventBanquet,
		GuestCount: 30,
		LineItems: []domain.LineItem{
			{Name: "Цезарь", Unit: "порция", Quantity: 40, UnitPrice: decimal.NewFromInt(450), LineTotal: decimal.NewFromInt(18000)},
			{Name: "Канапе", Unit: "шт", Quantity: 40, UnitPrice: decimal.NewFromInt(180), LineTotal: decimal.NewFromInt(7200)},
		},
		MenuCost:     decimal.NewFromInt(25200),
		ServiceCost:  decimal.NewFromInt(10836),
		TotalCost:    decimal.NewFromInt(36036),
		CostPerGuest: decimal.RequireFromString("1201.2"),
		CreatedAt:    time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
	}

	path, err := r.Render(context.Background(), est)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "smeta_20250301_123000_2e3f4a5b.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)

	var names []string
	for _, row := range rows {
		if len(row) > 1 && (row[1] == "Цезарь" || row[1] == "Канапе") {
			names = append(names, row[1])
		}
	}
	assert.Equal(t, []string{"Цезарь", "Канапе"}, names, "line items keep their order")

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "СМЕТА НА КЕЙТЕРИНГОВОЕ ОБСЛУЖИВАНИЕ", title)
}

func TestExcelRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExcelRenderer(t.TempDir()).Render(ctx, domain.Estimate{})
	assert.Error(t, err)
}
