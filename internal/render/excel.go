// Package render writes estimates out as spreadsheet documents.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Смета"

// service cost split shown in the document
var serviceSplit = []struct {
	label string
	share string
}{
	{"Обслуживание персоналом", "0.7"},
	{"Доставка", "0.2"},
	{"Оборудование", "0.1"},
}

type ExcelRenderer struct {
	dir string
	now func() time.Time
}

func NewExcelRenderer(dir string) *ExcelRenderer {
	return &ExcelRenderer{dir: dir, now: time.Now}
}

// Render writes est to a new .xlsx file and returns its path.
func (r *ExcelRenderer) Render(ctx context.Context, est domain.Estimate) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := r.fill(f, est); err != nil {
		return "", fmt.Errorf("failed to fill estimate sheet: %w", err)
	}

	name := fmt.Sprintf("smeta_%s.xlsx", r.now().Format("20060102_150405"))
	if len(est.ID) >= 8 {
		name = fmt.Sprintf("smeta_%s_%s.xlsx", r.now().Format("20060102_150405"), est.ID[len(est.ID)-8:])
	}
	path := filepath.Join(r.dir, name)

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save estimate document: %w", err)
	}

	return path, nil
}

type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (w *sheetWriter) set(col int, value interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(sheetName, cell, value)
}

func (w *sheetWriter) style(fromCol, toCol, style int) {
	if w.err != nil {
		return
	}
	from, _ := excelize.CoordinatesToCellName(fromCol, w.row)
	to, _ := excelize.CoordinatesToCellName(toCol, w.row)
	w.err = w.f.SetCellStyle(sheetName, from, to, style)
}

func (w *sheetWriter) next(n int) {
	w.row += n
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func (r *ExcelRenderer) fill(f *excelize.File, est domain.Estimate) error {
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}
	total, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})
	if err != nil {
		return err
	}

	w := &sheetWriter{f: f, row: 1}

	w.set(1, "СМЕТА НА КЕЙТЕРИНГОВОЕ ОБСЛУЖИВАНИЕ")
	w.style(1, 1, title)
	w.next(2)

	w.set(1, "Формат:")
	w.set(2, est.EventType.Title())
	w.next(1)
	w.set(1, "Гостей:")
	w.set(2, est.GuestCount)
	w.next(1)
	w.set(1, "Дата расчёта:")
	w.set(2, est.CreatedAt.Format("02.01.2006 15:04"))
	w.next(1)
	w.set(1, "Номер сметы:")
	w.set(2, est.ID)
	w.next(2)

	for i, h := range []string{"№", "Наименование", "Ед.", "Кол-во", "Цена, ₽", "Сумма, ₽"} {
		w.set(i+1, h)
	}
	w.style(1, 6, header)
	w.next(1)

	for i, li := range est.LineItems {
		w.set(1, i+1)
		w.set(2, li.Name)
		w.set(3, li.Unit)
		w.set(4, li.Quantity)
		w.set(5, money(li.UnitPrice))
		w.set(6, money(li.LineTotal))
		w.style(5, 6, amount)
		w.next(1)
	}
	w.next(1)

	w.set(2, "Итого меню")
	w.set(6, money(est.MenuCost))
	w.style(6, 6, total)
	w.next(2)

	for _, s := range serviceSplit {
		w.set(2, s.label)
		w.set(6, money(est.ServiceCost.Mul(decimal.RequireFromString(s.share))))
		w.style(6, 6, amount)
		w.next(1)
	}
	w.set(2, "Итого услуги")
	w.set(6, money(est.ServiceCost))
	w.style(6, 6, total)
	w.next(2)

	w.set(2, "ИТОГО")
	w.set(6, money(est.TotalCost))
	w.style(6, 6, total)
	w.next(1)
	w.set(2, "На одного гостя")
	w.set(6, money(est.CostPerGuest))
	w.style(6, 6, amount)
	w.next(1)
	w.set(2, "Выход на гостя, г")
	w.set(6, est.WeightPerGuestGrams)
	w.next(1)
	w.set(2, "Персонал, чел.")
	w.set(6, est.StaffRequired)
	w.next(2)

	for _, warning := range est.Warnings {
		w.set(1, warning)
		w.next(1)
	}
	if est.Explanation != "" {
		w.set(1, est.Explanation)
		w.next(1)
	}

	if w.err != nil {
		return w.err
	}

	if err := f.SetColWidth(sheetName, "A", "A", 16); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "B", "B", 60); err != nil {
		return err
	}
	return f.SetColWidth(sheetName, "C", "F", 14)
}
