package parser

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/konigunited/restdelbot/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultWeightGrams = 100
	defaultPrice       = 500
)

var numberRe = regexp.MustCompile(`\d+`)

// filename keyword -> category, first match wins
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"канапе", "Канапе"},
	{"брускетт", "Брускетты"},
	{"салат", "Салаты"},
	{"банкет", "Банкетные блюда"},
	{"горячие", "Горячие закуски"},
	{"холодные", "Холодные закуски"},
	{"десерт", "Десерты"},
	{"сэндвич", "Сэндвичи"},
	{"выпечка", "Выпечка"},
	{"напитки", "Напитки"},
	{"гарнир", "Гарниры"},
	{"сет", "Готовые сеты"},
	{"меню", "Основное меню"},
}

// TableFileSource reads a directory of tab-separated .txt files, one category per file.
// Rows are "code, name, description, weight, price"; the header row is optional.
type TableFileSource struct {
	dir    string
	logger *zap.SugaredLogger
}

func NewTableFileSource(dir string, logger *zap.SugaredLogger) *TableFileSource {
	return &TableFileSource{dir: dir, logger: logger}
}

func (s *TableFileSource) Name() string {
	return domain.SourceTableFiles
}

func (s *TableFileSource) Load(ctx context.Context) ([]domain.CategoryRecords, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create menu directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(s.dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list menu files: %w", err)
	}

	if len(files) == 0 {
		s.logger.Warnw("no menu files found, writing samples", "dir", s.dir)
		if err := WriteSampleFiles(s.dir); err != nil {
			return nil, err
		}
		if files, err = filepath.Glob(filepath.Join(s.dir, "*.txt")); err != nil {
			return nil, fmt.Errorf("failed to list menu files: %w", err)
		}
	}

	sort.Strings(files)

	var groups []domain.CategoryRecords
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := s.readFile(path)
		if err != nil {
			s.logger.Warnw("failed to read menu file", "file", path, "error", err)
			continue
		}

		category := CategoryFromFilename(filepath.Base(path))
		groups = appendGroup(groups, category, records)

		s.logger.Infow("menu file parsed", "file", filepath.Base(path), "category", category, "items", len(records))
	}

	return groups, nil
}

func (s *TableFileSource) readFile(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []domain.RawRecord
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if line == 1 && isHeader(text) {
			continue
		}

		rec, ok := ParseTableLine(text, line)
		if !ok {
			s.logger.Warnw("skipping malformed menu row", "file", filepath.Base(path), "line", line)
			continue
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ParseTableLine parses one tab-separated row. Rows with three or four columns are
// the short form: missing weight defaults to 100 g and missing price to 500.
func ParseTableLine(text string, line int) (domain.RawRecord, bool) {
	parts := strings.Split(text, "\t")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch {
	case len(parts) >= 5:
		if parts[1] == "" {
			return domain.RawRecord{}, false
		}
		return domain.RawRecord{
			Code:        parts[0],
			Name:        parts[1],
			Description: parts[2],
			WeightGrams: max(1, extractNumber(parts[3], defaultWeightGrams)),
			Price:       max(1, extractNumber(parts[4], defaultPrice)),
			Unit:        "шт",
			Line:        line,
		}, true
	case len(parts) >= 3:
		if parts[1] == "" {
			return domain.RawRecord{}, false
		}
		price := defaultPrice
		if len(parts) > 3 {
			price = extractNumber(parts[3], defaultPrice)
		}
		return domain.RawRecord{
			Code:        parts[0],
			Name:        parts[1],
			WeightGrams: max(1, extractNumber(parts[2], defaultWeightGrams)),
			Price:       max(1, price),
			Unit:        "шт",
			Line:        line,
		}, true
	default:
		return domain.RawRecord{}, false
	}
}

// CategoryFromFilename maps a file name onto a category by keyword, falling back to the name itself.
func CategoryFromFilename(filename string) string {
	lower := strings.ToLower(filename)
	for _, ck := range categoryKeywords {
		if strings.Contains(lower, ck.keyword) {
			return ck.category
		}
	}

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	words := strings.Fields(strings.ReplaceAll(stem, "_", " "))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func isHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "артикул") || strings.Contains(lower, "наименование")
}

func extractNumber(s string, fallback int) int {
	m := numberRe.FindString(s)
	if m == "" {
		return fallback
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return fallback
	}
	return n
}

func appendGroup(groups []domain.CategoryRecords, category string, records []domain.RawRecord) []domain.CategoryRecords {
	for i := range groups {
		if groups[i].Category == category {
			groups[i].Records = append(groups[i].Records, records...)
			return groups
		}
	}
	return append(groups, domain.CategoryRecords{Category: category, Records: records})
}
