package estimate

import (
	"strings"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
)

// Bucket is the coarse format the cost standards are defined for.
type Bucket string

const (
	BucketCoffeeBreak Bucket = "coffee_break"
	BucketReception   Bucket = "reception"
	BucketBanquet     Bucket = "banquet"
)

type Standard struct {
	WeightMinGrams int
	WeightMaxGrams int
	PriceMin       int
	PriceMax       int
	StaffRatio     float64
}

func (s Standard) MidpointPrice() decimal.Decimal {
	return decimal.NewFromInt(int64(s.PriceMin + s.PriceMax)).Div(decimal.NewFromInt(2))
}

func (s Standard) MidpointWeight() float64 {
	return float64(s.WeightMinGrams+s.WeightMaxGrams) / 2
}

var standards = map[Bucket]Standard{
	BucketCoffeeBreak: {WeightMinGrams: 200, WeightMaxGrams: 300, PriceMin: 1500, PriceMax: 2500, StaffRatio: 0.03},
	BucketReception:   {WeightMinGrams: 300, WeightMaxGrams: 500, PriceMin: 2500, PriceMax: 4500, StaffRatio: 0.05},
	BucketBanquet:     {WeightMinGrams: 600, WeightMaxGrams: 1200, PriceMin: 4000, PriceMax: 8000, StaffRatio: 0.1},
}

func StandardFor(b Bucket) Standard {
	return standards[b]
}

// Normalize folds an event type onto a bucket by substring. Corporate and anything
// unrecognized fold to reception.
func Normalize(eventType string) Bucket {
	t := strings.ToLower(eventType)

	switch {
	case strings.Contains(t, "банкет") || strings.Contains(t, "banquet"):
		return BucketBanquet
	case strings.Contains(t, "фуршет") || strings.Contains(t, "reception"):
		return BucketReception
	case strings.Contains(t, "кофе") || strings.Contains(t, "брейк") ||
		strings.Contains(t, "coffee") || strings.Contains(t, "break"):
		return BucketCoffeeBreak
	default:
		return BucketReception
	}
}

// NormalizeType is Normalize for the typed event tag.
func NormalizeType(t domain.EventType) Bucket {
	return Normalize(string(t))
}
