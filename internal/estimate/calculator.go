// Package estimate computes priced, weighed estimates from selected catalog entries.
package estimate

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	maxLineItems   = 8
	unitPriceCap   = 1000
	menuCapShare   = "0.7"
	serviceRatio   = "0.43"
	emergencyMenu  = "0.7"
	emergencyLabel = "Стандартный набор"
)

var (
	errNoGuests = errors.New("guest count must be positive")
	errNoItems  = errors.New("no items to price")
	errTooMany  = fmt.Errorf("guest count exceeds %d", domain.MaxGuestCount)
)

type Calculator struct {
	logger *zap.SugaredLogger
	now    func() time.Time
	newID  func() string
}

func NewCalculator(logger *zap.SugaredLogger) *Calculator {
	return &Calculator{
		logger: logger,
		now:    time.Now,
		newID:  newEstimateID,
	}
}

// newEstimateID returns a time-ordered UUIDv7.
func newEstimateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Calculate never fails: any arithmetic or input problem yields the emergency estimate.
// targetBudget is carried for reporting only.
func (c *Calculator) Calculate(items []domain.SelectedItem, guestCount int, eventType domain.EventType, targetBudget decimal.NullDecimal) domain.Estimate {
	est, err := c.calculate(items, guestCount, eventType)
	if err != nil {
		c.logger.Warnw("estimate calculation failed, using emergency estimate",
			"event_type", eventType,
			"guest_count", guestCount,
			"items", len(items),
			"budget", targetBudget,
			"error", err,
		)
		return c.Emergency(guestCount, eventType, err)
	}

	return est
}

func (c *Calculator) calculate(items []domain.SelectedItem, guestCount int, eventType domain.EventType) (domain.Estimate, error) {
	if guestCount <= 0 {
		return domain.Estimate{}, errNoGuests
	}
	if guestCount > domain.MaxGuestCount {
		return domain.Estimate{}, errTooMany
	}
	if len(items) == 0 {
		return domain.Estimate{}, errNoItems
	}

	std := StandardFor(NormalizeType(eventType))
	guests := decimal.NewFromInt(int64(guestCount))
	quantity := guestCount + guestCount/3

	items = items[:min(len(items), maxLineItems)]

	lines := make([]domain.LineItem, 0, len(items))
	menuCost := decimal.Zero
	weightPerGuest := 0.0

	for _, it := range items {
		if it.UnitPrice < 1 || it.UnitWeightGrams < 1 {
			return domain.Estimate{}, fmt.Errorf("malformed item %q: price %d, weight %d", it.Name, it.UnitPrice, it.UnitWeightGrams)
		}

		unitPrice := decimal.NewFromInt(int64(min(it.UnitPrice, unitPriceCap)))
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		lineWeight := float64(quantity*it.UnitWeightGrams) / float64(guestCount)

		lines = append(lines, domain.LineItem{
			Name:                it.Name,
			Unit:                it.Unit,
			Quantity:            quantity,
			UnitPrice:           unitPrice,
			LineTotal:           lineTotal,
			WeightPerGuestGrams: lineWeight,
		})

		menuCost = menuCost.Add(lineTotal)
		weightPerGuest += lineWeight
	}

	factor := decimal.NewFromInt(1)
	menuCap := guests.Mul(std.MidpointPrice()).Mul(decimal.RequireFromString(menuCapShare))
	if menuCost.GreaterThan(menuCap) {
		factor = menuCap.Div(menuCost)
		menuCap = menuCap.Round(2)
		scaled := decimal.Zero
		for i := range lines {
			lines[i].LineTotal = lines[i].LineTotal.Mul(menuCap).Div(menuCost).Round(2)
			scaled = scaled.Add(lines[i].LineTotal)
		}
		// rounding remainder goes to the last line so the lines sum to the cap
		last := len(lines) - 1
		lines[last].LineTotal = lines[last].LineTotal.Add(menuCap.Sub(scaled))
		menuCost = menuCap
	}

	// only the reported aggregate is clamped; per-line weights keep their values
	if weightPerGuest > float64(std.WeightMaxGrams) {
		weightPerGuest = float64(std.WeightMaxGrams)
	}

	menuCost = menuCost.Round(2)
	serviceCost := menuCost.Mul(decimal.RequireFromString(serviceRatio)).Round(2)
	totalCost := menuCost.Add(serviceCost)

	return domain.Estimate{
		ID:                  c.newID(),
		EventType:           eventType,
		GuestCount:          guestCount,
		LineItems:           lines,
		CorrectionFactor:    factor,
		MenuCost:            menuCost,
		ServiceCost:         serviceCost,
		TotalCost:           totalCost,
		CostPerGuest:        totalCost.DivRound(guests, 2),
		WeightPerGuestGrams: weightPerGuest,
		StaffRequired:       staffRequired(guestCount, std),
		CreatedAt:           c.now(),
	}, nil
}

// Emergency prices a single standard set at the format's midpoint. The guest count
// is raised to one when it is not positive.
func (c *Calculator) Emergency(guestCount int, eventType domain.EventType, cause error) domain.Estimate {
	guestCount = max(1, guestCount)

	std := StandardFor(NormalizeType(eventType))
	guests := decimal.NewFromInt(int64(guestCount))
	mid := std.MidpointPrice()
	total := mid.Mul(guests)
	menuCost := total.Mul(decimal.RequireFromString(emergencyMenu)).Round(2)

	warnings := []string{"🚨 Аварийный режим: смета рассчитана по стандартным нормам"}
	if cause != nil {
		warnings = append(warnings, "Причина: "+describe(cause))
	}

	return domain.Estimate{
		ID:         c.newID(),
		EventType:  eventType,
		GuestCount: guestCount,
		LineItems: []domain.LineItem{{
			Name:                emergencyLabel,
			Unit:                "набор",
			Quantity:            guestCount,
			UnitPrice:           mid,
			LineTotal:           total,
			WeightPerGuestGrams: std.MidpointWeight(),
		}},
		CorrectionFactor:    decimal.NewFromInt(1),
		MenuCost:            menuCost,
		ServiceCost:         total.Sub(menuCost),
		TotalCost:           total,
		CostPerGuest:        mid,
		WeightPerGuestGrams: std.MidpointWeight(),
		StaffRequired:       staffRequired(guestCount, std),
		Warnings:            warnings,
		Emergency:           true,
		CreatedAt:           c.now(),
	}
}

func staffRequired(guestCount int, std Standard) int {
	return max(1, int(math.Ceil(float64(guestCount)*std.StaffRatio)))
}

func describe(err error) string {
	switch {
	case errors.Is(err, errNoGuests):
		return "не указано количество гостей"
	case errors.Is(err, errTooMany):
		return "слишком большое количество гостей"
	case errors.Is(err, errNoItems):
		return "не удалось подобрать позиции меню"
	default:
		return "некорректные данные меню"
	}
}
