package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	searchPrefix      = "найти "
	searchResultLimit = 10

	lowWeightGrams  = 200
	largeEventFloor = 50
)

const (
	greetingText = "Здравствуйте! Я помогу рассчитать смету кейтеринга. " +
		"Напишите формат и количество гостей, например: «Фуршет на 40 человек, бюджет 150 тыс»."
	apologyText = "Извините, не получилось обработать запрос. " +
		"Попробуйте переформулировать, например: «Банкет на 30 человек, бюджет 200 тыс»."
	relaxText = "Не удалось подобрать блюда под заданные условия. " +
		"Попробуйте увеличить бюджет или выбрать другой формат мероприятия."
	correctionHint  = "Для корректировки напишите: «подешевле», «премиум», «меньше мяса» или «больше овощей»."
	serviceInfoText = "Мы предоставляем полный кейтеринговый сервис:\n" +
		"• официанты и бармены\n" +
		"• повара на площадке\n" +
		"• доставка и сервировка\n" +
		"• посуда, текстиль и оборудование\n" +
		"• уборка после мероприятия\n" +
		"Стоимость обслуживания включается в смету отдельной строкой."
	noOrderText = "У вас пока нет рассчитанных смет. Напишите, например: «Кофе-брейк на 20 человек»."
)

// serviceStandard is the per-guest price range and waiter load quoted for a format.
type serviceStandard struct {
	eventType       domain.EventType
	pricePerGuest   [2]int
	guestsPerWaiter int
}

var serviceStandards = []serviceStandard{
	{domain.EventCoffeeBreak, [2]int{1000, 2000}, 30},
	{domain.EventReception, [2]int{2000, 4000}, 20},
	{domain.EventBanquet, [2]int{4000, 8000}, 10},
	{domain.EventCorporate, [2]int{2500, 5000}, 15},
}

func formatMoney(d decimal.Decimal) string {
	s := d.Round(0).String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + " ₽"
}

func formatInt(n int) string {
	return strings.TrimSuffix(formatMoney(decimal.NewFromInt(int64(n))), " ₽")
}

func formatEstimate(est domain.Estimate, params domain.EventParameters, guessed, documented bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📋 Смета: %s, %d гостей\n", est.EventType.Title(), est.GuestCount)
	if params.Date != "" {
		fmt.Fprintf(&b, "Дата: %s\n", params.Date)
	}
	if len(params.SpecialRequests) > 0 {
		fmt.Fprintf(&b, "Особые пожелания: %s\n", strings.Join(params.SpecialRequests, ", "))
	}

	b.WriteString("\nМеню:\n")
	for i, li := range est.LineItems {
		fmt.Fprintf(&b, "%d. %s: %d %s × %s = %s\n",
			i+1, li.Name, li.Quantity, li.Unit, formatMoney(li.UnitPrice), formatMoney(li.LineTotal))
	}

	fmt.Fprintf(&b, "\nСтоимость меню: %s\n", formatMoney(est.MenuCost))
	fmt.Fprintf(&b, "Обслуживание: %s\n", formatMoney(est.ServiceCost))
	fmt.Fprintf(&b, "Итого: %s (%s на гостя)\n", formatMoney(est.TotalCost), formatMoney(est.CostPerGuest))
	fmt.Fprintf(&b, "Выход на гостя: %.0f г\n", est.WeightPerGuestGrams)
	fmt.Fprintf(&b, "Персонал: %d чел.\n", est.StaffRequired)

	if line := budgetAnalysis(est, params); line != "" {
		b.WriteString("\n" + line + "\n")
	}

	if recs := recommendations(est); len(recs) > 0 {
		b.WriteString("\nРекомендации:\n")
		for _, r := range recs {
			b.WriteString("• " + r + "\n")
		}
	}

	for _, w := range est.Warnings {
		b.WriteString("\n" + w)
	}
	if len(est.Warnings) > 0 {
		b.WriteString("\n")
	}

	if est.Explanation != "" {
		b.WriteString("\n💬 " + est.Explanation + "\n")
	}

	if guessed {
		fmt.Fprintf(&b, "\nФормат определён как «%s» по числу гостей и бюджету. "+
			"Если формат другой, уточните, например: «банкет на %d человек».\n",
			est.EventType.Title(), est.GuestCount)
	}

	if documented {
		b.WriteString("\n📎 Документ со сметой сформирован.\n")
	} else {
		b.WriteString("\nДокумент сформировать не удалось, смета приведена в сообщении.\n")
	}

	b.WriteString("\n" + correctionHint)

	return b.String()
}

func budgetAnalysis(est domain.Estimate, params domain.EventParameters) string {
	if !params.BudgetTotal.Valid {
		return ""
	}

	diff := params.BudgetTotal.Decimal.Sub(est.TotalCost)
	if diff.IsNegative() {
		return fmt.Sprintf("⚠️ Превышение бюджета на %s. Напишите «подешевле», чтобы подобрать бюджетные позиции.",
			formatMoney(diff.Neg()))
	}
	return fmt.Sprintf("✅ Укладываемся в бюджет, остаток %s.", formatMoney(diff))
}

func recommendations(est domain.Estimate) []string {
	var recs []string
	if est.WeightPerGuestGrams < lowWeightGrams {
		recs = append(recs, fmt.Sprintf("выход на гостя меньше %d г, стоит добавить ещё блюд", lowWeightGrams))
	}
	if est.GuestCount >= largeEventFloor {
		recs = append(recs, "для мероприятий от 50 гостей дарим комплимент от шефа")
	}
	return recs
}

func formatCorrection(est domain.Estimate) string {
	return fmt.Sprintf("✏️ %s.\nИтого по смете: %s (%s на гостя). "+
		"Менеджер уточнит состав при подтверждении заказа.",
		est.Explanation, formatMoney(est.TotalCost), formatMoney(est.CostPerGuest))
}

func clarifyGuests(params domain.EventParameters) string {
	if params.EventType != domain.EventUnset {
		return fmt.Sprintf("Формат: %s. Уточните, пожалуйста, количество гостей, например: «%s на 30 человек».",
			params.EventType.Title(), params.EventType.Title())
	}
	return "Уточните, пожалуйста, количество гостей, например: «Фуршет на 30 человек»."
}

func formatMenuInfo(categories []string, stats domain.CatalogStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "В меню %d позиций в %d категориях:\n", stats.TotalItems, stats.CategoryCount)
	for _, c := range categories {
		fmt.Fprintf(&b, "• %s: %d\n", c, stats.PerCategoryCount[c])
	}
	b.WriteString("\nДля поиска напишите «найти» и название, например: «найти канапе».")
	return b.String()
}

func formatSearch(query string, results []domain.CatalogEntry) string {
	if len(results) == 0 {
		return fmt.Sprintf("Ничего не найдено по запросу «%s». Попробуйте другое слово.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Найдено позиций по запросу «%s»: %d\n", query, len(results))
	for _, e := range results[:min(len(results), searchResultLimit)] {
		fmt.Fprintf(&b, "• %s (%s): %s, %d г\n", e.Name, e.Code, formatMoney(decimal.NewFromInt(int64(e.UnitPrice))), e.UnitWeightGrams)
	}
	if len(results) > searchResultLimit {
		fmt.Fprintf(&b, "…и ещё %d", len(results)-searchResultLimit)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatPricing(params domain.EventParameters) string {
	var b strings.Builder

	if !params.HasGuests() {
		b.WriteString("💰 Стоимость на гостя по форматам:\n")
		for _, s := range serviceStandards {
			fmt.Fprintf(&b, "• %s: %s – %s, 1 официант на %d гостей\n",
				s.eventType.Title(), formatInt(s.pricePerGuest[0]), formatMoney(decimal.NewFromInt(int64(s.pricePerGuest[1]))), s.guestsPerWaiter)
		}
		b.WriteString("\nНапишите количество гостей, и я посчитаю варианты бюджета.")
		return b.String()
	}

	g := params.GuestCount
	fmt.Fprintf(&b, "💰 Варианты бюджета на %d гостей:\n", g)
	for _, s := range serviceStandards {
		if params.EventType != domain.EventUnset && params.EventType != s.eventType {
			continue
		}
		low, high := s.pricePerGuest[0]*g, s.pricePerGuest[1]*g
		fmt.Fprintf(&b, "\n%s:\n• эконом: %s\n• оптимальный: %s\n• премиум: %s\n• официантов: %d\n",
			s.eventType.Title(),
			formatMoney(decimal.NewFromInt(int64(low))),
			formatMoney(decimal.NewFromInt(int64((low+high)/2))),
			formatMoney(decimal.NewFromInt(int64(high))),
			int(math.Ceil(float64(g)/float64(s.guestsPerWaiter))),
		)
	}
	fmt.Fprintf(&b, "\nРекомендуем %d позиций в меню.", 12+g/10)
	return b.String()
}

func formatOrderStatus(session domain.Session) string {
	est := session.CurrentEstimate
	if est == nil {
		return noOrderText
	}
	return fmt.Sprintf("Последняя смета %s от %s: %s, %d гостей, итого %s. "+
		"Менеджер свяжется с вами для подтверждения заказа.",
		est.ID, est.CreatedAt.Format("02.01.2006 15:04"), est.EventType.Title(), est.GuestCount, formatMoney(est.TotalCost))
}
