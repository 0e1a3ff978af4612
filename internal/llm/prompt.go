package llm

import (
	"fmt"
	"strings"

	"github.com/konigunited/restdelbot/internal/domain"
)

// maxPromptEntries bounds how much of the catalog goes into a prompt.
const maxPromptEntries = 40

func BuildEstimatePrompt(request string, entries []domain.CatalogEntry) string {
	var sb strings.Builder

	sb.WriteString("Ты менеджер кейтеринговой компании. Составь смету по запросу клиента.\n\n")
	sb.WriteString("Нормы на гостя:\n")
	sb.WriteString("- кофе-брейк: 200-300 г, 1500-2500 ₽\n")
	sb.WriteString("- фуршет: 300-500 г, 2500-4500 ₽\n")
	sb.WriteString("- банкет: 600-1200 г, 4000-8000 ₽\n\n")

	if len(entries) > 0 {
		sb.WriteString("Доступные позиции (название | категория | цена ₽ | вес г):\n")
		for _, e := range entries[:min(len(entries), maxPromptEntries)] {
			fmt.Fprintf(&sb, "- %s | %s | %d | %d\n", e.Name, e.Category, e.UnitPrice, e.UnitWeightGrams)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Ответь ТОЛЬКО JSON-объектом без пояснений вокруг него:\n")
	sb.WriteString(`{"event_type": "banquet|reception|coffee-break|corporate", "guest_count": 0, ` +
		`"items": [{"name": "", "quantity": 0, "price": 0}], "total_cost": 0, "staff_required": 0, "explanation": ""}`)
	sb.WriteString("\n\nЗапрос клиента:\n")
	sb.WriteString(request)

	return sb.String()
}

func BuildChatPrompt(message string) string {
	return "Ты вежливый менеджер кейтеринговой компании. Ответь клиенту коротко, по-русски, " +
		"и предложи рассчитать смету, если это уместно.\n\nСообщение клиента:\n" + message
}
