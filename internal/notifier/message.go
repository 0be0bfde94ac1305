package notifier

import (
	"fmt"
	"sort"
	"strings"

	"samsariya/internal/domain"
)

var statusTexts = map[domain.Status]string{
	domain.StatusAccepted:      "✅ Ваш заказ принят",
	domain.StatusInProgress:    "👨‍🍳 Ваш заказ готовится",
	domain.StatusReady:         "🚚 Ваш заказ в пути",
	domain.StatusCompleted:     "🏠 Заказ доставлен",
	domain.StatusCancelled:     "❌ Заказ отменён",
	domain.StatusPaymentFailed: "❌ Оплата отклонена",
}

// StatusMessage builds the customer-facing text for a status change.
// Delivery and time details are appended only when the order is ready.
func StatusMessage(order *domain.Order, status domain.Status) string {
	header, ok := statusTexts[status]
	if !ok {
		header = fmt.Sprintf("Статус заказа обновлён: %s", status)
	}

	name := order.Contact.Name
	if name == "" {
		name = "Клиент"
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "👤 %s\n", name)
	fmt.Fprintf(&b, "💰 %s сум\n", FormatAmount(order.Total))
	b.WriteString("📦 Состав:\n")
	b.WriteString(itemLines(order.Items))

	if status == domain.StatusReady {
		fmt.Fprintf(&b, "\n🚚 %s", order.Delivery)
		if order.Time != "" {
			fmt.Fprintf(&b, "\n⏰ %s", order.Time)
		}
	}

	return b.String()
}

// NewOrderMessage builds the admin fan-out text for a freshly created order.
func NewOrderMessage(order *domain.Order) string {
	name := order.Contact.Name
	if name == "" {
		name = "—"
	}

	var b strings.Builder
	b.WriteString("🆕 Новый заказ!\n\n")
	if order.NeedsPaymentCheck {
		b.WriteString("⚠️ ТРЕБУЕТ ПРОВЕРКИ ОПЛАТЫ\n")
	}
	fmt.Fprintf(&b, "🆔 %s\n", order.ID.Hex())
	fmt.Fprintf(&b, "👤 %s\n", name)
	fmt.Fprintf(&b, "💰 %s сум\n", FormatAmount(order.Total))
	fmt.Fprintf(&b, "📦 %d позиций\n", len(order.Items))
	fmt.Fprintf(&b, "📅 %s\n", order.CreatedAt.Format("02.01.2006 15:04"))
	return b.String()
}

func itemLines(items map[string]int) string {
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• %s: %d шт", key, items[key])
	}
	return b.String()
}

// FormatAmount renders an integer amount with thousands separators,
// e.g. 1250000 → "1,250,000".
func FormatAmount(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
