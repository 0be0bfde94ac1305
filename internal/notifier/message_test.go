package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"samsariya/internal/domain"
)

func messageOrder() *domain.Order {
	order := &domain.Order{
		CustomerName: "Алишер",
		Items:        map[string]int{"самса": 3, "пакет": 1},
		Total:        95000,
		Delivery:     "Доставка по адресу",
		Time:         "к 18:00",
	}
	order.Normalize()
	return order
}

func TestStatusMessage_ContainsHeaderAndItems(t *testing.T) {
	text := StatusMessage(messageOrder(), domain.StatusAccepted)

	assert.True(t, strings.HasPrefix(text, "✅ Ваш заказ принят"))
	assert.Contains(t, text, "Алишер")
	assert.Contains(t, text, "95,000 сум")
	assert.Contains(t, text, "• самса: 3 шт")
	assert.Contains(t, text, "• пакет: 1 шт")
}

func TestStatusMessage_DeliveryDetailsOnlyWhenReady(t *testing.T) {
	order := messageOrder()

	for _, status := range []domain.Status{domain.StatusAccepted, domain.StatusInProgress, domain.StatusCompleted} {
		text := StatusMessage(order, status)
		assert.NotContains(t, text, "Доставка по адресу", "status %s", status)
		assert.NotContains(t, text, "к 18:00", "status %s", status)
	}

	ready := StatusMessage(order, domain.StatusReady)
	assert.Contains(t, ready, "🚚 Доставка по адресу")
	assert.Contains(t, ready, "⏰ к 18:00")
}

func TestStatusMessage_UnknownStatusGetsGenericHeader(t *testing.T) {
	text := StatusMessage(messageOrder(), domain.StatusNew)
	assert.Contains(t, text, "Статус заказа обновлён: new")
}

func TestStatusMessage_MissingNameUsesPlaceholder(t *testing.T) {
	order := &domain.Order{Items: map[string]int{}, Total: 0}
	order.Normalize()

	text := StatusMessage(order, domain.StatusAccepted)
	assert.Contains(t, text, "👤 Клиент")
}

func TestNewOrderMessage_BasicFields(t *testing.T) {
	order := messageOrder()
	order.CreatedAt = time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	text := NewOrderMessage(order)

	assert.True(t, strings.HasPrefix(text, "🆕 Новый заказ!"))
	assert.Contains(t, text, "Алишер")
	assert.Contains(t, text, "95,000 сум")
	assert.Contains(t, text, "2 позиций")
	assert.Contains(t, text, "30.08.2026 14:05")
	assert.NotContains(t, text, "ТРЕБУЕТ ПРОВЕРКИ ОПЛАТЫ")
}

func TestNewOrderMessage_FlagsPaymentCheck(t *testing.T) {
	order := messageOrder()
	order.Method = "💳 Карта"
	order.Normalize()

	text := NewOrderMessage(order)
	assert.Contains(t, text, "⚠️ ТРЕБУЕТ ПРОВЕРКИ ОПЛАТЫ")
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{95000, "95,000"},
		{1250000, "1,250,000"},
		{-45000, "-45,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in))
	}
}
