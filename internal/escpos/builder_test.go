package escpos

import (
	"bytes"
	"testing"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_ControlSequences(t *testing.T) {
	payload := NewBuilder().Bold(true).Align(1).Cut().Bytes()

	assert.True(t, bytes.HasPrefix(payload, []byte{0x1b, 0x40}), "starts with ESC @ init")
	assert.Contains(t, string(payload), string([]byte{0x1b, 0x45, 0x01}), "bold on")
	assert.Contains(t, string(payload), string([]byte{0x1b, 0x61, 0x01}), "center align")
	assert.True(t, bytes.HasSuffix(payload, []byte{0x1d, 0x56, 0x42, 0x00}), "ends with GS V cut")
}

func TestBuilder_PairPadsToPaperWidth(t *testing.T) {
	payload := (&Builder{}).Pair("Total", "99.00").Bytes()

	line := string(payload[:len(payload)-1]) // trailing LF
	require.Len(t, line, lineWidth)
	assert.True(t, bytes.HasPrefix([]byte(line), []byte("Total")))
	assert.True(t, bytes.HasSuffix([]byte(line), []byte("99.00")))
}

func TestBuilder_PairNeverDropsContent(t *testing.T) {
	long := "An unreasonably long product name"
	payload := (&Builder{}).Pair(long, "10.00").Bytes()
	assert.Contains(t, string(payload), long+" 10.00")
}

func TestBuildReceipt(t *testing.T) {
	order := &model.Order{
		Number:        42,
		Subtotal:      decimal.NewFromInt(120),
		DiscountTotal: decimal.NewFromInt(20),
		Total:         decimal.NewFromInt(100),
		CreatedAt:     time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
		Items: []model.OrderItem{
			{Quantity: 2, Subtotal: decimal.NewFromInt(120), Item: &model.InventoryItem{Name: "Halo-halo"}},
		},
		Payments: []model.OrderPayment{{Method: "cash", Amount: decimal.NewFromInt(100)}},
	}

	payload := BuildReceipt(order, "Fredelicacies")
	text := string(payload)

	assert.True(t, bytes.HasPrefix(payload, []byte{0x1b, 0x40}))
	assert.Contains(t, text, "Fredelicacies")
	assert.Contains(t, text, "Order #42")
	assert.Contains(t, text, "20/08/2026 14:30")
	assert.Contains(t, text, "2x Halo-halo")
	assert.Contains(t, text, "-20.00")
	assert.Contains(t, text, "TOTAL")
	assert.Contains(t, text, "100.00")
	assert.True(t, bytes.HasSuffix(payload, []byte{0x1d, 0x56, 0x42, 0x00}))
}
