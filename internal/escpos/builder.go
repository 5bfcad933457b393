// Package escpos constructs ESC/POS command sequences for thermal receipt
// printers and delivers them over a raw TCP transport. Only the subset of the
// command set the receipts need is implemented.
package escpos

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
)

const lineWidth = 32 // characters per line on 58mm paper, Font A

// Builder accumulates ESC/POS bytes.
type Builder struct {
	buf bytes.Buffer
}

func NewBuilder() *Builder {
	b := &Builder{}
	b.Init()
	return b
}

// Init resets the printer (ESC @).
func (b *Builder) Init() *Builder {
	b.buf.Write([]byte{0x1b, 0x40})
	return b
}

// Align sets justification (ESC a): 0 left, 1 center, 2 right.
func (b *Builder) Align(n byte) *Builder {
	b.buf.Write([]byte{0x1b, 0x61, n})
	return b
}

// Bold toggles emphasized mode (ESC E).
func (b *Builder) Bold(on bool) *Builder {
	v := byte(0)
	if on {
		v = 1
	}
	b.buf.Write([]byte{0x1b, 0x45, v})
	return b
}

// Size sets character magnification (GS !): 0 normal, 0x11 double.
func (b *Builder) Size(n byte) *Builder {
	b.buf.Write([]byte{0x1d, 0x21, n})
	return b
}

// Line prints text followed by a line feed.
func (b *Builder) Line(s string) *Builder {
	b.buf.WriteString(s)
	b.buf.WriteByte(0x0a)
	return b
}

// Pair prints a left/right pair padded to the paper width.
func (b *Builder) Pair(left, right string) *Builder {
	pad := lineWidth - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	return b.Line(left + strings.Repeat(" ", pad) + right)
}

// Rule prints a full-width separator.
func (b *Builder) Rule() *Builder {
	return b.Line(strings.Repeat("-", lineWidth))
}

// Feed advances n lines (ESC d).
func (b *Builder) Feed(n byte) *Builder {
	b.buf.Write([]byte{0x1b, 0x64, n})
	return b
}

// Cut performs a partial paper cut (GS V 66).
func (b *Builder) Cut() *Builder {
	b.buf.Write([]byte{0x1d, 0x56, 0x42, 0x00})
	return b
}

// KickDrawer fires the cash drawer solenoid (ESC p 0).
func (b *Builder) KickDrawer() *Builder {
	b.buf.Write([]byte{0x1b, 0x70, 0x00, 0x19, 0xfa})
	return b
}

// Bytes returns the accumulated command sequence.
func (b *Builder) Bytes() []byte {
	return b.buf.Bytes()
}

// BuildReceipt renders a completed order as an ESC/POS byte sequence.
func BuildReceipt(order *model.Order, storeName string) []byte {
	b := NewBuilder()

	b.Align(1).Bold(true).Size(0x11).Line(storeName)
	b.Size(0).Bold(false).Line("Sales Receipt")
	b.Align(0).Feed(1)

	b.Line(fmt.Sprintf("Order #%d", order.Number))
	b.Line(order.CreatedAt.Format("02/01/2006 15:04"))
	b.Rule()

	for _, line := range order.Items {
		name := ""
		if line.Item != nil {
			name = line.Item.Name
		}
		if len(name) > 20 {
			name = name[:20]
		}
		b.Pair(fmt.Sprintf("%dx %s", line.Quantity, name), line.Subtotal.StringFixed(2))
	}

	if !order.DiscountTotal.IsZero() {
		b.Pair("Discount", "-"+order.DiscountTotal.StringFixed(2))
	}

	b.Rule()
	b.Bold(true).Pair("TOTAL", order.Total.StringFixed(2)).Bold(false)

	for _, p := range order.Payments {
		b.Pair(p.Method, p.Amount.StringFixed(2))
	}

	b.Feed(1).Align(1).Line("Thank you for your purchase!")
	b.Feed(3).Cut()

	return b.Bytes()
}
