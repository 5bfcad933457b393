package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: builds the ESC/POS payload and
// prints it, renders the PDF copy, and chains an email job when the customer
// left an address. All delivery is best-effort — a dead printer never blocks
// the sale, it only shows up in the logs and the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/escpos"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/infra"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// ReceiptWorker processes receipt jobs from QueueReceipt.
type ReceiptWorker struct {
	orders     repository.OrderRepository
	printer    *escpos.Printer
	dispatcher *Dispatcher
	rdb        *redis.Client
	storeName  string
	pdfPath    string
}

func NewReceiptWorker(orders repository.OrderRepository, printer *escpos.Printer, dispatcher *Dispatcher, rdb *redis.Client, storeName, pdfPath string) *ReceiptWorker {
	return &ReceiptWorker{
		orders:     orders,
		printer:    printer,
		dispatcher: dispatcher,
		rdb:        rdb,
		storeName:  storeName,
		pdfPath:    pdfPath,
	}
}

// Process prints and archives one receipt.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("receipt_worker: bad order id")
		return
	}
	order, err := w.orders.FindByID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("receipt_worker: order not found")
		SendToDLQ(ctx, w.rdb, QueueReceipt, "receipt", raw, "order not found", 1)
		return
	}

	// 1. Thermal print
	if w.printer.Enabled() {
		if err := w.printer.Print(ctx, escpos.BuildReceipt(order, w.storeName)); err != nil {
			log.Warn().Err(err).Int("order", order.Number).Msg("receipt_worker: print failed")
			SendToDLQ(ctx, w.rdb, QueueReceipt, "receipt", raw, fmt.Sprintf("print failed: %v", err), 1)
		}
	}

	// 2. PDF copy
	pdfFile, err := infra.GenerateReceiptPDF(order, w.storeName, w.pdfPath)
	if err != nil {
		log.Error().Err(err).Int("order", order.Number).Msg("receipt_worker: pdf generation failed")
		return
	}

	// 3. Chain email job
	if payload.CustomerEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: payload.CustomerEmail,
			Subject: fmt.Sprintf("%s — receipt for order #%d", w.storeName, order.Number),
			Body:    fmt.Sprintf("Thank you for your purchase. Your receipt for order #%d is attached.", order.Number),
			PDFPath: pdfFile,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Error().Err(err).Str("to", payload.CustomerEmail).Msg("receipt_worker: enqueue email failed")
		}
	}

	log.Info().Int("order", order.Number).Str("pdf", pdfFile).Msg("receipt_worker: receipt processed")
}
