package worker

// order_mailer.go
// Processes order-mail jobs from QueueOrderMail: loads the purchase with
// its items and current product prices, renders the A4 order PDF and mails
// it to the requested address.

import (
	"context"
	"encoding/json"
	"fmt"

	"almacen/internal/infra"
	"almacen/internal/model"
	"almacen/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// OrderMailWorker renders and mails purchase order PDFs.
type OrderMailWorker struct {
	repo       repository.PurchaseRepository
	mailer     *infra.Mailer
	pdfStorage string
}

func NewOrderMailWorker(repo repository.PurchaseRepository, mailer *infra.Mailer, pdfStorage string) *OrderMailWorker {
	return &OrderMailWorker{repo: repo, mailer: mailer, pdfStorage: pdfStorage}
}

// Process renders the PDF and sends it. Totals reflect prices at send time,
// same as every other read of a purchase.
func (w *OrderMailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload OrderMailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("order_mailer: invalid payload: %w", err)
	}

	id, err := uuid.Parse(payload.PurchaseID)
	if err != nil {
		return fmt.Errorf("order_mailer: invalid purchase id: %w", err)
	}
	purchase, err := w.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("order_mailer: load purchase: %w", err)
	}

	pdfPath, err := infra.GenerateOrderPDF(purchase, orderTotal(purchase), w.pdfStorage)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Orden de compra %s", purchase.ID)
	body := fmt.Sprintf("Adjuntamos la orden de compra del %s.", purchase.PurchaseDate.Format("02/01/2006"))
	if err := w.mailer.SendOrder(payload.ToEmail, subject, body, pdfPath); err != nil {
		return fmt.Errorf("order_mailer: send: %w", err)
	}

	log.Info().
		Str("purchase_id", payload.PurchaseID).
		Str("to", payload.ToEmail).
		Msg("purchase order mailed")
	return nil
}

func orderTotal(p *model.Purchase) decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.PurchasePrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if p.Tax != nil {
		total = total.Add(*p.Tax)
	}
	return total
}
