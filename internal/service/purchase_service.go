package service

import (
	"context"
	"errors"
	"time"

	"almacen/internal/apierror"
	"almacen/internal/dto"
	"almacen/internal/model"
	"almacen/internal/repository"
	"almacen/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemSubtotal computes a line's subtotal from the product's CURRENT
// purchase price. Nothing is frozen at order time: editing the price later
// changes every historical subtotal that references the product.
func ItemSubtotal(product model.Product, quantity int) decimal.Decimal {
	return product.PurchasePrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// PurchaseTotal sums the item subtotals plus tax; nil tax contributes zero.
// Items without their product loaded contribute zero rather than panicking.
func PurchaseTotal(items []model.PurchaseItem, tax *decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total = total.Add(ItemSubtotal(*item.Product, item.Quantity))
	}
	if tax != nil {
		total = total.Add(*tax)
	}
	return total
}

// PurchaseService manages purchase orders. State transitions among
// pending/completed/cancelled are intentionally unconstrained (no state
// machine). Preserved as-is pending a product-owner decision, see
// DESIGN.md.
type PurchaseService interface {
	Create(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	List(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SendOrder enqueues async generation + mailing of the order PDF.
	SendOrder(ctx context.Context, id uuid.UUID, req dto.SendPurchaseOrderRequest) error
}

type purchaseService struct {
	repo         repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	dispatcher   *worker.Dispatcher
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	dispatcher *worker.Dispatcher,
) PurchaseService {
	return &purchaseService{
		repo:         repo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		dispatcher:   dispatcher,
	}
}

func mapPurchase(p model.Purchase) dto.PurchaseResponse {
	resp := dto.PurchaseResponse{
		ID:           p.ID,
		SupplierID:   p.SupplierID,
		Tax:          p.Tax,
		State:        p.State,
		PurchaseDate: p.PurchaseDate.Format("2006-01-02T15:04:05Z07:00"),
		Items:        make([]dto.PurchaseItemResponse, 0, len(p.Items)),
		Total:        PurchaseTotal(p.Items, p.Tax),
	}
	if p.DeliveryDate != nil {
		d := p.DeliveryDate.Format("2006-01-02")
		resp.DeliveryDate = &d
	}
	for _, item := range p.Items {
		ir := dto.PurchaseItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			ir.Product = item.Product.Description
			ir.Subtotal = ItemSubtotal(*item.Product, item.Quantity)
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}

func (s *purchaseService) Create(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, apierror.Validation("supplier_id invalido")
	}
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Proveedor no encontrado")
		}
		return nil, err
	}

	state := req.State
	if state == "" {
		state = model.PurchaseStateCompleted
	}

	p := &model.Purchase{
		SupplierID: supplierID,
		Tax:        req.Tax,
		State:      state,
	}
	if req.DeliveryDate != nil {
		d, err := time.Parse("2006-01-02", *req.DeliveryDate)
		if err != nil {
			return nil, apierror.Validation("delivery_date invalida (YYYY-MM-DD)")
		}
		p.DeliveryDate = &d
	}

	// Every referenced product must exist before anything is written
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, apierror.Validation("product_id invalido")
		}
		if item.Quantity < 1 {
			return nil, apierror.Validation("La cantidad debe ser positiva")
		}
		if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("Producto no encontrado: " + item.ProductID)
			}
			return nil, err
		}
		p.Items = append(p.Items, model.PurchaseItem{ProductID: productID, Quantity: item.Quantity})
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Re-read with items+products so the totals reflect loaded prices
	created, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	resp := mapPurchase(*created)
	return &resp, nil
}

func (s *purchaseService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Compra no encontrada")
		}
		return nil, err
	}
	resp := mapPurchase(*p)
	return &resp, nil
}

func (s *purchaseService) List(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	purchases, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		data = append(data, mapPurchase(p))
	}
	return &dto.PurchaseListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *purchaseService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Compra no encontrada")
		}
		return nil, err
	}

	if req.State != nil {
		p.State = *req.State
	}
	if req.Tax != nil {
		p.Tax = req.Tax
	}
	if req.DeliveryDate != nil {
		d, err := time.Parse("2006-01-02", *req.DeliveryDate)
		if err != nil {
			return nil, apierror.Validation("delivery_date invalida (YYYY-MM-DD)")
		}
		p.DeliveryDate = &d
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := mapPurchase(*p)
	return &resp, nil
}

func (s *purchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Compra no encontrada")
		}
		return err
	}
	// Items cascade with the purchase
	return s.repo.Delete(ctx, id)
}

func (s *purchaseService) SendOrder(ctx context.Context, id uuid.UUID, req dto.SendPurchaseOrderRequest) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Compra no encontrada")
		}
		return err
	}
	return s.dispatcher.EnqueueOrderMail(ctx, worker.OrderMailPayload{
		PurchaseID: id.String(),
		ToEmail:    req.ToEmail,
	})
}
