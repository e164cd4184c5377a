package service

import (
	"context"
	"errors"

	"almacen/internal/apierror"
	"almacen/internal/dto"
	"almacen/internal/model"
	"almacen/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService tracks per-product stock rows.
//
// StockForProduct deliberately reads only the FIRST row (id order) and
// returns 0 when there is none, even when duplicates exist. The report
// queries sum across all rows instead; the two behaviors are distinct on
// purpose and must not be unified.
type InventoryService interface {
	Create(ctx context.Context, req dto.CreateInventoryRequest) (*dto.InventoryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.InventoryResponse, error)
	List(ctx context.Context) ([]dto.InventoryResponse, error)
	StockForProduct(ctx context.Context, productID uuid.UUID) (*dto.StockResponse, error)
	LowStock(ctx context.Context, threshold int) ([]dto.InventoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateInventoryRequest) (*dto.InventoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type inventoryService struct {
	repo        repository.InventoryRepository
	productRepo repository.ProductRepository
}

func NewInventoryService(repo repository.InventoryRepository, productRepo repository.ProductRepository) InventoryService {
	return &inventoryService{repo: repo, productRepo: productRepo}
}

func mapInventory(inv model.Inventory) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:               inv.ID,
		ProductID:        inv.ProductID,
		CurrentStock:     inv.CurrentStock,
		Active:           inv.Active,
		ModificationDate: inv.ModificationDate.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *inventoryService) Create(ctx context.Context, req dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apierror.Validation("product_id invalido")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}
	if req.CurrentStock < 0 {
		return nil, apierror.Validation("El stock no puede ser negativo")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	inv := &model.Inventory{
		ProductID:    productID,
		CurrentStock: req.CurrentStock,
		Active:       active,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	resp := mapInventory(*inv)
	return &resp, nil
}

func (s *inventoryService) GetByID(ctx context.Context, id uuid.UUID) (*dto.InventoryResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Registro de inventario no encontrado")
		}
		return nil, err
	}
	resp := mapInventory(*inv)
	return &resp, nil
}

func (s *inventoryService) List(ctx context.Context) ([]dto.InventoryResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		result = append(result, mapInventory(inv))
	}
	return result, nil
}

// StockForProduct returns the stock of the first inventory row, or 0 when
// the product has none. Products that never got a stock record read as
// out-of-stock rather than erroring.
func (s *inventoryService) StockForProduct(ctx context.Context, productID uuid.UUID) (*dto.StockResponse, error) {
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	stock := 0
	if len(rows) > 0 {
		stock = rows[0].CurrentStock
	}
	return &dto.StockResponse{ProductID: productID, Stock: stock}, nil
}

func (s *inventoryService) LowStock(ctx context.Context, threshold int) ([]dto.InventoryResponse, error) {
	list, err := s.repo.LowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	result := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		result = append(result, mapInventory(inv))
	}
	return result, nil
}

func (s *inventoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Registro de inventario no encontrado")
		}
		return nil, err
	}

	if req.CurrentStock != nil {
		if *req.CurrentStock < 0 {
			return nil, apierror.Validation("El stock no puede ser negativo")
		}
		inv.CurrentStock = *req.CurrentStock
	}
	if req.Active != nil {
		inv.Active = *req.Active
	}

	// ModificationDate is stamped by the ORM on save; callers never set it
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	resp := mapInventory(*inv)
	return &resp, nil
}

func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Registro de inventario no encontrado")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
