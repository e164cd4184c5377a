package service

import (
	"context"
	"errors"
	"fmt"

	"almacen/internal/apierror"
	"almacen/internal/dto"
	"almacen/internal/model"
	"almacen/internal/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService implements the catalog rules: the sale-price gate runs
// before any persistence, and the slug is derived exactly once at creation.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	GetBySlug(ctx context.Context, s string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AttachImage(ctx context.Context, id uuid.UUID, imageData []byte, storedPath string) error

	GetIssue(ctx context.Context, productID uuid.UUID) (*dto.ProductIssueResponse, error)
	SetIssue(ctx context.Context, productID uuid.UUID, req dto.SetProductIssueRequest) (*dto.ProductIssueResponse, error)
	ClearIssue(ctx context.Context, productID uuid.UUID) error
}

// ImageValidator rejects oversized or unreadable images before anything is
// persisted. Satisfied by infra.ValidateImage.
type ImageValidator func(data []byte) error

type productService struct {
	repo          repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	supplierRepo  repository.SupplierRepository
	validateImage ImageValidator
}

func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	validateImage ImageValidator,
) ProductService {
	return &productService{
		repo:          repo,
		categoryRepo:  categoryRepo,
		supplierRepo:  supplierRepo,
		validateImage: validateImage,
	}
}

func mapProduct(p model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:               p.ID,
		CategoryID:       p.CategoryID,
		SupplierID:       p.SupplierID,
		Description:      p.Description,
		PurchasePrice:    p.PurchasePrice,
		SalePrice:        p.SalePrice,
		Slug:             p.Slug,
		RegistrationDate: p.RegistrationDate.Format("2006-01-02T15:04:05Z07:00"),
		ImagePath:        p.ImagePath,
	}
	for _, v := range p.Variations {
		resp.Variations = append(resp.Variations, mapVariation(v))
	}
	return resp
}

// checkPrices enforces sale_price > purchase_price. Runs before any write;
// a violation rejects the whole operation with nothing persisted.
func checkPrices(purchase, sale decimal.Decimal) error {
	if sale.LessThanOrEqual(purchase) {
		return apierror.ValidationFields(
			"El precio de venta debe ser mayor que el precio de compra",
			map[string]string{"sale_price": "gtfield=purchase_price"},
		)
	}
	return nil
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := checkPrices(req.PurchasePrice, req.SalePrice); err != nil {
		return nil, err
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apierror.Validation("category_id invalido")
	}
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Categoria no encontrada")
		}
		return nil, err
	}

	var supplierID *uuid.UUID
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, apierror.Validation("supplier_id invalido")
		}
		if _, err := s.supplierRepo.FindByID(ctx, sid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("Proveedor no encontrado")
			}
			return nil, err
		}
		supplierID = &sid
	}

	productSlug, err := s.deriveSlug(ctx, req.Description)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		CategoryID:    categoryID,
		SupplierID:    supplierID,
		Description:   req.Description,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		Slug:          productSlug,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := mapProduct(*p)
	return &resp, nil
}

// deriveSlug builds a slug from the description and disambiguates
// collisions with a numeric suffix. Called at creation only: later
// description edits never touch the slug.
func (s *productService) deriveSlug(ctx context.Context, description string) (string, error) {
	base := slug.Make(description)
	if len(base) > 50 {
		base = base[:50]
	}
	candidate := base
	for n := 2; ; n++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}
	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) GetBySlug(ctx context.Context, productSlug string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}
	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		data = append(data, mapProduct(p))
	}
	return &dto.ProductListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}

	purchasePrice := p.PurchasePrice
	salePrice := p.SalePrice
	if req.PurchasePrice != nil {
		purchasePrice = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		salePrice = *req.SalePrice
	}
	// Validated against the effective pair before anything is written
	if err := checkPrices(purchasePrice, salePrice); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.Validation("category_id invalido")
		}
		if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("Categoria no encontrada")
			}
			return nil, err
		}
		p.CategoryID = categoryID
	}
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, apierror.Validation("supplier_id invalido")
		}
		if _, err := s.supplierRepo.FindByID(ctx, sid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("Proveedor no encontrado")
			}
			return nil, err
		}
		p.SupplierID = &sid
	}
	if req.Description != nil {
		// Slug stays untouched: it was derived once at creation
		p.Description = *req.Description
	}
	p.PurchasePrice = purchasePrice
	p.SalePrice = salePrice

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := mapProduct(*p)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Producto no encontrado")
		}
		return err
	}
	// Variations, inventories and the issue record cascade with the product
	return s.repo.Delete(ctx, id)
}

// AttachImage validates the uploaded image (size and dimensions) and only
// then records the stored path.
func (s *productService) AttachImage(ctx context.Context, id uuid.UUID, imageData []byte, storedPath string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Producto no encontrado")
		}
		return err
	}
	if err := s.validateImage(imageData); err != nil {
		return err
	}
	return s.repo.UpdateImagePath(ctx, id, storedPath)
}

func mapIssue(i model.ProductIssue) dto.ProductIssueResponse {
	return dto.ProductIssueResponse{
		ID:        i.ID,
		ProductID: i.ProductID,
		IssueType: i.IssueType,
		Notes:     i.Notes,
	}
}

func (s *productService) GetIssue(ctx context.Context, productID uuid.UUID) (*dto.ProductIssueResponse, error) {
	issue, err := s.repo.FindIssueByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("El producto no tiene problemas registrados")
		}
		return nil, err
	}
	resp := mapIssue(*issue)
	return &resp, nil
}

// SetIssue upserts the one-to-one issue record of a product.
func (s *productService) SetIssue(ctx context.Context, productID uuid.UUID, req dto.SetProductIssueRequest) (*dto.ProductIssueResponse, error) {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}

	issue, err := s.repo.FindIssueByProductID(ctx, productID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		issue = &model.ProductIssue{ProductID: productID}
	}
	issue.IssueType = req.IssueType
	issue.Notes = req.Notes

	if err := s.repo.SaveIssue(ctx, issue); err != nil {
		return nil, err
	}
	resp := mapIssue(*issue)
	return &resp, nil
}

func (s *productService) ClearIssue(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindIssueByProductID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("El producto no tiene problemas registrados")
		}
		return err
	}
	return s.repo.DeleteIssueByProductID(ctx, productID)
}
