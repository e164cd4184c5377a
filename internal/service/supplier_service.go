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

// SupplierService implements supplier CRUD. Deletion is PROTECT-style:
// blocked while any product references the supplier, surfaced as a
// recoverable error distinct from the category RESTRICT kind.
type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AttachImage(ctx context.Context, id uuid.UUID, imageData []byte, storedPath string) error
}

type supplierService struct {
	repo          repository.SupplierRepository
	productRepo   repository.ProductRepository
	validateImage ImageValidator
}

func NewSupplierService(repo repository.SupplierRepository, productRepo repository.ProductRepository, validateImage ImageValidator) SupplierService {
	return &supplierService{repo: repo, productRepo: productRepo, validateImage: validateImage}
}

func mapSupplier(s model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		URL:          s.URL,
		SupplierType: s.SupplierType,
		Description:  s.Description,
		ImagePath:    s.ImagePath,
	}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apierror.Conflict("Ya existe un proveedor con ese nombre")
	}

	sup := &model.Supplier{
		Name:         req.Name,
		URL:          req.URL,
		SupplierType: req.SupplierType,
		Description:  req.Description,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	resp := mapSupplier(*sup)
	return &resp, nil
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Proveedor no encontrado")
		}
		return nil, err
	}
	resp := mapSupplier(*sup)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SupplierResponse, 0, len(list))
	for _, sup := range list {
		result = append(result, mapSupplier(sup))
	}
	return result, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Proveedor no encontrado")
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != sup.Name {
		existing, err := s.repo.FindByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apierror.Conflict("Ya existe un proveedor con ese nombre")
		}
		sup.Name = *req.Name
	}
	if req.URL != nil {
		sup.URL = req.URL
	}
	if req.SupplierType != nil {
		sup.SupplierType = req.SupplierType
	}
	if req.Description != nil {
		sup.Description = req.Description
	}

	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	resp := mapSupplier(*sup)
	return &resp, nil
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Proveedor no encontrado")
		}
		return err
	}

	count, err := s.productRepo.CountBySupplierID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apierror.Protected("El proveedor tiene productos asociados; reasignelos antes de eliminarlo")
	}
	return s.repo.Delete(ctx, id)
}

func (s *supplierService) AttachImage(ctx context.Context, id uuid.UUID, imageData []byte, storedPath string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Proveedor no encontrado")
		}
		return err
	}
	if err := s.validateImage(imageData); err != nil {
		return err
	}
	return s.repo.UpdateImagePath(ctx, id, storedPath)
}
