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

// VariationService manages product variations (size/color axes).
type VariationService interface {
	Create(ctx context.Context, req dto.CreateVariationRequest) (*dto.VariationResponse, error)
	List(ctx context.Context, filter dto.VariationFilter) ([]dto.VariationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateVariationRequest) (*dto.VariationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context) ([]dto.VariationCategoryCount, error)
}

type variationService struct {
	repo        repository.VariationRepository
	productRepo repository.ProductRepository
}

func NewVariationService(repo repository.VariationRepository, productRepo repository.ProductRepository) VariationService {
	return &variationService{repo: repo, productRepo: productRepo}
}

func mapVariation(v model.Variation) dto.VariationResponse {
	return dto.VariationResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Category:  v.Category,
		Name:      v.Name,
		State:     v.State,
	}
}

func (s *variationService) Create(ctx context.Context, req dto.CreateVariationRequest) (*dto.VariationResponse, error) {
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

	state := req.State
	if state == "" {
		state = model.VariationStateAvailable
	}
	v := &model.Variation{
		ProductID: productID,
		Category:  req.Category,
		Name:      req.Name,
		State:     state,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	resp := mapVariation(*v)
	return &resp, nil
}

func (s *variationService) List(ctx context.Context, filter dto.VariationFilter) ([]dto.VariationResponse, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.VariationResponse, 0, len(list))
	for _, v := range list {
		result = append(result, mapVariation(v))
	}
	return result, nil
}

func (s *variationService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateVariationRequest) (*dto.VariationResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Variacion no encontrada")
		}
		return nil, err
	}

	if req.Category != nil {
		v.Category = *req.Category
	}
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.State != nil {
		v.State = *req.State
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	resp := mapVariation(*v)
	return &resp, nil
}

func (s *variationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Variacion no encontrada")
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *variationService) CountByCategory(ctx context.Context) ([]dto.VariationCategoryCount, error) {
	return s.repo.CountByCategory(ctx)
}
