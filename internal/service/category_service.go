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

// CategoryService maintains the category forest: materialized levels,
// cycle-safe moves, and cascade deletes that stop when products still
// reference the subtree.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (dto.CategoryResponse, error)
	List(ctx context.Context, filter dto.CategoryFilter) ([]dto.CategoryResponse, error)
	Tree(ctx context.Context) ([]dto.CategoryNode, error)
	Rename(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error)
	Move(ctx context.Context, id uuid.UUID, req dto.MoveCategoryRequest) (dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
}

func NewCategoryService(repo repository.CategoryRepository, productRepo repository.ProductRepository) CategoryService {
	return &categoryService{repo: repo, productRepo: productRepo}
}

func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		ParentID: c.ParentID,
		Level:    c.Level,
	}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	c := &model.Category{Name: req.Name}

	if req.ParentID != nil {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return dto.CategoryResponse{}, apierror.Validation("parent_id invalido")
		}
		parent, err := s.repo.FindByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CategoryResponse{}, apierror.NotFound("Categoria padre no encontrada")
			}
			return dto.CategoryResponse{}, err
		}
		c.ParentID = &parent.ID
		c.Level = parent.Level + 1
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, apierror.NotFound("Categoria no encontrada")
		}
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

// List serves the flat queries: all categories, one depth level, or a
// case-insensitive name match. Results are always name-ordered.
func (s *categoryService) List(ctx context.Context, filter dto.CategoryFilter) ([]dto.CategoryResponse, error) {
	var (
		list []model.Category
		err  error
	)
	switch {
	case filter.Name != "":
		list, err = s.repo.FilterByName(ctx, filter.Name)
	case filter.Level != nil:
		list, err = s.repo.ByLevel(ctx, *filter.Level)
	default:
		list, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategory(c))
	}
	return result, nil
}

// Tree returns the whole forest nested. Built from one flat query; children
// inherit the name ordering of the underlying listing.
func (s *categoryService) Tree(ctx context.Context) ([]dto.CategoryNode, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uuid.UUID]*dto.CategoryNode, len(list))
	order := make([]uuid.UUID, 0, len(list))
	for _, c := range list {
		nodes[c.ID] = &dto.CategoryNode{CategoryResponse: mapCategory(c), Children: []dto.CategoryNode{}}
		order = append(order, c.ID)
	}

	var roots []dto.CategoryNode
	// Deepest levels first so every child is complete before its parent
	// collects it.
	maxLevel := 0
	for _, c := range list {
		if c.Level > maxLevel {
			maxLevel = c.Level
		}
	}
	for level := maxLevel; level >= 0; level-- {
		for _, id := range order {
			n := nodes[id]
			if n.Level != level {
				continue
			}
			if n.ParentID == nil {
				if level == 0 {
					roots = append(roots, *n)
				}
				continue
			}
			if parent, ok := nodes[*n.ParentID]; ok {
				parent.Children = append(parent.Children, *n)
			}
		}
	}
	if roots == nil {
		roots = []dto.CategoryNode{}
	}
	return roots, nil
}

func (s *categoryService) Rename(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, apierror.NotFound("Categoria no encontrada")
		}
		return dto.CategoryResponse{}, err
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	// Sibling order is query-time lexicographic, so a rename needs no
	// explicit re-sort.
	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

// Move reparents a category. Same parent is a no-op; the category itself or
// any of its descendants is rejected as the new parent. The whole subtree's
// levels are rebased in the same transaction as the reparent.
func (s *categoryService) Move(ctx context.Context, id uuid.UUID, req dto.MoveCategoryRequest) (dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, apierror.NotFound("Categoria no encontrada")
		}
		return dto.CategoryResponse{}, err
	}

	var newParent *model.Category
	if req.NewParentID != nil {
		parentID, err := uuid.Parse(*req.NewParentID)
		if err != nil {
			return dto.CategoryResponse{}, apierror.Validation("new_parent_id invalido")
		}
		if parentID == c.ID {
			return dto.CategoryResponse{}, apierror.Validation("Una categoria no puede ser su propio padre")
		}
		newParent, err = s.repo.FindByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CategoryResponse{}, apierror.NotFound("Categoria padre no encontrada")
			}
			return dto.CategoryResponse{}, err
		}
	}

	// No-op when the parent does not change
	if sameParent(c.ParentID, newParent) {
		return mapCategory(*c), nil
	}

	descendants, err := s.repo.Descendants(ctx, c.ID)
	if err != nil {
		return dto.CategoryResponse{}, err
	}

	newLevel := 0
	var newParentID *uuid.UUID
	if newParent != nil {
		// Cycle check: the new parent must not live inside the moved subtree
		for _, d := range descendants {
			if d.ID == newParent.ID {
				return dto.CategoryResponse{}, apierror.Validation("Una categoria no puede colgar de su propio descendiente")
			}
		}
		newLevel = newParent.Level + 1
		newParentID = &newParent.ID
	}
	delta := newLevel - c.Level

	descIDs := make([]uuid.UUID, 0, len(descendants))
	for _, d := range descendants {
		descIDs = append(descIDs, d.ID)
	}

	if err := s.repo.MoveSubtree(ctx, c.ID, newParentID, newLevel, descIDs, delta); err != nil {
		return dto.CategoryResponse{}, err
	}

	c.ParentID = newParentID
	c.Level = newLevel
	return mapCategory(*c), nil
}

// Delete removes the category and all its descendants. Blocked with a
// restricted error while any product references the subtree, because the
// cascade would otherwise strand those products.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Categoria no encontrada")
		}
		return err
	}

	descendants, err := s.repo.Descendants(ctx, c.ID)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(descendants)+1)
	ids = append(ids, c.ID)
	for _, d := range descendants {
		ids = append(ids, d.ID)
	}

	count, err := s.productRepo.CountByCategoryIDs(ctx, ids)
	if err != nil {
		return err
	}
	if count > 0 {
		return apierror.Restricted("La categoria tiene productos asociados; reasignelos antes de eliminarla")
	}

	return s.repo.DeleteSubtree(ctx, ids)
}

func sameParent(current *uuid.UUID, newParent *model.Category) bool {
	if current == nil && newParent == nil {
		return true
	}
	if current != nil && newParent != nil {
		return *current == newParent.ID
	}
	return false
}
