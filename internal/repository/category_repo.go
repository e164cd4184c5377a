package repository

import (
	"context"

	"almacen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository defines data access for the category forest. Rows are
// referenced by id (never by in-memory pointers) and carry a materialized
// level; MoveSubtree and DeleteSubtree keep that level consistent with one
// transaction per structural change.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	ByLevel(ctx context.Context, level int) ([]model.Category, error)
	FilterByName(ctx context.Context, name string) ([]model.Category, error)
	ChildrenOf(ctx context.Context, parentID *uuid.UUID) ([]model.Category, error)
	// Descendants returns every category below id, any depth, breadth-first.
	Descendants(ctx context.Context, id uuid.UUID) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error

	// MoveSubtree reparents id and shifts the descendants' levels by delta,
	// both inside one transaction.
	MoveSubtree(ctx context.Context, id uuid.UUID, parentID *uuid.UUID, level int, descendantIDs []uuid.UUID, delta int) error
	// DeleteSubtree removes the whole id set transactionally.
	DeleteSubtree(ctx context.Context, ids []uuid.UUID) error
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *categoryRepo) ByLevel(ctx context.Context, level int) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).Where("level = ?", level).Order("name asc").Find(&list).Error
	return list, err
}

func (r *categoryRepo) FilterByName(ctx context.Context, name string) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).Where("name ILIKE ?", "%"+name+"%").Order("name asc").Find(&list).Error
	return list, err
}

func (r *categoryRepo) ChildrenOf(ctx context.Context, parentID *uuid.UUID) ([]model.Category, error) {
	var list []model.Category
	q := r.db.WithContext(ctx)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	err := q.Order("name asc").Find(&list).Error
	return list, err
}

func (r *categoryRepo) Descendants(ctx context.Context, id uuid.UUID) ([]model.Category, error) {
	var all []model.Category
	frontier := []uuid.UUID{id}
	for len(frontier) > 0 {
		var batch []model.Category
		err := r.db.WithContext(ctx).Where("parent_id IN ?", frontier).Order("name asc").Find(&batch).Error
		if err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, c := range batch {
			frontier = append(frontier, c.ID)
		}
		all = append(all, batch...)
	}
	return all, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepo) MoveSubtree(ctx context.Context, id uuid.UUID, parentID *uuid.UUID, level int, descendantIDs []uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
			"parent_id": parentID,
			"level":     level,
		}).Error
		if err != nil {
			return err
		}
		if len(descendantIDs) == 0 {
			return nil
		}
		return tx.Model(&model.Category{}).Where("id IN ?", descendantIDs).
			Update("level", gorm.Expr("level + ?", delta)).Error
	})
}

func (r *categoryRepo) DeleteSubtree(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One statement so parent and child rows go together without
		// tripping the self-referential FK mid-delete.
		return tx.Where("id IN ?", ids).Delete(&model.Category{}).Error
	})
}
