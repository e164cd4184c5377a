package repository

import (
	"context"

	"almacen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OperatorRepository defines CRUD operations for back-office operators.
type OperatorRepository interface {
	Create(ctx context.Context, o *model.Operator) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Operator, error)
	FindByUsername(ctx context.Context, username string) (*model.Operator, error)
	List(ctx context.Context, includeInactive bool) ([]model.Operator, error)
	Update(ctx context.Context, o *model.Operator) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type operatorRepo struct{ db *gorm.DB }

func NewOperatorRepository(db *gorm.DB) OperatorRepository { return &operatorRepo{db: db} }

func (r *operatorRepo) Create(ctx context.Context, o *model.Operator) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *operatorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Operator, error) {
	var o model.Operator
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *operatorRepo) FindByUsername(ctx context.Context, username string) (*model.Operator, error) {
	var o model.Operator
	err := r.db.WithContext(ctx).Where("username = ? AND active = true", username).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *operatorRepo) List(ctx context.Context, includeInactive bool) ([]model.Operator, error) {
	var list []model.Operator
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("username asc").Find(&list).Error
	return list, err
}

func (r *operatorRepo) Update(ctx context.Context, o *model.Operator) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *operatorRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Operator{}).Where("id = ?", id).Update("active", false).Error
}
