package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type EmployeeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Employee) (*types.Employee, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Employee, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Employee, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, patch map[string]interface{}) (*types.Employee, error)
}

type employeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	repoLog := baseLog.With("repo", "EmployeeRepo")
	return &employeeRepo{db: db, log: repoLog}
}

func (r *employeeRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Employee) (*types.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *employeeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, nil
	}

	var row types.Employee
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *employeeRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if email == "" {
		return nil, nil
	}

	var row types.Employee
	err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *employeeRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, patch map[string]interface{}) (*types.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil || len(patch) == 0 {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Employee{}).
		Where("id = ?", id).
		Updates(patch).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, transaction, id)
}
