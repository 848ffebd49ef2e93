package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type EmployeeSkillRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.EmployeeSkill) ([]*types.EmployeeSkill, error)
	GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.EmployeeSkill, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.EmployeeSkill) error
}

type employeeSkillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployeeSkillRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeSkillRepo {
	repoLog := baseLog.With("repo", "EmployeeSkillRepo")
	return &employeeSkillRepo{db: db, log: repoLog}
}

func (r *employeeSkillRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.EmployeeSkill) ([]*types.EmployeeSkill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.EmployeeSkill{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *employeeSkillRepo) GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.EmployeeSkill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EmployeeSkill
	if employeeID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *employeeSkillRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.EmployeeSkill) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	// Upsert by unique employee_id + skill_id
	if err := transaction.WithContext(ctx).
		Where("employee_id = ? AND skill_id = ?", row.EmployeeID, row.SkillID).
		Assign(row).
		FirstOrCreate(row).Error; err != nil {
		return err
	}
	return nil
}
