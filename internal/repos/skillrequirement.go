package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type SkillRequirementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillRequirement) ([]*types.SkillRequirement, error)
	GetByRoleName(ctx context.Context, tx *gorm.DB, roleName string) ([]*types.SkillRequirement, error)
}

type skillRequirementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillRequirementRepo(db *gorm.DB, baseLog *logger.Logger) SkillRequirementRepo {
	repoLog := baseLog.With("repo", "SkillRequirementRepo")
	return &skillRequirementRepo{db: db, log: repoLog}
}

func (r *skillRequirementRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillRequirement) ([]*types.SkillRequirement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.SkillRequirement{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *skillRequirementRepo) GetByRoleName(ctx context.Context, tx *gorm.DB, roleName string) ([]*types.SkillRequirement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SkillRequirement
	if roleName == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Skill").
		Where("role_name = ?", roleName).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
