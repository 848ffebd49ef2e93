package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type SkillRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Skill) ([]*types.Skill, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Skill, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Skill, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Skill, error)
}

type skillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillRepo(db *gorm.DB, baseLog *logger.Logger) SkillRepo {
	repoLog := baseLog.With("repo", "SkillRepo")
	return &skillRepo{db: db, log: repoLog}
}

func (r *skillRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Skill) ([]*types.Skill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Skill{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *skillRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Skill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Skill
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skillRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Skill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Skill
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skillRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Skill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if name == "" {
		return nil, nil
	}

	var row types.Skill
	err := transaction.WithContext(ctx).
		Where("lower(name) = lower(?)", name).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
