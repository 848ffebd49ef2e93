package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type LearningModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.LearningModule) ([]*types.LearningModule, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LearningModule, error)
	GetBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) ([]*types.LearningModule, error)
	GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*types.LearningModule, error)
}

type learningModuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningModuleRepo(db *gorm.DB, baseLog *logger.Logger) LearningModuleRepo {
	repoLog := baseLog.With("repo", "LearningModuleRepo")
	return &learningModuleRepo{db: db, log: repoLog}
}

func (r *learningModuleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.LearningModule) ([]*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.LearningModule{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *learningModuleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningModule
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

func (r *learningModuleRepo) GetBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) ([]*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningModule
	if skillID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("skill_id = ?", skillID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningModuleRepo) GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*types.LearningModule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if title == "" {
		return nil, nil
	}

	var row types.LearningModule
	err := transaction.WithContext(ctx).
		Where("title = ?", title).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
