package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type LearningProgressRepo interface {
	GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.LearningProgress, error)
	GetByEmployeeAndModule(ctx context.Context, tx *gorm.DB, employeeID, moduleID uuid.UUID) (*types.LearningProgress, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.LearningProgress) error
}

type learningProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningProgressRepo(db *gorm.DB, baseLog *logger.Logger) LearningProgressRepo {
	repoLog := baseLog.With("repo", "LearningProgressRepo")
	return &learningProgressRepo{db: db, log: repoLog}
}

func (r *learningProgressRepo) GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.LearningProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LearningProgress
	if employeeID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("updated_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningProgressRepo) GetByEmployeeAndModule(ctx context.Context, tx *gorm.DB, employeeID, moduleID uuid.UUID) (*types.LearningProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if employeeID == uuid.Nil || moduleID == uuid.Nil {
		return nil, nil
	}

	var row types.LearningProgress
	err := transaction.WithContext(ctx).
		Where("employee_id = ? AND module_id = ?", employeeID, moduleID).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *learningProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.LearningProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	// Upsert by unique employee_id + module_id
	if err := transaction.WithContext(ctx).
		Where("employee_id = ? AND module_id = ?", row.EmployeeID, row.ModuleID).
		Assign(map[string]interface{}{
			"status":                row.Status,
			"completion_percentage": row.CompletionPercentage,
			"performance_score":     row.PerformanceScore,
			"time_spent_minutes":    row.TimeSpentMinutes,
			"started_at":            row.StartedAt,
			"completed_at":          row.CompletedAt,
		}).
		FirstOrCreate(row).Error; err != nil {
		return err
	}
	return nil
}
