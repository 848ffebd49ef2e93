package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type SkillGapRepo interface {
	GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.SkillGap, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillGap) error
	DeleteStale(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID, keepSkillIDs []uuid.UUID) error
	UpdateRecommendedModules(ctx context.Context, tx *gorm.DB, employeeID, skillID uuid.UUID, moduleIDs datatypes.JSON) error
}

type skillGapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillGapRepo(db *gorm.DB, baseLog *logger.Logger) SkillGapRepo {
	repoLog := baseLog.With("repo", "SkillGapRepo")
	return &skillGapRepo{db: db, log: repoLog}
}

func (r *skillGapRepo) GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.SkillGap, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SkillGap
	if employeeID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Skill").
		Where("employee_id = ?", employeeID).
		Order("importance_score desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *skillGapRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillGap) error {
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
		Assign(map[string]interface{}{
			"current_level":       row.CurrentLevel,
			"required_level":      row.RequiredLevel,
			"gap_severity":        row.GapSeverity,
			"importance":          row.Importance,
			"importance_score":    row.ImportanceScore,
			"explanation":         row.Explanation,
			"recommended_modules": row.RecommendedModules,
			"estimated_weeks":     row.EstimatedWeeks,
		}).
		FirstOrCreate(row).Error; err != nil {
		return err
	}
	return nil
}

// DeleteStale removes gap rows for skills that are no longer in deficit.
// With an empty keep set it clears every gap for the employee.
func (r *skillGapRepo) DeleteStale(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID, keepSkillIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if employeeID == uuid.Nil {
		return nil
	}

	q := transaction.WithContext(ctx).Where("employee_id = ?", employeeID)
	if len(keepSkillIDs) > 0 {
		q = q.Where("skill_id NOT IN ?", keepSkillIDs)
	}
	if err := q.Delete(&types.SkillGap{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *skillGapRepo) UpdateRecommendedModules(ctx context.Context, tx *gorm.DB, employeeID, skillID uuid.UUID, moduleIDs datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if employeeID == uuid.Nil || skillID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.SkillGap{}).
		Where("employee_id = ? AND skill_id = ?", employeeID, skillID).
		Update("recommended_modules", moduleIDs).Error; err != nil {
		return err
	}
	return nil
}
