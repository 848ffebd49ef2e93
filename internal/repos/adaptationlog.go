package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

// AdaptationLogRepo is append-only so adaptation decisions stay auditable.
type AdaptationLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.AdaptationLog) (*types.AdaptationLog, error)
	GetRecentByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID, limit int) ([]*types.AdaptationLog, error)
}

type adaptationLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdaptationLogRepo(db *gorm.DB, baseLog *logger.Logger) AdaptationLogRepo {
	repoLog := baseLog.With("repo", "AdaptationLogRepo")
	return &adaptationLogRepo{db: db, log: repoLog}
}

func (r *adaptationLogRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AdaptationLog) (*types.AdaptationLog, error) {
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

func (r *adaptationLogRepo) GetRecentByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID, limit int) ([]*types.AdaptationLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AdaptationLog
	if employeeID == uuid.Nil {
		return results, nil
	}

	q := transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
