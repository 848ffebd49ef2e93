package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

// FeedbackSignalRepo is append-only. Signals are never updated or deleted;
// the adaptation engine reads a recent window and reasons over it.
type FeedbackSignalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.FeedbackSignal) (*types.FeedbackSignal, error)
	GetRecentByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID, limit int) ([]*types.FeedbackSignal, error)
}

type feedbackSignalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackSignalRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackSignalRepo {
	repoLog := baseLog.With("repo", "FeedbackSignalRepo")
	return &feedbackSignalRepo{db: db, log: repoLog}
}

func (r *feedbackSignalRepo) Create(ctx context.Context, tx *gorm.DB, row *types.FeedbackSignal) (*types.FeedbackSignal, error) {
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

func (r *feedbackSignalRepo) GetRecentByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID, limit int) ([]*types.FeedbackSignal, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.FeedbackSignal
	if employeeID == uuid.Nil {
		return results, nil
	}

	q := transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("timestamp desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
