package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/platform/apperr"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

// ProgressUpdate patches a learner's progress on one module. Nil fields are
// left untouched on existing rows.
type ProgressUpdate struct {
	Status               *string  `json:"status,omitempty"`
	CompletionPercentage *int     `json:"completionPercentage,omitempty"`
	PerformanceScore     *float64 `json:"performanceScore,omitempty"`
	TimeSpentMinutes     *int     `json:"timeSpentMinutes,omitempty"`
}

type ProgressService interface {
	UpdateProgress(ctx context.Context, employeeID, moduleID uuid.UUID, update ProgressUpdate) (*types.LearningProgress, error)
	GetProgress(ctx context.Context, employeeID uuid.UUID) ([]*types.LearningProgress, error)
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	progress     repos.LearningProgressRepo
	storeTimeout time.Duration
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	progress repos.LearningProgressRepo,
	storeTimeout time.Duration,
) ProgressService {
	return &progressService{
		db:           db,
		log:          log.With("service", "ProgressService"),
		progress:     progress,
		storeTimeout: storeTimeout,
	}
}

// UpdateProgress upserts the (employee, module) progress row. New rows
// default to in_progress with started_at set now; completed_at is stamped
// once on the transition to completed and then kept.
func (s *progressService) UpdateProgress(ctx context.Context, employeeID, moduleID uuid.UUID, update ProgressUpdate) (*types.LearningProgress, error) {
	if employeeID == uuid.Nil || moduleID == uuid.Nil {
		return nil, apperr.NewValidationFailed("employee and module are required", nil)
	}

	storeCtx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	now := time.Now().UTC()
	var row *types.LearningProgress

	err := s.db.WithContext(storeCtx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.progress.GetByEmployeeAndModule(storeCtx, tx, employeeID, moduleID)
		if err != nil {
			return err
		}

		if existing == nil {
			row = &types.LearningProgress{
				EmployeeID: employeeID,
				ModuleID:   moduleID,
				Status:     types.ProgressStatusInProgress,
				StartedAt:  &now,
			}
			applyUpdate(row, update, now)
			return s.progress.Upsert(storeCtx, tx, row)
		}

		row = existing
		applyUpdate(row, update, now)
		return s.progress.Upsert(storeCtx, tx, row)
	})
	if err != nil {
		return nil, storeErr("update progress", err)
	}

	s.log.Info("progress updated",
		"employee_id", employeeID,
		"module_id", moduleID,
		"status", row.Status)
	return row, nil
}

func (s *progressService) GetProgress(ctx context.Context, employeeID uuid.UUID) ([]*types.LearningProgress, error) {
	storeCtx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.progress.GetByEmployeeID(storeCtx, nil, employeeID)
	if err != nil {
		return nil, storeErr("load progress", err)
	}
	return rows, nil
}

func applyUpdate(row *types.LearningProgress, update ProgressUpdate, now time.Time) {
	if update.Status != nil {
		row.Status = *update.Status
		if *update.Status == types.ProgressStatusCompleted && row.CompletedAt == nil {
			row.CompletedAt = &now
		}
	}
	if update.CompletionPercentage != nil {
		row.CompletionPercentage = *update.CompletionPercentage
	}
	if update.PerformanceScore != nil {
		row.PerformanceScore = update.PerformanceScore
	}
	if update.TimeSpentMinutes != nil {
		row.TimeSpentMinutes = *update.TimeSpentMinutes
	}
}
