package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

type LearningPathRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.LearningPath) (*types.LearningPath, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.LearningPath, error)
	GetActiveByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) (*types.LearningPath, error)
	SupersedeActive(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) error
	AppendReasoning(ctx context.Context, tx *gorm.DB, id uuid.UUID, note string) error
}

type learningPathRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningPathRepo(db *gorm.DB, baseLog *logger.Logger) LearningPathRepo {
	repoLog := baseLog.With("repo", "LearningPathRepo")
	return &learningPathRepo{db: db, log: repoLog}
}

func (r *learningPathRepo) Create(ctx context.Context, tx *gorm.DB, row *types.LearningPath) (*types.LearningPath, error) {
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

func (r *learningPathRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.LearningPath, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil {
		return nil, nil
	}

	var row types.LearningPath
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

func (r *learningPathRepo) GetActiveByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) (*types.LearningPath, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if employeeID == uuid.Nil {
		return nil, nil
	}

	var row types.LearningPath
	err := transaction.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, types.PathStatusActive).
		Order("created_at desc").
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SupersedeActive transitions any currently active path for the employee to
// superseded. Callers run it inside the same transaction that creates the
// replacement path, so a learner never ends up with two active paths.
func (r *learningPathRepo) SupersedeActive(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if employeeID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.LearningPath{}).
		Where("employee_id = ? AND status = ?", employeeID, types.PathStatusActive).
		Updates(map[string]interface{}{
			"status":     types.PathStatusSuperseded,
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
		return err
	}
	return nil
}

// AppendReasoning concatenates a note onto the path's reasoning in a single
// UPDATE, avoiding a read-modify-write window under concurrent writers.
func (r *learningPathRepo) AppendReasoning(ctx context.Context, tx *gorm.DB, id uuid.UUID, note string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if id == uuid.Nil || note == "" {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.LearningPath{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reasoning":  gorm.Expr("reasoning || ?", note),
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
		return err
	}
	return nil
}
