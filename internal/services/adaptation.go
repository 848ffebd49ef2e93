package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/skillbridge-backend/internal/clients/redis"
	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/platform/apperr"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

// FeedbackInput is one incoming learner signal.
type FeedbackInput struct {
	ModuleID     uuid.UUID   `json:"moduleId"`
	Type         string      `json:"type"`
	Value        SignalValue `json:"value"`
	Satisfaction *int        `json:"satisfaction,omitempty"`
	Comments     *string     `json:"comments,omitempty"`
}

// SignalValue carries the type-specific payload. Completion signals use
// Performance; time_spent signals use Minutes and Estimated.
type SignalValue struct {
	Performance float64 `json:"performance,omitempty"`
	Minutes     float64 `json:"minutes,omitempty"`
	Estimated   float64 `json:"estimated,omitempty"`
}

// AdaptationDecision is the result of the rule chain, including the
// transparency message shown to the learner.
type AdaptationDecision struct {
	Type           string   `json:"type"`
	Action         string   `json:"action"`
	Reasoning      string   `json:"reasoning"`
	TriggerSignals []string `json:"triggerSignals"`
	Transparency   string   `json:"transparency"`
}

// LearnerProfile is the rolling behavioral summary the rules consult.
type LearnerProfile struct {
	SuccessRate       float64  `json:"successRate"`
	AvgCompletionTime float64  `json:"avgCompletionTime"`
	SatisfactionTrend string   `json:"satisfactionTrend"`
	StrugglingAreas   []string `json:"strugglingAreas"`
	Strengths         []string `json:"strengths"`
}

const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

type AdaptationService interface {
	ProcessFeedback(ctx context.Context, employeeID uuid.UUID, input FeedbackInput) (*AdaptationDecision, error)
	GetAdaptationHistory(ctx context.Context, employeeID uuid.UUID) ([]*types.AdaptationLog, error)
}

type adaptationService struct {
	db           *gorm.DB
	log          *logger.Logger
	signals      repos.FeedbackSignalRepo
	progress     repos.LearningProgressRepo
	logs         repos.AdaptationLogRepo
	paths        repos.LearningPathRepo
	cache        *redisclient.ProfileCache
	storeTimeout time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewAdaptationService wires the adaptive engine. The random source drives
// the encouragement rule; inject a seeded one in tests for determinism.
func NewAdaptationService(
	db *gorm.DB,
	log *logger.Logger,
	signals repos.FeedbackSignalRepo,
	progress repos.LearningProgressRepo,
	logs repos.AdaptationLogRepo,
	paths repos.LearningPathRepo,
	cache *redisclient.ProfileCache,
	rng *rand.Rand,
	storeTimeout time.Duration,
) AdaptationService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &adaptationService{
		db:           db,
		log:          log.With("service", "AdaptationService"),
		signals:      signals,
		progress:     progress,
		logs:         logs,
		paths:        paths,
		cache:        cache,
		rng:          rng,
		storeTimeout: storeTimeout,
	}
}

// ProcessFeedback stores the signal, rebuilds the learner profile, runs the
// rule chain, and executes any resulting adaptation. Returns nil when no
// rule fires.
func (s *adaptationService) ProcessFeedback(ctx context.Context, employeeID uuid.UUID, input FeedbackInput) (*AdaptationDecision, error) {
	if input.ModuleID == uuid.Nil || input.Type == "" {
		return nil, apperr.NewValidationFailed("moduleId and type are required", nil)
	}

	storeCtx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	valueJSON, err := json.Marshal(input.Value)
	if err != nil {
		return nil, apperr.NewValidationFailed("encode signal value", err)
	}
	signal := &types.FeedbackSignal{
		EmployeeID:        employeeID,
		ModuleID:          input.ModuleID,
		SignalType:        input.Type,
		SignalValue:       datatypes.JSON(valueJSON),
		SatisfactionScore: input.Satisfaction,
		Comments:          input.Comments,
		Timestamp:         time.Now().UTC(),
	}
	if _, err := s.signals.Create(storeCtx, nil, signal); err != nil {
		return nil, storeErr("store feedback signal", err)
	}
	s.cache.Invalidate(storeCtx, employeeID.String())

	profile, err := s.buildLearnerProfile(storeCtx, employeeID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()

	decision := MakeAdaptationDecision(input, profile, roll)
	if decision == nil {
		return nil, nil
	}

	if err := s.executeAdaptation(storeCtx, employeeID, decision); err != nil {
		return nil, err
	}

	s.log.Info("adaptation applied",
		"employee_id", employeeID,
		"type", decision.Type,
		"action", decision.Action)
	return decision, nil
}

func (s *adaptationService) GetAdaptationHistory(ctx context.Context, employeeID uuid.UUID) ([]*types.AdaptationLog, error) {
	storeCtx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.logs.GetRecentByEmployeeID(storeCtx, nil, employeeID, 10)
	if err != nil {
		return nil, storeErr("load adaptation history", err)
	}
	return rows, nil
}

func (s *adaptationService) buildLearnerProfile(ctx context.Context, employeeID uuid.UUID) (LearnerProfile, error) {
	var profile LearnerProfile
	if s.cache.Get(ctx, employeeID.String(), &profile) {
		return profile, nil
	}

	progress, err := s.progress.GetByEmployeeID(ctx, nil, employeeID)
	if err != nil {
		return LearnerProfile{}, storeErr("load progress", err)
	}
	feedback, err := s.signals.GetRecentByEmployeeID(ctx, nil, employeeID, 20)
	if err != nil {
		return LearnerProfile{}, storeErr("load feedback", err)
	}

	profile = BuildLearnerProfile(progress, feedback)
	s.cache.Set(ctx, employeeID.String(), profile)
	return profile, nil
}

func (s *adaptationService) executeAdaptation(ctx context.Context, employeeID uuid.UUID, decision *AdaptationDecision) error {
	triggersJSON, err := json.Marshal(decision.TriggerSignals)
	if err != nil {
		return apperr.NewValidationFailed("encode trigger signals", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := &types.AdaptationLog{
			EmployeeID:     employeeID,
			AdaptationType: decision.Type,
			TriggerSignals: datatypes.JSON(triggersJSON),
			ActionTaken:    decision.Action,
			Reasoning:      decision.Reasoning,
			Timestamp:      time.Now().UTC(),
		}
		if _, err := s.logs.Create(ctx, tx, row); err != nil {
			return storeErr("log adaptation", err)
		}

		if decision.Type != types.AdaptationDifficultyAdjust && decision.Type != types.AdaptationContentSwap {
			return nil
		}

		active, err := s.paths.GetActiveByEmployeeID(ctx, tx, employeeID)
		if err != nil {
			return storeErr("load active path", err)
		}
		if active == nil {
			return nil
		}
		note := fmt.Sprintf("\n\n[Adapted %s]: %s", time.Now().UTC().Format("2006-01-02"), decision.Reasoning)
		if err := s.paths.AppendReasoning(ctx, tx, active.ID, note); err != nil {
			return storeErr("annotate path", err)
		}
		return nil
	})
}

// BuildLearnerProfile summarizes all progress rows and the most recent
// signals (newest first) into the numbers the rules consult. With no
// progress rows the profile is all defaults.
func BuildLearnerProfile(progress []*types.LearningProgress, signals []*types.FeedbackSignal) LearnerProfile {
	if len(progress) == 0 {
		return LearnerProfile{
			SatisfactionTrend: TrendStable,
			StrugglingAreas:   []string{},
			Strengths:         []string{},
		}
	}

	completed := 0
	completedMinutes := 0
	for _, p := range progress {
		if p.Status == types.ProgressStatusCompleted {
			completed++
			completedMinutes += p.TimeSpentMinutes
		}
	}

	successRate := float64(completed) / float64(len(progress))
	avgCompletionTime := 0.0
	if completed > 0 {
		avgCompletionTime = float64(completedMinutes) / float64(completed)
	}

	return LearnerProfile{
		SuccessRate:       successRate,
		AvgCompletionTime: avgCompletionTime,
		SatisfactionTrend: AnalyzeSatisfactionTrend(signals),
		StrugglingAreas:   IdentifyStruggles(signals, progress),
		Strengths:         IdentifyStrengths(progress),
	}
}

// AnalyzeSatisfactionTrend compares the three newest satisfaction scores
// against the three before them. Fewer than three scored signals, or no
// older window, reads as stable.
func AnalyzeSatisfactionTrend(signals []*types.FeedbackSignal) string {
	scored := make([]int, 0, len(signals))
	for _, s := range signals {
		if s.SatisfactionScore != nil {
			scored = append(scored, *s.SatisfactionScore)
		}
	}
	if len(scored) < 3 {
		return TrendStable
	}

	recent := scored[:3]
	older := scored[3:]
	if len(older) > 3 {
		older = older[:3]
	}
	if len(older) == 0 {
		return TrendStable
	}

	avg := func(xs []int) float64 {
		sum := 0
		for _, x := range xs {
			sum += x
		}
		return float64(sum) / float64(len(xs))
	}

	recentAvg := avg(recent)
	olderAvg := avg(older)
	if recentAvg > olderAvg+0.5 {
		return TrendImproving
	}
	if recentAvg < olderAvg-0.5 {
		return TrendDeclining
	}
	return TrendStable
}

// IdentifyStruggles flags patterns of low satisfaction, stalled modules,
// and frequent skip or struggle signals.
func IdentifyStruggles(signals []*types.FeedbackSignal, progress []*types.LearningProgress) []string {
	struggles := []string{}

	lowSatisfaction := 0
	struggleSignals := 0
	for _, s := range signals {
		if s.SatisfactionScore != nil && *s.SatisfactionScore <= 2 {
			lowSatisfaction++
		}
		if s.SignalType == types.SignalTypeStruggle || s.SignalType == types.SignalTypeSkip {
			struggleSignals++
		}
	}
	if lowSatisfaction >= 2 {
		struggles = append(struggles, "Low satisfaction with recent content")
	}

	stalled := 0
	for _, p := range progress {
		if p.Status == types.ProgressStatusInProgress && p.TimeSpentMinutes > 0 && p.CompletionPercentage < 50 {
			stalled++
		}
	}
	if stalled >= 2 {
		struggles = append(struggles, "Difficulty completing modules")
	}

	if struggleSignals >= 3 {
		struggles = append(struggles, "Frequent skipping or struggle indicators")
	}

	return struggles
}

// IdentifyStrengths flags high performance, fast completions, and
// consistent finishing.
func IdentifyStrengths(progress []*types.LearningProgress) []string {
	strengths := []string{}

	highPerformers := 0
	fastCompletions := 0
	completed := 0
	started := 0
	for _, p := range progress {
		if p.PerformanceScore != nil && *p.PerformanceScore >= 85 {
			highPerformers++
		}
		if p.Status == types.ProgressStatusCompleted && p.TimeSpentMinutes > 0 &&
			float64(p.TimeSpentMinutes) <= float64(p.TimeSpentMinutes)*0.8 {
			fastCompletions++
		}
		if p.Status == types.ProgressStatusCompleted {
			completed++
		}
		if p.Status != types.ProgressStatusNotStarted {
			started++
		}
	}

	if highPerformers >= 3 {
		strengths = append(strengths, "High performance scores")
	}
	if fastCompletions >= 2 {
		strengths = append(strengths, "Efficient learning pace")
	}
	if started > 0 && float64(completed)/float64(started) >= 0.8 {
		strengths = append(strengths, "Strong completion consistency")
	}

	return strengths
}

// MakeAdaptationDecision runs the fixed rule chain; the first matching rule
// wins. roll is a uniform [0,1) draw consumed only by the encouragement
// rule. Returns nil when nothing fires.
func MakeAdaptationDecision(input FeedbackInput, profile LearnerProfile, roll float64) *AdaptationDecision {
	if input.Type == types.SignalTypeCompletion && input.Value.Performance >= 90 {
		return &AdaptationDecision{
			Type:           types.AdaptationDifficultyAdjust,
			Action:         "Recommend skipping beginner content for this skill area",
			Reasoning:      "Strong performance indicates readiness for advanced material",
			TriggerSignals: []string{"High performance score", "Quick completion"},
			Transparency:   "You're excelling! We'll suggest more challenging content to keep you engaged.",
		}
	}

	lowSatisfaction := input.Satisfaction != nil && *input.Satisfaction > 0 && *input.Satisfaction <= 2
	if input.Type == types.SignalTypeStruggle || lowSatisfaction {
		return &AdaptationDecision{
			Type:           types.AdaptationContentSwap,
			Action:         "Offer alternative learning format for this skill",
			Reasoning:      "Low satisfaction or struggle indicates content format mismatch",
			TriggerSignals: []string{"Low satisfaction", "Struggle signal"},
			Transparency:   "This content doesn't seem to be clicking. Let's try a different approach that might work better for you.",
		}
	}

	if profile.SatisfactionTrend == TrendDeclining && len(profile.StrugglingAreas) >= 2 {
		return &AdaptationDecision{
			Type:           types.AdaptationIntervention,
			Action:         "Pause path and recommend lighter, review-focused content",
			Reasoning:      "Multiple struggle indicators suggest cognitive overload",
			TriggerSignals: profile.StrugglingAreas,
			Transparency:   "We notice you might be feeling overwhelmed. Let's take a step back and reinforce your foundations before continuing.",
		}
	}

	if profile.SuccessRate >= 0.9 && len(profile.Strengths) >= 2 {
		return &AdaptationDecision{
			Type:           types.AdaptationPaceChange,
			Action:         "Accelerate learning path timeline",
			Reasoning:      "Consistent high performance indicates capacity for faster progression",
			TriggerSignals: profile.Strengths,
			Transparency:   "You're doing great! We can accelerate your timeline if you're ready for more.",
		}
	}

	if input.Type == types.SignalTypeTimeSpent && input.Value.Minutes > input.Value.Estimated*1.5 {
		return &AdaptationDecision{
			Type:           types.AdaptationDifficultyAdjust,
			Action:         "Provide supplementary easier modules before continuing",
			Reasoning:      "Extended time suggests content is above current level",
			TriggerSignals: []string{"Time spent exceeds estimate by 50%"},
			Transparency:   "This module took longer than expected. We'll add some foundation-building content to make the next steps easier.",
		}
	}

	if profile.SuccessRate >= 0.7 && roll < 0.3 {
		return &AdaptationDecision{
			Type:           types.AdaptationEncouragement,
			Action:         "Send motivational milestone message",
			Reasoning:      "Positive reinforcement for steady progress",
			TriggerSignals: []string{"Steady progress"},
			Transparency:   "You're making solid progress! Keep up the momentum.",
		}
	}

	return nil
}
