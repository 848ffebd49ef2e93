package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/platform/apperr"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// RecommendedModule is a scored module with its explanation strings.
type RecommendedModule struct {
	Module              *types.LearningModule `json:"module"`
	RecommendationScore int                   `json:"recommendationScore"`
	WhyThis             string                `json:"whyThis"`
	FitReason           string                `json:"fitReason"`
	PriorityLevel       string                `json:"priorityLevel"`
	SequenceOrder       int                   `json:"sequenceOrder"`
}

// RecommendationSet groups the selected modules for one skill gap.
type RecommendationSet struct {
	ForSkill              string              `json:"forSkill"`
	SkillID               uuid.UUID           `json:"skillId"`
	Modules               []RecommendedModule `json:"modules"`
	EstimatedTotalMinutes int                 `json:"estimatedTotalMinutes"`
	LearningStrategy      string              `json:"learningStrategy"`
}

type RecommendationService interface {
	RecommendForGaps(ctx context.Context, employeeID uuid.UUID, maxModulesPerSkill int) ([]RecommendationSet, error)
}

type recommendationService struct {
	db           *gorm.DB
	log          *logger.Logger
	employees    repos.EmployeeRepo
	gaps         repos.SkillGapRepo
	modules      repos.LearningModuleRepo
	storeTimeout time.Duration
}

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	employees repos.EmployeeRepo,
	gaps repos.SkillGapRepo,
	modules repos.LearningModuleRepo,
	storeTimeout time.Duration,
) RecommendationService {
	return &recommendationService{
		db:           db,
		log:          log.With("service", "RecommendationService"),
		employees:    employees,
		gaps:         gaps,
		modules:      modules,
		storeTimeout: storeTimeout,
	}
}

// RecommendForGaps builds one recommendation set per stored gap, heaviest
// gap first, and writes the chosen module IDs back onto the gap rows.
func (s *recommendationService) RecommendForGaps(ctx context.Context, employeeID uuid.UUID, maxModulesPerSkill int) ([]RecommendationSet, error) {
	if maxModulesPerSkill <= 0 {
		maxModulesPerSkill = 3
	}

	storeCtx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	employee, err := s.employees.GetByID(storeCtx, nil, employeeID)
	if err != nil {
		return nil, storeErr("load employee", err)
	}
	if employee == nil {
		return nil, apperr.NewNotFound("employee not found", nil)
	}

	gapRows, err := s.gaps.GetByEmployeeID(storeCtx, nil, employeeID)
	if err != nil {
		return nil, storeErr("load gaps", err)
	}
	if len(gapRows) == 0 {
		return []RecommendationSet{}, nil
	}

	// Module catalogs per skill are independent reads, so fan out.
	modulesBySkill := make([][]*types.LearningModule, len(gapRows))
	g, gctx := errgroup.WithContext(storeCtx)
	for i, row := range gapRows {
		g.Go(func() error {
			mods, err := s.modules.GetBySkillID(gctx, nil, row.SkillID)
			if err != nil {
				return err
			}
			modulesBySkill[i] = mods
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, storeErr("load modules", err)
	}

	sets := make([]RecommendationSet, 0, len(gapRows))
	for i, row := range gapRows {
		if row.Skill == nil || len(modulesBySkill[i]) == 0 {
			continue
		}
		scored := ScoreModules(modulesBySkill[i], employee, row)
		selected := SelectOptimalModules(scored, row.CurrentLevel, row.RequiredLevel, maxModulesPerSkill)

		total := 0
		for _, m := range selected {
			total += m.Module.EstimatedMinutes
		}

		sets = append(sets, RecommendationSet{
			ForSkill:              row.Skill.Name,
			SkillID:               row.SkillID,
			Modules:               selected,
			EstimatedTotalMinutes: total,
			LearningStrategy:      DetermineStrategy(row, employee.WeeklyLearningHours),
		})
	}

	err = s.db.WithContext(storeCtx).Transaction(func(tx *gorm.DB) error {
		for _, set := range sets {
			ids := make([]uuid.UUID, 0, len(set.Modules))
			for _, m := range set.Modules {
				ids = append(ids, m.Module.ID)
			}
			encoded, err := json.Marshal(ids)
			if err != nil {
				return err
			}
			if err := s.gaps.UpdateRecommendedModules(storeCtx, tx, employeeID, set.SkillID, datatypes.JSON(encoded)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("persist recommendations", err)
	}

	s.log.Info("recommendations built", "employee_id", employeeID, "sets", len(sets))
	return sets, nil
}

// ScoreModules scores every candidate module for a gap. Scores combine
// level fit, style fit, time fit, and a practical-application bonus.
func ScoreModules(modules []*types.LearningModule, employee *types.Employee, gap *types.SkillGap) []RecommendedModule {
	var prefs types.LearningPrefs
	if len(employee.LearningPreferences) > 0 {
		_ = json.Unmarshal(employee.LearningPreferences, &prefs)
	}
	preferredStyles := prefs.Styles
	if len(preferredStyles) == 0 {
		preferredStyles = []string{"hands-on"}
	}

	skillName := ""
	if gap.Skill != nil {
		skillName = gap.Skill.Name
	}

	scored := make([]RecommendedModule, 0, len(modules))
	for _, module := range modules {
		score := 0
		fitReason := ""

		levelScore, levelReason, foundational := LevelFit(module.DifficultyLevel, gap.CurrentLevel)
		score += levelScore
		fitReason += levelReason

		styleScore, matchedStyle := StyleFit(module, preferredStyles)
		score += styleScore
		if matchedStyle != "" {
			fitReason += fmt.Sprintf(" Matches your %s learning preference.", matchedStyle)
		}

		timeScore, micro := TimeFit(module.EstimatedMinutes, employee.WeeklyLearningHours)
		score += timeScore

		var whyThis string
		if module.PracticalApplication != nil && *module.PracticalApplication != "" {
			score += 15
			whyThis = fmt.Sprintf("Teaches %s through: %s.", skillName, *module.PracticalApplication)
		} else {
			whyThis = fmt.Sprintf("Builds %s proficiency needed for your role.", skillName)
		}
		if micro {
			whyThis += " Quick win - completable in one session."
		}

		scored = append(scored, RecommendedModule{
			Module:              module,
			RecommendationScore: score,
			WhyThis:             strings.TrimSpace(whyThis),
			FitReason:           strings.TrimSpace(fitReason),
			PriorityLevel:       DeterminePriority(gap.GapSeverity, foundational),
		})
	}
	return scored
}

// LevelFit scores a module's difficulty against the learner's ideal next
// step, one level above current.
func LevelFit(moduleDifficulty, currentLevel int) (score int, reason string, foundational bool) {
	ideal := currentLevel + 1
	diff := moduleDifficulty - ideal
	if diff < 0 {
		diff = -diff
	}

	if diff == 0 {
		return 50, "Perfect match for your current skill level.", currentLevel == 0
	}
	if diff == 1 {
		return 35, "Good challenge level.", false
	}
	if moduleDifficulty < currentLevel {
		return 10, "May be too basic - good for review.", false
	}
	return 20, "Stretch goal - requires strong foundation.", false
}

// StyleFit awards the first preferred style the module serves.
func StyleFit(module *types.LearningModule, preferredStyles []string) (score int, matchedStyle string) {
	var moduleStyles []string
	if len(module.LearningStyleFit) > 0 {
		_ = json.Unmarshal(module.LearningStyleFit, &moduleStyles)
	}

	for _, style := range preferredStyles {
		for _, ms := range moduleStyles {
			if ms == style {
				return 30, style
			}
		}
	}
	return 10, ""
}

// TimeFit scores how well a module fits the learner's typical session,
// assuming three sessions per week.
func TimeFit(estimatedMinutes, weeklyHours int) (score int, microlearning bool) {
	sessionMinutes := float64(weeklyHours) / 3 * 60

	if estimatedMinutes <= 30 {
		return 20, true
	}
	if float64(estimatedMinutes) <= sessionMinutes {
		return 15, false
	}
	return 5, false
}

// DeterminePriority maps gap severity and foundational status to a level.
func DeterminePriority(severity string, foundational bool) string {
	if severity == types.SeverityCritical && foundational {
		return PriorityUrgent
	}
	if severity == types.SeverityCritical || (severity == types.SeverityHigh && foundational) {
		return PriorityHigh
	}
	if severity == types.SeverityHigh || severity == types.SeverityModerate {
		return PriorityMedium
	}
	return PriorityLow
}

// SelectOptimalModules orders candidates by score, reorders them so each
// needed difficulty step appears first when available, caps the list, and
// assigns dense sequence numbers starting at 1.
func SelectOptimalModules(scored []RecommendedModule, currentLevel, requiredLevel, maxModules int) []RecommendedModule {
	sorted := make([]RecommendedModule, len(scored))
	copy(sorted, scored)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecommendationScore > sorted[j].RecommendationScore
	})

	progressive := ensureProgression(sorted, currentLevel, requiredLevel)

	if len(progressive) > maxModules {
		progressive = progressive[:maxModules]
	}
	for i := range progressive {
		progressive[i].SequenceOrder = i + 1
	}
	return progressive
}

// ensureProgression builds a difficulty ladder: for each level step from
// current+1 to required, pick the highest-scored unused module at exactly
// that difficulty, then fill remaining slots by score up to five.
func ensureProgression(sorted []RecommendedModule, currentLevel, requiredLevel int) []RecommendedModule {
	used := make(map[int]bool, len(sorted))
	result := make([]RecommendedModule, 0, len(sorted))

	needed := requiredLevel - currentLevel
	for step := 1; step <= needed; step++ {
		targetDifficulty := currentLevel + step
		for i, m := range sorted {
			if !used[i] && m.Module.DifficultyLevel == targetDifficulty {
				used[i] = true
				result = append(result, m)
				break
			}
		}
	}

	for i, m := range sorted {
		if len(result) >= 5 {
			break
		}
		if !used[i] {
			used[i] = true
			result = append(result, m)
		}
	}
	return result
}

// DetermineStrategy writes the per-skill guidance line shown with each set.
func DetermineStrategy(gap *types.SkillGap, weeklyHours int) string {
	gapSize := gap.RequiredLevel - gap.CurrentLevel

	if gap.GapSeverity == types.SeverityCritical {
		return fmt.Sprintf("Critical priority: Focus intensive effort here. Dedicate at least %dh/week.",
			int(math.Ceil(float64(weeklyHours)*0.6)))
	}
	if gapSize >= 3 {
		return "Large gap: Break into phases. Start with fundamentals, build progressively."
	}
	if gapSize == 1 {
		return "Small gap: Can close quickly with focused practice. Prioritize hands-on application."
	}
	return fmt.Sprintf("Moderate gap: Steady progress over %d weeks with consistent effort.", gap.EstimatedWeeks)
}
