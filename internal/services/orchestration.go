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
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/platform/apperr"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

// Milestone is a celebration point derived from the schedule.
type Milestone struct {
	Week               int      `json:"week"`
	Title              string   `json:"title"`
	Skills             []string `json:"skills"`
	CelebrationMessage string   `json:"celebrationMessage"`
}

// LearningJourney is a path plus everything derived from its stored module
// sequence. The sequence is the only persisted plan state; the weekly
// schedule and milestones are recomputed on every load.
type LearningJourney struct {
	Path           *types.LearningPath             `json:"path"`
	WeeklySchedule map[int][]types.ScheduledModule `json:"weeklySchedule"`
	Milestones     []Milestone                     `json:"milestones"`
	TotalWeeks     int                             `json:"totalWeeks"`
	Reasoning      string                          `json:"reasoning"`
}

type PathService interface {
	CreateOptimalPath(ctx context.Context, employeeID uuid.UUID, recommendations []RecommendationSet, pathName string) (*LearningJourney, error)
	GetLearningJourney(ctx context.Context, pathID uuid.UUID) (*LearningJourney, error)
}

type pathService struct {
	db           *gorm.DB
	log          *logger.Logger
	employees    repos.EmployeeRepo
	paths        repos.LearningPathRepo
	storeTimeout time.Duration
}

func NewPathService(
	db *gorm.DB,
	log *logger.Logger,
	employees repos.EmployeeRepo,
	paths repos.LearningPathRepo,
	storeTimeout time.Duration,
) PathService {
	return &pathService{
		db:           db,
		log:          log.With("service", "PathService"),
		employees:    employees,
		paths:        paths,
		storeTimeout: storeTimeout,
	}
}

// CreateOptimalPath schedules the recommended modules into weeks and stores
// the result as the employee's active path. Any previously active path is
// marked superseded in the same transaction.
func (s *pathService) CreateOptimalPath(ctx context.Context, employeeID uuid.UUID, recommendations []RecommendationSet, pathName string) (*LearningJourney, error) {
	if len(recommendations) == 0 {
		return nil, apperr.NewValidationFailed("no recommendations to schedule", nil)
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

	scheduled := ScheduleModules(recommendations, employee.WeeklyLearningHours)
	if len(scheduled) == 0 {
		return nil, apperr.NewValidationFailed("recommendations contain no modules", nil)
	}

	derived := DeriveSchedule(scheduled)
	reasoning := GeneratePathReasoning(employee, recommendations, derived.TotalWeeks)

	sequenceJSON, err := json.Marshal(scheduled)
	if err != nil {
		return nil, apperr.NewValidationFailed("encode module sequence", err)
	}

	if pathName == "" {
		pathName = employee.JobRole + " Mastery Path"
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.Add(time.Duration(derived.TotalWeeks) * 7 * 24 * time.Hour)

	path := &types.LearningPath{
		EmployeeID:           employeeID,
		Name:                 pathName,
		Status:               types.PathStatusActive,
		ModulesSequence:      datatypes.JSON(sequenceJSON),
		StartDate:            start,
		TargetCompletionDate: &end,
		Reasoning:            reasoning,
	}

	err = s.db.WithContext(storeCtx).Transaction(func(tx *gorm.DB) error {
		if err := s.paths.SupersedeActive(storeCtx, tx, employeeID); err != nil {
			return err
		}
		_, err := s.paths.Create(storeCtx, tx, path)
		return err
	})
	if err != nil {
		return nil, storeErr("persist learning path", err)
	}

	s.log.Info("learning path created",
		"employee_id", employeeID,
		"path_id", path.ID,
		"weeks", derived.TotalWeeks,
		"modules", len(scheduled))

	return &LearningJourney{
		Path:           path,
		WeeklySchedule: derived.WeeklySchedule,
		Milestones:     derived.Milestones,
		TotalWeeks:     derived.TotalWeeks,
		Reasoning:      reasoning,
	}, nil
}

// GetLearningJourney loads a path and rederives its schedule view.
func (s *pathService) GetLearningJourney(ctx context.Context, pathID uuid.UUID) (*LearningJourney, error) {
	storeCtx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	path, err := s.paths.GetByID(storeCtx, nil, pathID)
	if err != nil {
		return nil, storeErr("load path", err)
	}
	if path == nil {
		return nil, apperr.NewNotFound("learning path not found", nil)
	}

	var scheduled []types.ScheduledModule
	if len(path.ModulesSequence) > 0 {
		if err := json.Unmarshal(path.ModulesSequence, &scheduled); err != nil {
			return nil, apperr.NewPersistenceFailed("decode module sequence", err)
		}
	}

	derived := DeriveSchedule(scheduled)
	return &LearningJourney{
		Path:           path,
		WeeklySchedule: derived.WeeklySchedule,
		Milestones:     derived.Milestones,
		TotalWeeks:     derived.TotalWeeks,
		Reasoning:      path.Reasoning,
	}, nil
}

// ScheduleModules packs recommendation sets into weeks. Sets with the most
// urgent modules go first. A week accepts modules until adding one would
// push it past 120% of the learner's weekly minutes, at which point the
// next week starts.
func ScheduleModules(recommendations []RecommendationSet, weeklyHours int) []types.ScheduledModule {
	weeklyMinutes := weeklyHours * 60
	prioritized := prioritizeRecommendations(recommendations)

	scheduled := make([]types.ScheduledModule, 0)
	currentWeek := 1
	weekMinutes := 0

	for _, rec := range prioritized {
		for _, module := range rec.Modules {
			moduleMinutes := module.Module.EstimatedMinutes

			if weekMinutes+moduleMinutes > int(float64(weeklyMinutes)*1.2) {
				currentWeek++
				weekMinutes = 0
			}

			milestone := determineModuleMilestone(module, rec.ForSkill, len(scheduled)+1, len(rec.Modules))

			scheduled = append(scheduled, types.ScheduledModule{
				ModuleID:         module.Module.ID,
				ModuleTitle:      module.Module.Title,
				SkillName:        rec.ForSkill,
				WeekNumber:       currentWeek,
				EstimatedMinutes: moduleMinutes,
				Priority:         module.PriorityLevel,
				Milestone:        milestone,
				Prerequisites:    resolvePrerequisites(module.Module, scheduled),
			})
			weekMinutes += moduleMinutes
		}
	}
	return scheduled
}

var priorityRank = map[string]int{
	PriorityUrgent: 4,
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// prioritizeRecommendations orders sets by their most urgent module.
func prioritizeRecommendations(recommendations []RecommendationSet) []RecommendationSet {
	sorted := make([]RecommendationSet, len(recommendations))
	copy(sorted, recommendations)

	maxRank := func(set RecommendationSet) int {
		rank := 0
		for _, m := range set.Modules {
			if r := priorityRank[m.PriorityLevel]; r > rank {
				rank = r
			}
		}
		return rank
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return maxRank(sorted[i]) > maxRank(sorted[j])
	})
	return sorted
}

func determineModuleMilestone(module RecommendedModule, skillName string, overallIndex, totalForSkill int) string {
	if overallIndex == 1 {
		return "First Step"
	}
	if module.SequenceOrder == totalForSkill {
		return skillName + " Complete"
	}
	if module.Module.DifficultyLevel >= 4 {
		return "Advanced Mastery"
	}
	return "Progress"
}

// resolvePrerequisites maps a module's prerequisite IDs to the already
// scheduled modules they refer to. Prerequisites not yet scheduled are
// dropped; the ladder ordering makes that the uncommon case.
func resolvePrerequisites(module *types.LearningModule, scheduled []types.ScheduledModule) []uuid.UUID {
	var prereqIDs []uuid.UUID
	if len(module.Prerequisites) > 0 {
		_ = json.Unmarshal(module.Prerequisites, &prereqIDs)
	}
	if len(prereqIDs) == 0 {
		return []uuid.UUID{}
	}

	wanted := make(map[uuid.UUID]bool, len(prereqIDs))
	for _, id := range prereqIDs {
		wanted[id] = true
	}

	resolved := []uuid.UUID{}
	for _, s := range scheduled {
		if wanted[s.ModuleID] {
			resolved = append(resolved, s.ModuleID)
		}
	}
	return resolved
}

// DerivedSchedule is the view computed from a stored module sequence.
type DerivedSchedule struct {
	WeeklySchedule map[int][]types.ScheduledModule
	Milestones     []Milestone
	TotalWeeks     int
}

// DeriveSchedule computes the weekly grouping and milestones from a module
// sequence. Both path creation and path loading go through it, so the two
// views can never drift apart.
func DeriveSchedule(scheduled []types.ScheduledModule) DerivedSchedule {
	byWeek := make(map[int][]types.ScheduledModule)
	totalWeeks := 0
	for _, m := range scheduled {
		byWeek[m.WeekNumber] = append(byWeek[m.WeekNumber], m)
		if m.WeekNumber > totalWeeks {
			totalWeeks = m.WeekNumber
		}
	}

	return DerivedSchedule{
		WeeklySchedule: byWeek,
		Milestones:     deriveMilestones(scheduled),
		TotalWeeks:     totalWeeks,
	}
}

type skillFinish struct {
	skill string
	week  int
}

// deriveMilestones builds the early win, halfway, and completion markers
// from each skill's final scheduled week.
func deriveMilestones(scheduled []types.ScheduledModule) []Milestone {
	lastWeek := make(map[string]int)
	order := []string{}
	for _, m := range scheduled {
		if _, seen := lastWeek[m.SkillName]; !seen {
			order = append(order, m.SkillName)
		}
		lastWeek[m.SkillName] = m.WeekNumber
	}

	finishes := make([]skillFinish, 0, len(order))
	for _, skill := range order {
		finishes = append(finishes, skillFinish{skill: skill, week: lastWeek[skill]})
	}
	sort.SliceStable(finishes, func(i, j int) bool {
		return finishes[i].week < finishes[j].week
	})

	milestones := []Milestone{}
	if len(finishes) == 0 {
		return milestones
	}

	earlyWin := finishes[0]
	milestones = append(milestones, Milestone{
		Week:               earlyWin.week,
		Title:              "First Skill Mastered",
		Skills:             []string{earlyWin.skill},
		CelebrationMessage: fmt.Sprintf("You've mastered %s! This is a foundation for more.", earlyWin.skill),
	})

	midpoint := int(math.Ceil(float64(len(finishes)) / 2))
	if midpoint < len(finishes) {
		mid := finishes[midpoint]
		skills := make([]string, 0, midpoint+1)
		for _, f := range finishes[:midpoint+1] {
			skills = append(skills, f.skill)
		}
		milestones = append(milestones, Milestone{
			Week:               mid.week,
			Title:              "Halfway There",
			Skills:             skills,
			CelebrationMessage: fmt.Sprintf("You're halfway through your journey! %d skills gained.", midpoint+1),
		})
	}

	final := finishes[len(finishes)-1]
	allSkills := make([]string, 0, len(finishes))
	for _, f := range finishes {
		allSkills = append(allSkills, f.skill)
	}
	milestones = append(milestones, Milestone{
		Week:               final.week,
		Title:              "Journey Complete",
		Skills:             allSkills,
		CelebrationMessage: fmt.Sprintf("You've completed your entire learning path! %d skills mastered.", len(finishes)),
	})

	return milestones
}

// GeneratePathReasoning writes the narrative stored on the path row.
func GeneratePathReasoning(employee *types.Employee, recommendations []RecommendationSet, totalWeeks int) string {
	skillCount := len(recommendations)
	moduleCount := 0
	criticalSkills := []string{}
	for _, rec := range recommendations {
		moduleCount += len(rec.Modules)
		for _, m := range rec.Modules {
			if m.PriorityLevel == PriorityUrgent || m.PriorityLevel == PriorityHigh {
				criticalSkills = append(criticalSkills, rec.ForSkill)
				break
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This %d-week learning journey is personalized for %s's growth as a %s. ",
		totalWeeks, employee.FullName, employee.JobRole)
	fmt.Fprintf(&b, "It addresses %d key skill gaps through %d carefully sequenced modules. ",
		skillCount, moduleCount)
	if len(criticalSkills) > 0 {
		fmt.Fprintf(&b, "Critical focus areas (%s) are prioritized for immediate impact. ",
			strings.Join(criticalSkills, ", "))
	}
	fmt.Fprintf(&b, "The path respects your %dh/week availability and emphasizes ", employee.WeeklyLearningHours)

	var prefs types.LearningPrefs
	if len(employee.LearningPreferences) > 0 {
		_ = json.Unmarshal(employee.LearningPreferences, &prefs)
	}
	styles := prefs.Styles
	if len(styles) == 0 {
		styles = []string{"hands-on"}
	}
	fmt.Fprintf(&b, "%s learning. ", strings.Join(styles, " and "))
	b.WriteString("Early wins are built in to maintain motivation, with progressive difficulty to build mastery.")

	return b.String()
}
