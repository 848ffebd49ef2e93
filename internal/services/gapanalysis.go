package services

import (
	"context"
	"fmt"
	"math"
	"sort"
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

// Gap is one computed skill deficit, carrying everything a UI needs to
// explain why it matters and how long closing it should take.
type Gap struct {
	Skill          *types.Skill `json:"skill"`
	CurrentLevel   int          `json:"currentLevel"`
	RequiredLevel  int          `json:"requiredLevel"`
	Gap            int          `json:"gap"`
	Severity       string       `json:"severity"`
	Importance     string       `json:"importance"`
	Explanation    string       `json:"explanation"`
	VisualWeight   int          `json:"visualWeight"`
	EstimatedWeeks int          `json:"estimatedWeeks"`
}

// SkillDNAMap is the category-partitioned view of an employee's gaps.
type SkillDNAMap struct {
	Technical      []Gap  `json:"technical"`
	Soft           []Gap  `json:"soft"`
	Domain         []Gap  `json:"domain"`
	OverallScore   int    `json:"overallScore"`
	ReadinessLevel string `json:"readinessLevel"`
	TopPriorities  []Gap  `json:"topPriorities"`
}

type SkillGapService interface {
	AnalyzeGaps(ctx context.Context, employeeID uuid.UUID) (*SkillDNAMap, error)
	GetStoredAnalysis(ctx context.Context, employeeID uuid.UUID) (*SkillDNAMap, error)
}

type skillGapService struct {
	db           *gorm.DB
	log          *logger.Logger
	employees    repos.EmployeeRepo
	requirements repos.SkillRequirementRepo
	empSkills    repos.EmployeeSkillRepo
	gaps         repos.SkillGapRepo
	storeTimeout time.Duration
}

func NewSkillGapService(
	db *gorm.DB,
	log *logger.Logger,
	employees repos.EmployeeRepo,
	requirements repos.SkillRequirementRepo,
	empSkills repos.EmployeeSkillRepo,
	gaps repos.SkillGapRepo,
	storeTimeout time.Duration,
) SkillGapService {
	return &skillGapService{
		db:           db,
		log:          log.With("service", "SkillGapService"),
		employees:    employees,
		requirements: requirements,
		empSkills:    empSkills,
		gaps:         gaps,
		storeTimeout: storeTimeout,
	}
}

// AnalyzeGaps recomputes all deficits for the employee's role, replaces the
// stored rows, and returns the DNA map. Gap rows for skills no longer in
// deficit are deleted in the same transaction, so stored state always
// mirrors the latest analysis.
func (s *skillGapService) AnalyzeGaps(ctx context.Context, employeeID uuid.UUID) (*SkillDNAMap, error) {
	storeCtx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	employee, err := s.employees.GetByID(storeCtx, nil, employeeID)
	if err != nil {
		return nil, storeErr("load employee", err)
	}
	if employee == nil {
		return nil, apperr.NewNotFound("employee not found", nil)
	}

	var (
		requirements  []*types.SkillRequirement
		currentSkills []*types.EmployeeSkill
	)
	g, gctx := errgroup.WithContext(storeCtx)
	g.Go(func() error {
		var err error
		requirements, err = s.requirements.GetByRoleName(gctx, nil, employee.JobRole)
		return err
	})
	g.Go(func() error {
		var err error
		currentSkills, err = s.empSkills.GetByEmployeeID(gctx, nil, employeeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeErr("load role requirements and skills", err)
	}

	gaps := ComputeGaps(employee, requirements, currentSkills)

	err = s.db.WithContext(storeCtx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(gaps))
		for _, gap := range gaps {
			keep = append(keep, gap.Skill.ID)
			row := &types.SkillGap{
				EmployeeID:         employeeID,
				SkillID:            gap.Skill.ID,
				CurrentLevel:       gap.CurrentLevel,
				RequiredLevel:      gap.RequiredLevel,
				GapSeverity:        gap.Severity,
				Importance:         gap.Importance,
				ImportanceScore:    gap.VisualWeight,
				Explanation:        gap.Explanation,
				RecommendedModules: datatypes.JSON([]byte(`[]`)),
				EstimatedWeeks:     gap.EstimatedWeeks,
			}
			if err := s.gaps.Upsert(storeCtx, tx, row); err != nil {
				return err
			}
		}
		return s.gaps.DeleteStale(storeCtx, tx, employeeID, keep)
	})
	if err != nil {
		return nil, storeErr("persist gap analysis", err)
	}

	s.log.Info("gap analysis complete", "employee_id", employeeID, "gaps", len(gaps))

	dna := BuildDNAMap(gaps)
	return &dna, nil
}

// GetStoredAnalysis rebuilds the DNA map from persisted gap rows without
// recomputing.
func (s *skillGapService) GetStoredAnalysis(ctx context.Context, employeeID uuid.UUID) (*SkillDNAMap, error) {
	storeCtx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.gaps.GetByEmployeeID(storeCtx, nil, employeeID)
	if err != nil {
		return nil, storeErr("load stored gaps", err)
	}
	if len(rows) == 0 {
		return nil, apperr.NewNotFound("no stored analysis for employee", nil)
	}

	gaps := make([]Gap, 0, len(rows))
	for _, row := range rows {
		gaps = append(gaps, Gap{
			Skill:          row.Skill,
			CurrentLevel:   row.CurrentLevel,
			RequiredLevel:  row.RequiredLevel,
			Gap:            row.RequiredLevel - row.CurrentLevel,
			Severity:       row.GapSeverity,
			Importance:     row.Importance,
			Explanation:    row.Explanation,
			VisualWeight:   row.ImportanceScore,
			EstimatedWeeks: row.EstimatedWeeks,
		})
	}

	dna := BuildDNAMap(gaps)
	return &dna, nil
}

// ComputeGaps diffs role requirements against the employee's current levels.
// Skills at or above the requirement produce no gap. Results are sorted by
// visual weight, heaviest first.
func ComputeGaps(employee *types.Employee, requirements []*types.SkillRequirement, currentSkills []*types.EmployeeSkill) []Gap {
	levelBySkill := make(map[uuid.UUID]int, len(currentSkills))
	for _, cs := range currentSkills {
		levelBySkill[cs.SkillID] = cs.CurrentLevel
	}

	gaps := make([]Gap, 0, len(requirements))
	for _, req := range requirements {
		if req.Skill == nil {
			continue
		}
		currentLevel := levelBySkill[req.SkillID]
		gap := req.RequiredLevel - currentLevel
		if gap <= 0 {
			continue
		}

		gaps = append(gaps, Gap{
			Skill:          req.Skill,
			CurrentLevel:   currentLevel,
			RequiredLevel:  req.RequiredLevel,
			Gap:            gap,
			Severity:       CalculateSeverity(gap, req.Importance),
			Importance:     req.Importance,
			Explanation:    GenerateGapExplanation(req.Skill.Name, currentLevel, req.RequiredLevel, req.Importance, employee.JobRole),
			VisualWeight:   CalculateVisualWeight(gap, req.Importance),
			EstimatedWeeks: EstimateTimeToClose(gap, currentLevel),
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].VisualWeight > gaps[j].VisualWeight
	})
	return gaps
}

// CalculateSeverity grades a gap by size and role importance.
func CalculateSeverity(gap int, importance string) string {
	if importance == types.ImportanceCritical && gap >= 2 {
		return types.SeverityCritical
	}
	if importance == types.ImportanceCritical || (importance == types.ImportanceHigh && gap >= 3) {
		return types.SeverityHigh
	}
	if gap >= 2 || importance == types.ImportanceHigh {
		return types.SeverityModerate
	}
	return types.SeverityLow
}

var levelDescriptions = []string{
	"no experience",
	"beginner level",
	"intermediate level",
	"advanced level",
	"expert level",
	"mastery level",
}

// LevelDescription names a 0-5 proficiency level.
func LevelDescription(level int) string {
	if level < 0 || level >= len(levelDescriptions) {
		return "unknown level"
	}
	return levelDescriptions[level]
}

// GenerateGapExplanation produces the human-readable rationale stored with
// each gap.
func GenerateGapExplanation(skillName string, current, required int, importance, role string) string {
	gap := required - current
	levelDesc := LevelDescription(current)
	targetDesc := LevelDescription(required)

	if importance == types.ImportanceCritical {
		return fmt.Sprintf("%s is critical for %s. You're at %s but need %s. This %d-level gap requires immediate attention for role success.",
			skillName, role, levelDesc, targetDesc, gap)
	}
	if importance == types.ImportanceHigh {
		return fmt.Sprintf("%s is highly valued for %s. Advancing from %s to %s will significantly boost your effectiveness.",
			skillName, role, levelDesc, targetDesc)
	}
	return fmt.Sprintf("Improving %s from %s to %s will enhance your %s capabilities and open new opportunities.",
		skillName, levelDesc, targetDesc, role)
}

// CalculateVisualWeight scores a gap for display ordering. Unknown
// importance counts as medium.
func CalculateVisualWeight(gap int, importance string) int {
	importanceWeight := map[string]int{
		types.ImportanceCritical: 100,
		types.ImportanceHigh:     75,
		types.ImportanceMedium:   50,
		types.ImportanceLow:      25,
	}[importance]
	if importanceWeight == 0 {
		importanceWeight = 50
	}
	return gap*20 + importanceWeight
}

// EstimateTimeToClose projects weeks needed to close a gap. Starting from
// zero experience carries a 1.5x multiplier.
func EstimateTimeToClose(gap, currentLevel int) int {
	baseWeeks := float64(gap * 3)
	multiplier := 1.0
	if currentLevel == 0 {
		multiplier = 1.5
	}
	return int(math.Ceil(baseWeeks * multiplier))
}

// BuildDNAMap partitions gaps by category and scores overall readiness. An
// employee with no gaps scores 100.
func BuildDNAMap(gaps []Gap) SkillDNAMap {
	technical := []Gap{}
	soft := []Gap{}
	domain := []Gap{}
	totalWeight := 0
	for _, g := range gaps {
		totalWeight += g.VisualWeight
		if g.Skill == nil {
			continue
		}
		switch g.Skill.Category {
		case types.SkillCategoryTechnical:
			technical = append(technical, g)
		case types.SkillCategorySoft:
			soft = append(soft, g)
		case types.SkillCategoryDomain:
			domain = append(domain, g)
		}
	}

	overallScore := 100
	if len(gaps) > 0 {
		maxPossible := float64(len(gaps) * 120)
		overallScore = int(math.Round((maxPossible - float64(totalWeight)) / maxPossible * 100))
	}

	var readiness string
	switch {
	case overallScore >= 80:
		readiness = "Excellent - Ready for growth"
	case overallScore >= 60:
		readiness = "Good - Some gaps to address"
	case overallScore >= 40:
		readiness = "Developing - Focus needed"
	default:
		readiness = "Building - Significant development required"
	}

	topPriorities := []Gap{}
	for _, g := range gaps {
		if g.Severity == types.SeverityCritical || g.Severity == types.SeverityHigh {
			topPriorities = append(topPriorities, g)
			if len(topPriorities) == 5 {
				break
			}
		}
	}

	return SkillDNAMap{
		Technical:      technical,
		Soft:           soft,
		Domain:         domain,
		OverallScore:   overallScore,
		ReadinessLevel: readiness,
		TopPriorities:  topPriorities,
	}
}
