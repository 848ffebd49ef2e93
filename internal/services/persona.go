package services

import (
	"context"
	"encoding/json"
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

// PersonaInput is the raw intake form for a new learner.
type PersonaInput struct {
	Email               string              `json:"email"`
	FullName            string              `json:"full_name"`
	JobRole             string              `json:"job_role"`
	Department          *string             `json:"department,omitempty"`
	ExperienceLevel     string              `json:"experience_level"`
	CareerGoals         []string            `json:"career_goals,omitempty"`
	LearningPreferences *LearningPrefsInput `json:"learning_preferences,omitempty"`
	WeeklyLearningHours int                 `json:"weekly_learning_hours,omitempty"`
	CurrentSkills       []CurrentSkill      `json:"current_skills,omitempty"`
}

type LearningPrefsInput struct {
	Styles []string `json:"styles"`
	Pace   string   `json:"pace"`
}

type CurrentSkill struct {
	SkillName string `json:"skill_name"`
	Level     int    `json:"level"`
}

// PersonaInsights are derived, never stored; they are recomputed from the
// employee row on each read.
type PersonaInsights struct {
	LearningCapacity      string   `json:"learningCapacity"`
	PreferredContentTypes []string `json:"preferredContentTypes"`
	CareerTrajectory      string   `json:"careerTrajectory"`
	EngagementPrediction  string   `json:"engagementPrediction"`
}

type EnrichedPersona struct {
	Employee            *types.Employee        `json:"employee"`
	InferredMotivations []string               `json:"inferredMotivations"`
	SkillProfile        []*types.EmployeeSkill `json:"skillProfile"`
	PersonaInsights     PersonaInsights        `json:"personaInsights"`
}

type PersonaService interface {
	BuildPersona(ctx context.Context, input PersonaInput) (*EnrichedPersona, error)
	GetPersona(ctx context.Context, employeeID uuid.UUID) (*EnrichedPersona, error)
}

type personaService struct {
	db           *gorm.DB
	log          *logger.Logger
	employees    repos.EmployeeRepo
	skills       repos.SkillRepo
	empSkills    repos.EmployeeSkillRepo
	storeTimeout time.Duration
}

func NewPersonaService(
	db *gorm.DB,
	log *logger.Logger,
	employees repos.EmployeeRepo,
	skills repos.SkillRepo,
	empSkills repos.EmployeeSkillRepo,
	storeTimeout time.Duration,
) PersonaService {
	return &personaService{
		db:           db,
		log:          log.With("service", "PersonaService"),
		employees:    employees,
		skills:       skills,
		empSkills:    empSkills,
		storeTimeout: storeTimeout,
	}
}

func (s *personaService) BuildPersona(ctx context.Context, input PersonaInput) (*EnrichedPersona, error) {
	if input.Email == "" || input.FullName == "" || input.JobRole == "" || input.ExperienceLevel == "" {
		return nil, apperr.NewValidationFailed("email, full_name, job_role, and experience_level are required", nil)
	}

	goals := NormalizeCareerGoals(input.CareerGoals)
	motivations := InferMotivations(input)
	prefs := NormalizeLearningPreferences(input)

	goalsJSON, err := json.Marshal(goals)
	if err != nil {
		return nil, apperr.NewValidationFailed("encode career goals", err)
	}
	prefsJSON, err := json.Marshal(prefs)
	if err != nil {
		return nil, apperr.NewValidationFailed("encode learning preferences", err)
	}
	motivationsJSON, err := json.Marshal(motivations)
	if err != nil {
		return nil, apperr.NewValidationFailed("encode motivations", err)
	}

	weeklyHours := input.WeeklyLearningHours
	if weeklyHours <= 0 {
		weeklyHours = 5
	}

	employee := &types.Employee{
		Email:               input.Email,
		FullName:            input.FullName,
		JobRole:             input.JobRole,
		Department:          input.Department,
		ExperienceLevel:     input.ExperienceLevel,
		CareerGoals:         datatypes.JSON(goalsJSON),
		LearningPreferences: datatypes.JSON(prefsJSON),
		WeeklyLearningHours: weeklyHours,
		MotivationDrivers:   datatypes.JSON(motivationsJSON),
	}

	storeCtx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	var profile []*types.EmployeeSkill
	err = s.db.WithContext(storeCtx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.employees.GetByEmail(storeCtx, tx, input.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.NewValidationFailed("employee with this email already exists", nil)
		}
		if _, err := s.employees.Create(storeCtx, tx, employee); err != nil {
			return err
		}
		profile, err = s.createSkillProfile(storeCtx, tx, employee.ID, input.CurrentSkills)
		return err
	})
	if err != nil {
		var appErr *apperr.Error
		if ok := asAppErr(err, &appErr); ok {
			return nil, appErr
		}
		return nil, storeErr("build persona", err)
	}

	s.log.Info("persona built", "employee_id", employee.ID, "skills", len(profile))

	return &EnrichedPersona{
		Employee:            employee,
		InferredMotivations: motivations,
		SkillProfile:        profile,
		PersonaInsights:     GenerateInsights(employee),
	}, nil
}

func (s *personaService) GetPersona(ctx context.Context, employeeID uuid.UUID) (*EnrichedPersona, error) {
	storeCtx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	employee, err := s.employees.GetByID(storeCtx, nil, employeeID)
	if err != nil {
		return nil, storeErr("load employee", err)
	}
	if employee == nil {
		return nil, apperr.NewNotFound("employee not found", nil)
	}

	profile, err := s.empSkills.GetByEmployeeID(storeCtx, nil, employeeID)
	if err != nil {
		return nil, storeErr("load skill profile", err)
	}

	var motivations []string
	if len(employee.MotivationDrivers) > 0 {
		_ = json.Unmarshal(employee.MotivationDrivers, &motivations)
	}

	return &EnrichedPersona{
		Employee:            employee,
		InferredMotivations: motivations,
		SkillProfile:        profile,
		PersonaInsights:     GenerateInsights(employee),
	}, nil
}

// createSkillProfile resolves self-assessed skills by name, silently
// dropping names that match no catalog skill.
func (s *personaService) createSkillProfile(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID, current []CurrentSkill) ([]*types.EmployeeSkill, error) {
	if len(current) == 0 {
		return []*types.EmployeeSkill{}, nil
	}

	all, err := s.skills.GetAll(ctx, tx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uuid.UUID, len(all))
	for _, sk := range all {
		byName[strings.ToLower(sk.Name)] = sk.ID
	}

	now := time.Now().UTC()
	rows := make([]*types.EmployeeSkill, 0, len(current))
	for _, cs := range current {
		skillID, ok := byName[strings.ToLower(cs.SkillName)]
		if !ok {
			continue
		}
		rows = append(rows, &types.EmployeeSkill{
			EmployeeID:   employeeID,
			SkillID:      skillID,
			CurrentLevel: cs.Level,
			SelfAssessed: true,
			LastAssessed: now,
		})
	}
	if len(rows) == 0 {
		return []*types.EmployeeSkill{}, nil
	}
	return s.empSkills.Create(ctx, tx, rows)
}

// NormalizeCareerGoals turns free-text goals into structured entries.
// Stated goals are always treated as high priority.
func NormalizeCareerGoals(goals []string) []types.CareerGoal {
	normalized := make([]types.CareerGoal, 0, len(goals))
	for _, g := range goals {
		normalized = append(normalized, types.CareerGoal{
			Goal:      strings.TrimSpace(g),
			Priority:  "high",
			Timeframe: InferTimeframe(g),
		})
	}
	return normalized
}

// InferTimeframe estimates a horizon from keywords in a goal.
func InferTimeframe(goal string) string {
	lower := strings.ToLower(goal)
	if strings.Contains(lower, "senior") || strings.Contains(lower, "lead") {
		return "2-3 years"
	}
	if strings.Contains(lower, "expert") || strings.Contains(lower, "architect") {
		return "3-5 years"
	}
	return "1-2 years"
}

// InferMotivations derives motivation drivers from the intake form.
func InferMotivations(input PersonaInput) []string {
	motivations := []string{}

	if len(input.CareerGoals) > 0 {
		motivations = append(motivations, "Career advancement")
	}

	switch input.ExperienceLevel {
	case "junior":
		motivations = append(motivations, "Skill building", "Confidence growth")
	case "senior", "expert":
		motivations = append(motivations, "Mastery", "Thought leadership")
	}

	if input.WeeklyLearningHours > 7 {
		motivations = append(motivations, "High achiever", "Self-improvement")
	}

	return motivations
}

// NormalizeLearningPreferences fills in defaults and derives session length
// from weekly availability.
func NormalizeLearningPreferences(input PersonaInput) types.LearningPrefs {
	styles := []string{"hands-on"}
	pace := "moderate"
	if input.LearningPreferences != nil {
		styles = input.LearningPreferences.Styles
		pace = input.LearningPreferences.Pace
	}

	weeklyHours := input.WeeklyLearningHours
	if weeklyHours <= 0 {
		weeklyHours = 5
	}

	return types.LearningPrefs{
		Styles:        styles,
		Pace:          pace,
		SessionLength: RecommendSessionLength(weeklyHours),
		BestTimeOfDay: "flexible",
	}
}

func RecommendSessionLength(weeklyHours int) string {
	if weeklyHours <= 3 {
		return "20-30 minutes"
	}
	if weeklyHours <= 6 {
		return "30-45 minutes"
	}
	return "45-60 minutes"
}

// GenerateInsights recomputes derived persona insights from the stored row.
func GenerateInsights(employee *types.Employee) PersonaInsights {
	weeklyHours := employee.WeeklyLearningHours

	var capacity string
	switch {
	case weeklyHours <= 3:
		capacity = "Limited availability - microlearning focus"
	case weeklyHours <= 6:
		capacity = "Moderate capacity - balanced approach"
	default:
		capacity = "High capacity - immersive learning possible"
	}

	var prefs types.LearningPrefs
	if len(employee.LearningPreferences) > 0 {
		_ = json.Unmarshal(employee.LearningPreferences, &prefs)
	}
	styles := prefs.Styles
	if len(styles) == 0 {
		styles = []string{"hands-on"}
	}
	contentTypes := make([]string, 0, len(styles))
	for _, style := range styles {
		switch style {
		case "visual":
			contentTypes = append(contentTypes, "Videos and diagrams")
		case "hands-on":
			contentTypes = append(contentTypes, "Interactive exercises and projects")
		case "reading":
			contentTypes = append(contentTypes, "Articles and documentation")
		case "auditory":
			contentTypes = append(contentTypes, "Podcasts and talks")
		default:
			contentTypes = append(contentTypes, "Mixed content")
		}
	}

	var goals []types.CareerGoal
	if len(employee.CareerGoals) > 0 {
		_ = json.Unmarshal(employee.CareerGoals, &goals)
	}
	hasGoals := len(goals) > 0
	trajectory := "Focus on current role excellence"
	if hasGoals {
		trajectory = "Targeting: " + goals[0].Goal
	}

	var engagement string
	switch {
	case weeklyHours >= 5 && hasGoals:
		engagement = "high"
	case weeklyHours >= 3:
		engagement = "medium"
	default:
		engagement = "low"
	}

	return PersonaInsights{
		LearningCapacity:      capacity,
		PreferredContentTypes: contentTypes,
		CareerTrajectory:      trajectory,
		EngagementPrediction:  engagement,
	}
}
