package services

import (
	"encoding/json"
	"reflect"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/skillbridge-backend/internal/types"
)

func TestInferTimeframe(t *testing.T) {
	tests := []struct {
		goal string
		want string
	}{
		{"Become a senior engineer", "2-3 years"},
		{"Lead a platform team", "2-3 years"},
		{"Become an expert in distributed systems", "3-5 years"},
		{"Grow into a software architect", "3-5 years"},
		{"Get better at SQL", "1-2 years"},
	}
	for _, tt := range tests {
		if got := InferTimeframe(tt.goal); got != tt.want {
			t.Errorf("InferTimeframe(%q) = %q, want %q", tt.goal, got, tt.want)
		}
	}
}

func TestNormalizeCareerGoals(t *testing.T) {
	goals := NormalizeCareerGoals([]string{"  Become a senior engineer  "})
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	if goals[0].Goal != "Become a senior engineer" {
		t.Errorf("goal not trimmed: %q", goals[0].Goal)
	}
	if goals[0].Priority != "high" {
		t.Errorf("priority = %q, want high", goals[0].Priority)
	}
	if goals[0].Timeframe != "2-3 years" {
		t.Errorf("timeframe = %q", goals[0].Timeframe)
	}
}

func TestInferMotivations(t *testing.T) {
	tests := []struct {
		name  string
		input PersonaInput
		want  []string
	}{
		{
			name:  "junior with goals",
			input: PersonaInput{ExperienceLevel: "junior", CareerGoals: []string{"grow"}},
			want:  []string{"Career advancement", "Skill building", "Confidence growth"},
		},
		{
			name:  "senior without goals",
			input: PersonaInput{ExperienceLevel: "senior"},
			want:  []string{"Mastery", "Thought leadership"},
		},
		{
			name:  "mid with heavy hours",
			input: PersonaInput{ExperienceLevel: "mid", WeeklyLearningHours: 8},
			want:  []string{"High achiever", "Self-improvement"},
		},
		{
			name:  "expert with goals and heavy hours",
			input: PersonaInput{ExperienceLevel: "expert", CareerGoals: []string{"architect"}, WeeklyLearningHours: 10},
			want:  []string{"Career advancement", "Mastery", "Thought leadership", "High achiever", "Self-improvement"},
		},
		{
			name:  "mid, nothing notable",
			input: PersonaInput{ExperienceLevel: "mid", WeeklyLearningHours: 5},
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferMotivations(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecommendSessionLength(t *testing.T) {
	tests := []struct {
		hours int
		want  string
	}{
		{1, "20-30 minutes"},
		{3, "20-30 minutes"},
		{4, "30-45 minutes"},
		{6, "30-45 minutes"},
		{7, "45-60 minutes"},
		{12, "45-60 minutes"},
	}
	for _, tt := range tests {
		if got := RecommendSessionLength(tt.hours); got != tt.want {
			t.Errorf("RecommendSessionLength(%d) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestNormalizeLearningPreferencesDefaults(t *testing.T) {
	prefs := NormalizeLearningPreferences(PersonaInput{})
	if !reflect.DeepEqual(prefs.Styles, []string{"hands-on"}) {
		t.Errorf("styles = %v", prefs.Styles)
	}
	if prefs.Pace != "moderate" {
		t.Errorf("pace = %q", prefs.Pace)
	}
	if prefs.SessionLength != "30-45 minutes" {
		t.Errorf("session length = %q", prefs.SessionLength)
	}
	if prefs.BestTimeOfDay != "flexible" {
		t.Errorf("best time = %q", prefs.BestTimeOfDay)
	}
}

func employeeForInsights(t *testing.T, weeklyHours int, goals []types.CareerGoal, styles []string) *types.Employee {
	t.Helper()
	goalsJSON, err := json.Marshal(goals)
	if err != nil {
		t.Fatal(err)
	}
	prefsJSON, err := json.Marshal(types.LearningPrefs{Styles: styles, Pace: "moderate"})
	if err != nil {
		t.Fatal(err)
	}
	return &types.Employee{
		FullName:            "Sam Rivera",
		JobRole:             "Software Engineer",
		WeeklyLearningHours: weeklyHours,
		CareerGoals:         datatypes.JSON(goalsJSON),
		LearningPreferences: datatypes.JSON(prefsJSON),
	}
}

func TestGenerateInsightsCapacityAndEngagement(t *testing.T) {
	tests := []struct {
		name           string
		hours          int
		goals          []types.CareerGoal
		wantCapacity   string
		wantEngagement string
	}{
		{
			name:           "low hours no goals",
			hours:          2,
			wantCapacity:   "Limited availability - microlearning focus",
			wantEngagement: "low",
		},
		{
			name:           "moderate hours no goals",
			hours:          4,
			wantCapacity:   "Moderate capacity - balanced approach",
			wantEngagement: "medium",
		},
		{
			name:           "high hours with goals",
			hours:          8,
			goals:          []types.CareerGoal{{Goal: "Become a lead", Priority: "high"}},
			wantCapacity:   "High capacity - immersive learning possible",
			wantEngagement: "high",
		},
		{
			name:           "five hours without goals stays medium",
			hours:          5,
			wantCapacity:   "Moderate capacity - balanced approach",
			wantEngagement: "medium",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := employeeForInsights(t, tt.hours, tt.goals, []string{"hands-on"})
			insights := GenerateInsights(emp)
			if insights.LearningCapacity != tt.wantCapacity {
				t.Errorf("capacity = %q, want %q", insights.LearningCapacity, tt.wantCapacity)
			}
			if insights.EngagementPrediction != tt.wantEngagement {
				t.Errorf("engagement = %q, want %q", insights.EngagementPrediction, tt.wantEngagement)
			}
		})
	}
}

func TestGenerateInsightsContentTypesAndTrajectory(t *testing.T) {
	emp := employeeForInsights(t, 5,
		[]types.CareerGoal{{Goal: "Become a senior engineer"}},
		[]string{"visual", "reading", "auditory", "other"})

	insights := GenerateInsights(emp)
	want := []string{"Videos and diagrams", "Articles and documentation", "Podcasts and talks", "Mixed content"}
	if !reflect.DeepEqual(insights.PreferredContentTypes, want) {
		t.Errorf("content types = %v, want %v", insights.PreferredContentTypes, want)
	}
	if insights.CareerTrajectory != "Targeting: Become a senior engineer" {
		t.Errorf("trajectory = %q", insights.CareerTrajectory)
	}

	noGoals := employeeForInsights(t, 5, nil, []string{"hands-on"})
	if got := GenerateInsights(noGoals).CareerTrajectory; got != "Focus on current role excellence" {
		t.Errorf("trajectory without goals = %q", got)
	}
}
