package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/skillbridge-backend/internal/types"
)

func TestLevelFit(t *testing.T) {
	tests := []struct {
		difficulty   int
		current      int
		wantScore    int
		foundational bool
	}{
		{1, 0, 50, true},
		{2, 1, 50, false},
		{3, 1, 35, false},
		{1, 2, 10, false}, // below current level
		{5, 1, 20, false}, // stretch
	}
	for _, tt := range tests {
		score, reason, foundational := LevelFit(tt.difficulty, tt.current)
		if score != tt.wantScore {
			t.Errorf("LevelFit(%d, %d) score = %d, want %d", tt.difficulty, tt.current, score, tt.wantScore)
		}
		if foundational != tt.foundational {
			t.Errorf("LevelFit(%d, %d) foundational = %v", tt.difficulty, tt.current, foundational)
		}
		if reason == "" {
			t.Errorf("LevelFit(%d, %d) has no reason", tt.difficulty, tt.current)
		}
	}
}

func TestStyleFitFirstPreferredMatchWins(t *testing.T) {
	module := &types.LearningModule{
		LearningStyleFit: datatypes.JSON([]byte(`["reading","visual"]`)),
	}
	score, style := StyleFit(module, []string{"visual", "reading"})
	if score != 30 || style != "visual" {
		t.Errorf("got score %d style %q, want 30 visual", score, style)
	}

	score, style = StyleFit(module, []string{"hands-on"})
	if score != 10 || style != "" {
		t.Errorf("no match: got score %d style %q", score, style)
	}
}

func TestTimeFit(t *testing.T) {
	tests := []struct {
		minutes   int
		hours     int
		wantScore int
		wantMicro bool
	}{
		{25, 5, 20, true},
		{30, 5, 20, true},
		{60, 5, 15, false}, // 5h/3 sessions = 100 min
		{120, 5, 5, false},
	}
	for _, tt := range tests {
		score, micro := TimeFit(tt.minutes, tt.hours)
		if score != tt.wantScore || micro != tt.wantMicro {
			t.Errorf("TimeFit(%d, %d) = %d,%v want %d,%v", tt.minutes, tt.hours, score, micro, tt.wantScore, tt.wantMicro)
		}
	}
}

func TestDeterminePriority(t *testing.T) {
	tests := []struct {
		severity     string
		foundational bool
		want         string
	}{
		{types.SeverityCritical, true, PriorityUrgent},
		{types.SeverityCritical, false, PriorityHigh},
		{types.SeverityHigh, true, PriorityHigh},
		{types.SeverityHigh, false, PriorityMedium},
		{types.SeverityModerate, false, PriorityMedium},
		{types.SeverityLow, false, PriorityLow},
	}
	for _, tt := range tests {
		if got := DeterminePriority(tt.severity, tt.foundational); got != tt.want {
			t.Errorf("DeterminePriority(%q, %v) = %q, want %q", tt.severity, tt.foundational, got, tt.want)
		}
	}
}

func moduleWithDifficulty(title string, difficulty, minutes int, practical string) *types.LearningModule {
	m := &types.LearningModule{
		ID:               uuid.New(),
		Title:            title,
		DifficultyLevel:  difficulty,
		EstimatedMinutes: minutes,
		LearningStyleFit: datatypes.JSON([]byte(`["hands-on"]`)),
		Prerequisites:    datatypes.JSON([]byte(`[]`)),
	}
	if practical != "" {
		m.PracticalApplication = &practical
	}
	return m
}

func testGap(skillName string, current, required int, severity string) *types.SkillGap {
	id := uuid.New()
	return &types.SkillGap{
		SkillID:        id,
		Skill:          &types.Skill{ID: id, Name: skillName, Category: types.SkillCategoryTechnical},
		CurrentLevel:   current,
		RequiredLevel:  required,
		GapSeverity:    severity,
		EstimatedWeeks: 6,
	}
}

func testEmployee(weeklyHours int, styles []string) *types.Employee {
	prefsJSON, _ := json.Marshal(types.LearningPrefs{Styles: styles, Pace: "moderate"})
	return &types.Employee{
		FullName:            "Sam Rivera",
		JobRole:             "Software Engineer",
		WeeklyLearningHours: weeklyHours,
		LearningPreferences: datatypes.JSON(prefsJSON),
	}
}

func TestScoreModulesExplanations(t *testing.T) {
	employee := testEmployee(5, []string{"hands-on"})
	gap := testGap("Go", 0, 3, types.SeverityCritical)

	withPractical := moduleWithDifficulty("Go Fundamentals", 1, 25, "writing small CLI tools")
	without := moduleWithDifficulty("Go Theory", 2, 90, "")

	scored := ScoreModules([]*types.LearningModule{withPractical, without}, employee, gap)
	if len(scored) != 2 {
		t.Fatalf("expected 2 scored modules, got %d", len(scored))
	}

	first := scored[0]
	// level 50 + style 30 + micro 20 + practical 15
	if first.RecommendationScore != 115 {
		t.Errorf("score = %d, want 115", first.RecommendationScore)
	}
	if first.WhyThis != "Teaches Go through: writing small CLI tools. Quick win - completable in one session." {
		t.Errorf("whyThis = %q", first.WhyThis)
	}
	if !strings.Contains(first.FitReason, "Perfect match for your current skill level.") {
		t.Errorf("fitReason = %q", first.FitReason)
	}
	if !strings.Contains(first.FitReason, "Matches your hands-on learning preference.") {
		t.Errorf("fitReason = %q", first.FitReason)
	}
	if first.PriorityLevel != PriorityUrgent {
		t.Errorf("priority = %q, want urgent", first.PriorityLevel)
	}

	second := scored[1]
	if second.WhyThis != "Builds Go proficiency needed for your role." {
		t.Errorf("whyThis = %q", second.WhyThis)
	}
	if second.PriorityLevel != PriorityHigh {
		t.Errorf("non-foundational critical priority = %q, want high", second.PriorityLevel)
	}
}

func TestSelectOptimalModulesBuildsLadderWithDenseSequence(t *testing.T) {
	scored := []RecommendedModule{
		{Module: moduleWithDifficulty("Advanced", 3, 60, ""), RecommendationScore: 80},
		{Module: moduleWithDifficulty("Basics", 1, 30, ""), RecommendationScore: 70},
		{Module: moduleWithDifficulty("Intermediate", 2, 45, ""), RecommendationScore: 60},
		{Module: moduleWithDifficulty("Extra", 1, 30, ""), RecommendationScore: 50},
	}

	selected := SelectOptimalModules(scored, 0, 3, 3)
	if len(selected) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(selected))
	}
	wantOrder := []string{"Basics", "Intermediate", "Advanced"}
	for i, w := range wantOrder {
		if selected[i].Module.Title != w {
			t.Errorf("position %d = %q, want %q", i, selected[i].Module.Title, w)
		}
		if selected[i].SequenceOrder != i+1 {
			t.Errorf("sequence order at %d = %d, want %d", i, selected[i].SequenceOrder, i+1)
		}
	}
}

func TestSelectOptimalModulesFillsByScoreWhenNoLadderMatch(t *testing.T) {
	scored := []RecommendedModule{
		{Module: moduleWithDifficulty("A", 5, 60, ""), RecommendationScore: 90},
		{Module: moduleWithDifficulty("B", 5, 60, ""), RecommendationScore: 80},
	}

	selected := SelectOptimalModules(scored, 0, 2, 3)
	if len(selected) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(selected))
	}
	if selected[0].Module.Title != "A" || selected[1].Module.Title != "B" {
		t.Errorf("fill order: %q, %q", selected[0].Module.Title, selected[1].Module.Title)
	}
	if selected[0].SequenceOrder != 1 || selected[1].SequenceOrder != 2 {
		t.Errorf("sequence orders: %d, %d", selected[0].SequenceOrder, selected[1].SequenceOrder)
	}
}

func TestSelectOptimalModulesTruncatesToMax(t *testing.T) {
	scored := make([]RecommendedModule, 0, 6)
	for i := 0; i < 6; i++ {
		scored = append(scored, RecommendedModule{
			Module:              moduleWithDifficulty("M", 1, 30, ""),
			RecommendationScore: 100 - i,
		})
	}
	selected := SelectOptimalModules(scored, 0, 1, 2)
	if len(selected) != 2 {
		t.Errorf("expected 2 modules, got %d", len(selected))
	}
}

func TestDetermineStrategy(t *testing.T) {
	critical := testGap("Go", 0, 2, types.SeverityCritical)
	if got := DetermineStrategy(critical, 5); got != "Critical priority: Focus intensive effort here. Dedicate at least 3h/week." {
		t.Errorf("critical strategy = %q", got)
	}

	large := testGap("Go", 0, 3, types.SeverityModerate)
	if got := DetermineStrategy(large, 5); got != "Large gap: Break into phases. Start with fundamentals, build progressively." {
		t.Errorf("large strategy = %q", got)
	}

	small := testGap("Go", 2, 3, types.SeverityLow)
	if got := DetermineStrategy(small, 5); got != "Small gap: Can close quickly with focused practice. Prioritize hands-on application." {
		t.Errorf("small strategy = %q", got)
	}

	moderate := testGap("Go", 1, 3, types.SeverityModerate)
	if got := DetermineStrategy(moderate, 5); got != "Moderate gap: Steady progress over 6 weeks with consistent effort." {
		t.Errorf("moderate strategy = %q", got)
	}
}
