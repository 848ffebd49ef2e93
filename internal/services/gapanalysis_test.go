package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/skillbridge-backend/internal/types"
)

func TestCalculateSeverity(t *testing.T) {
	tests := []struct {
		gap        int
		importance string
		want       string
	}{
		{2, types.ImportanceCritical, types.SeverityCritical},
		{3, types.ImportanceCritical, types.SeverityCritical},
		{1, types.ImportanceCritical, types.SeverityHigh},
		{3, types.ImportanceHigh, types.SeverityHigh},
		{2, types.ImportanceHigh, types.SeverityModerate},
		{1, types.ImportanceHigh, types.SeverityModerate},
		{2, types.ImportanceMedium, types.SeverityModerate},
		{3, types.ImportanceLow, types.SeverityModerate},
		{1, types.ImportanceMedium, types.SeverityLow},
		{1, types.ImportanceLow, types.SeverityLow},
	}
	for _, tt := range tests {
		if got := CalculateSeverity(tt.gap, tt.importance); got != tt.want {
			t.Errorf("CalculateSeverity(%d, %q) = %q, want %q", tt.gap, tt.importance, got, tt.want)
		}
	}
}

func TestCalculateVisualWeight(t *testing.T) {
	tests := []struct {
		gap        int
		importance string
		want       int
	}{
		{3, types.ImportanceHigh, 135},
		{2, types.ImportanceCritical, 140},
		{1, types.ImportanceLow, 45},
		{2, types.ImportanceMedium, 90},
		{2, "unknown", 90},
	}
	for _, tt := range tests {
		if got := CalculateVisualWeight(tt.gap, tt.importance); got != tt.want {
			t.Errorf("CalculateVisualWeight(%d, %q) = %d, want %d", tt.gap, tt.importance, got, tt.want)
		}
	}
}

func TestEstimateTimeToClose(t *testing.T) {
	tests := []struct {
		gap     int
		current int
		want    int
	}{
		{3, 0, 14},
		{3, 1, 9},
		{1, 0, 5},
		{1, 2, 3},
		{2, 0, 9},
	}
	for _, tt := range tests {
		if got := EstimateTimeToClose(tt.gap, tt.current); got != tt.want {
			t.Errorf("EstimateTimeToClose(%d, %d) = %d, want %d", tt.gap, tt.current, got, tt.want)
		}
	}
}

func TestGenerateGapExplanation(t *testing.T) {
	critical := GenerateGapExplanation("Go", 1, 4, types.ImportanceCritical, "Software Engineer")
	if !strings.Contains(critical, "Go is critical for Software Engineer.") {
		t.Errorf("critical explanation = %q", critical)
	}
	if !strings.Contains(critical, "beginner level") || !strings.Contains(critical, "expert level") {
		t.Errorf("level descriptions missing: %q", critical)
	}
	if !strings.Contains(critical, "3-level gap") {
		t.Errorf("gap size missing: %q", critical)
	}

	high := GenerateGapExplanation("SQL", 2, 3, types.ImportanceHigh, "Software Engineer")
	if !strings.Contains(high, "SQL is highly valued for Software Engineer.") {
		t.Errorf("high explanation = %q", high)
	}

	medium := GenerateGapExplanation("Communication", 0, 2, types.ImportanceMedium, "Software Engineer")
	if !strings.HasPrefix(medium, "Improving Communication from no experience to intermediate level") {
		t.Errorf("medium explanation = %q", medium)
	}
}

func TestLevelDescriptionOutOfRange(t *testing.T) {
	if got := LevelDescription(9); got != "unknown level" {
		t.Errorf("LevelDescription(9) = %q", got)
	}
	if got := LevelDescription(-1); got != "unknown level" {
		t.Errorf("LevelDescription(-1) = %q", got)
	}
}

func testRequirement(skillName, category, importance string, level int) *types.SkillRequirement {
	id := uuid.New()
	return &types.SkillRequirement{
		RoleName:      "Software Engineer",
		SkillID:       id,
		Skill:         &types.Skill{ID: id, Name: skillName, Category: category},
		RequiredLevel: level,
		Importance:    importance,
	}
}

func TestComputeGapsSkipsMetRequirementsAndSortsByWeight(t *testing.T) {
	emp := &types.Employee{JobRole: "Software Engineer"}

	reqGo := testRequirement("Go", types.SkillCategoryTechnical, types.ImportanceCritical, 3)
	reqSQL := testRequirement("SQL", types.SkillCategoryTechnical, types.ImportanceLow, 2)
	reqComms := testRequirement("Communication", types.SkillCategorySoft, types.ImportanceHigh, 2)

	current := []*types.EmployeeSkill{
		{SkillID: reqGo.SkillID, CurrentLevel: 1},
		{SkillID: reqComms.SkillID, CurrentLevel: 2},
	}

	gaps := ComputeGaps(emp, []*types.SkillRequirement{reqSQL, reqGo, reqComms}, current)
	if len(gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %d", len(gaps))
	}
	// Go: gap 2 critical -> 140. SQL: gap 2 low -> 65.
	if gaps[0].Skill.Name != "Go" || gaps[1].Skill.Name != "SQL" {
		t.Errorf("wrong order: %s, %s", gaps[0].Skill.Name, gaps[1].Skill.Name)
	}
	if gaps[0].VisualWeight != 140 || gaps[1].VisualWeight != 65 {
		t.Errorf("weights = %d, %d", gaps[0].VisualWeight, gaps[1].VisualWeight)
	}
	if gaps[0].Severity != types.SeverityCritical {
		t.Errorf("severity = %q", gaps[0].Severity)
	}
	if gaps[1].CurrentLevel != 0 {
		t.Errorf("missing skill should default to level 0, got %d", gaps[1].CurrentLevel)
	}
}

func TestBuildDNAMapNoGaps(t *testing.T) {
	dna := BuildDNAMap(nil)
	if dna.OverallScore != 100 {
		t.Errorf("score = %d, want 100", dna.OverallScore)
	}
	if dna.ReadinessLevel != "Excellent - Ready for growth" {
		t.Errorf("readiness = %q", dna.ReadinessLevel)
	}
	if len(dna.TopPriorities) != 0 {
		t.Errorf("top priorities = %v", dna.TopPriorities)
	}
}

func TestBuildDNAMapPartitionsAndScores(t *testing.T) {
	gaps := []Gap{
		{Skill: &types.Skill{Name: "Go", Category: types.SkillCategoryTechnical}, Severity: types.SeverityCritical, VisualWeight: 140},
		{Skill: &types.Skill{Name: "Communication", Category: types.SkillCategorySoft}, Severity: types.SeverityLow, VisualWeight: 45},
		{Skill: &types.Skill{Name: "Product Thinking", Category: types.SkillCategoryDomain}, Severity: types.SeverityHigh, VisualWeight: 95},
	}
	dna := BuildDNAMap(gaps)

	if len(dna.Technical) != 1 || len(dna.Soft) != 1 || len(dna.Domain) != 1 {
		t.Errorf("partition sizes: %d/%d/%d", len(dna.Technical), len(dna.Soft), len(dna.Domain))
	}
	// total 280, max 360 -> round((360-280)/360*100) = 22
	if dna.OverallScore != 22 {
		t.Errorf("score = %d, want 22", dna.OverallScore)
	}
	if dna.ReadinessLevel != "Building - Significant development required" {
		t.Errorf("readiness = %q", dna.ReadinessLevel)
	}
	if len(dna.TopPriorities) != 2 {
		t.Errorf("top priorities = %d, want 2", len(dna.TopPriorities))
	}
}

func TestBuildDNAMapTopPrioritiesCappedAtFive(t *testing.T) {
	gaps := make([]Gap, 0, 7)
	for i := 0; i < 7; i++ {
		gaps = append(gaps, Gap{
			Skill:        &types.Skill{Name: "S", Category: types.SkillCategoryTechnical},
			Severity:     types.SeverityCritical,
			VisualWeight: 120,
		})
	}
	dna := BuildDNAMap(gaps)
	if len(dna.TopPriorities) != 5 {
		t.Errorf("top priorities = %d, want 5", len(dna.TopPriorities))
	}
}

func TestBuildDNAMapReadinessBoundaries(t *testing.T) {
	// One gap with weight w scores round((120-w)/120*100).
	tests := []struct {
		weight int
		want   string
	}{
		{24, "Excellent - Ready for growth"},       // 80
		{48, "Good - Some gaps to address"},        // 60
		{72, "Developing - Focus needed"},          // 40
		{96, "Building - Significant development required"}, // 20
	}
	for _, tt := range tests {
		dna := BuildDNAMap([]Gap{{
			Skill:        &types.Skill{Category: types.SkillCategoryTechnical},
			Severity:     types.SeverityLow,
			VisualWeight: tt.weight,
		}})
		if dna.ReadinessLevel != tt.want {
			t.Errorf("weight %d: readiness = %q, want %q", tt.weight, dna.ReadinessLevel, tt.want)
		}
	}
}
