package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/skillbridge-backend/internal/types"
)

func recSet(skill string, modules ...RecommendedModule) RecommendationSet {
	for i := range modules {
		modules[i].SequenceOrder = i + 1
	}
	return RecommendationSet{
		ForSkill: skill,
		SkillID:  uuid.New(),
		Modules:  modules,
	}
}

func recModule(title string, difficulty, minutes int, priority string) RecommendedModule {
	return RecommendedModule{
		Module:        moduleWithDifficulty(title, difficulty, minutes, ""),
		PriorityLevel: priority,
	}
}

func TestScheduleModulesAdvancesWeekAtCapacity(t *testing.T) {
	// 2h/week -> 120 min, cap 144 min per week.
	set := recSet("Go",
		recModule("A", 1, 100, PriorityMedium),
		recModule("B", 2, 100, PriorityMedium),
		recModule("C", 3, 40, PriorityMedium),
	)

	scheduled := ScheduleModules([]RecommendationSet{set}, 2)
	if len(scheduled) != 3 {
		t.Fatalf("expected 3 scheduled modules, got %d", len(scheduled))
	}
	// A fills week 1 (100). B would push week 1 to 200 > 144, so week 2.
	// C fits in week 2 (140 <= 144).
	wantWeeks := []int{1, 2, 2}
	for i, w := range wantWeeks {
		if scheduled[i].WeekNumber != w {
			t.Errorf("module %d week = %d, want %d", i, scheduled[i].WeekNumber, w)
		}
	}
}

func TestScheduleModulesOrdersSetsByUrgency(t *testing.T) {
	low := recSet("SQL", recModule("SQL Basics", 1, 30, PriorityLow))
	urgent := recSet("Go", recModule("Go Fundamentals", 1, 30, PriorityUrgent))
	medium := recSet("Kubernetes", recModule("K8s Basics", 1, 30, PriorityMedium))

	scheduled := ScheduleModules([]RecommendationSet{low, urgent, medium}, 5)
	wantOrder := []string{"Go", "Kubernetes", "SQL"}
	for i, skill := range wantOrder {
		if scheduled[i].SkillName != skill {
			t.Errorf("position %d skill = %q, want %q", i, scheduled[i].SkillName, skill)
		}
	}
}

func TestScheduleModulesMilestoneLabels(t *testing.T) {
	set := recSet("Go",
		recModule("First", 1, 30, PriorityMedium),
		recModule("Middle", 4, 30, PriorityMedium),
		recModule("Last", 2, 30, PriorityMedium),
	)

	scheduled := ScheduleModules([]RecommendationSet{set}, 10)
	if scheduled[0].Milestone != "First Step" {
		t.Errorf("first milestone = %q", scheduled[0].Milestone)
	}
	if scheduled[1].Milestone != "Advanced Mastery" {
		t.Errorf("middle milestone = %q", scheduled[1].Milestone)
	}
	if scheduled[2].Milestone != "Go Complete" {
		t.Errorf("last milestone = %q", scheduled[2].Milestone)
	}
}

func TestScheduleModulesResolvesPrerequisites(t *testing.T) {
	first := recModule("Go Fundamentals", 1, 30, PriorityMedium)
	second := recModule("Concurrent Go", 2, 30, PriorityMedium)
	second.Module.Prerequisites = datatypes.JSON(`["` + first.Module.ID.String() + `"]`)

	scheduled := ScheduleModules([]RecommendationSet{recSet("Go", first, second)}, 5)
	if len(scheduled[0].Prerequisites) != 0 {
		t.Errorf("first module should have no prerequisites, got %v", scheduled[0].Prerequisites)
	}
	if len(scheduled[1].Prerequisites) != 1 || scheduled[1].Prerequisites[0] != first.Module.ID {
		t.Errorf("second module prerequisites = %v", scheduled[1].Prerequisites)
	}
}

func seq(entries ...types.ScheduledModule) []types.ScheduledModule { return entries }

func TestDeriveScheduleGroupsAndCountsWeeks(t *testing.T) {
	scheduled := seq(
		types.ScheduledModule{ModuleID: uuid.New(), SkillName: "Go", WeekNumber: 1},
		types.ScheduledModule{ModuleID: uuid.New(), SkillName: "Go", WeekNumber: 2},
		types.ScheduledModule{ModuleID: uuid.New(), SkillName: "SQL", WeekNumber: 3},
	)

	derived := DeriveSchedule(scheduled)
	if derived.TotalWeeks != 3 {
		t.Errorf("total weeks = %d, want 3", derived.TotalWeeks)
	}
	if len(derived.WeeklySchedule[1]) != 1 || len(derived.WeeklySchedule[2]) != 1 || len(derived.WeeklySchedule[3]) != 1 {
		t.Errorf("weekly grouping wrong: %v", derived.WeeklySchedule)
	}
}

func TestDeriveScheduleMilestones(t *testing.T) {
	scheduled := seq(
		types.ScheduledModule{SkillName: "Go", WeekNumber: 1},
		types.ScheduledModule{SkillName: "Go", WeekNumber: 2},
		types.ScheduledModule{SkillName: "SQL", WeekNumber: 3},
		types.ScheduledModule{SkillName: "Kubernetes", WeekNumber: 4},
	)

	derived := DeriveSchedule(scheduled)
	if len(derived.Milestones) != 3 {
		t.Fatalf("expected 3 milestones, got %d", len(derived.Milestones))
	}

	first := derived.Milestones[0]
	if first.Title != "First Skill Mastered" || first.Week != 2 {
		t.Errorf("first milestone = %+v", first)
	}
	if first.CelebrationMessage != "You've mastered Go! This is a foundation for more." {
		t.Errorf("first message = %q", first.CelebrationMessage)
	}

	mid := derived.Milestones[1]
	if mid.Title != "Halfway There" || mid.Week != 4 {
		t.Errorf("halfway milestone = %+v", mid)
	}
	if mid.CelebrationMessage != "You're halfway through your journey! 3 skills gained." {
		t.Errorf("halfway message = %q", mid.CelebrationMessage)
	}

	final := derived.Milestones[2]
	if final.Title != "Journey Complete" || final.Week != 4 {
		t.Errorf("final milestone = %+v", final)
	}
	if final.CelebrationMessage != "You've completed your entire learning path! 3 skills mastered." {
		t.Errorf("final message = %q", final.CelebrationMessage)
	}
	if len(final.Skills) != 3 {
		t.Errorf("final skills = %v", final.Skills)
	}
}

func TestDeriveScheduleSingleSkillSkipsHalfway(t *testing.T) {
	scheduled := seq(
		types.ScheduledModule{SkillName: "Go", WeekNumber: 1},
		types.ScheduledModule{SkillName: "Go", WeekNumber: 2},
	)

	derived := DeriveSchedule(scheduled)
	if len(derived.Milestones) != 2 {
		t.Fatalf("expected 2 milestones, got %d", len(derived.Milestones))
	}
	if derived.Milestones[0].Title != "First Skill Mastered" {
		t.Errorf("first = %q", derived.Milestones[0].Title)
	}
	if derived.Milestones[1].Title != "Journey Complete" {
		t.Errorf("second = %q", derived.Milestones[1].Title)
	}
}

func TestDeriveScheduleEmptySequence(t *testing.T) {
	derived := DeriveSchedule(nil)
	if derived.TotalWeeks != 0 {
		t.Errorf("total weeks = %d", derived.TotalWeeks)
	}
	if len(derived.Milestones) != 0 {
		t.Errorf("milestones = %v", derived.Milestones)
	}
}

func TestGeneratePathReasoning(t *testing.T) {
	employee := testEmployee(5, []string{"hands-on", "visual"})
	recs := []RecommendationSet{
		recSet("Go",
			recModule("A", 1, 30, PriorityUrgent),
			recModule("B", 2, 30, PriorityMedium),
		),
		recSet("SQL", recModule("C", 1, 30, PriorityLow)),
	}

	reasoning := GeneratePathReasoning(employee, recs, 6)
	if !strings.HasPrefix(reasoning, "This 6-week learning journey is personalized for Sam Rivera's growth as a Software Engineer.") {
		t.Errorf("opening = %q", reasoning)
	}
	if !strings.Contains(reasoning, "It addresses 2 key skill gaps through 3 carefully sequenced modules.") {
		t.Errorf("counts missing: %q", reasoning)
	}
	if !strings.Contains(reasoning, "Critical focus areas (Go) are prioritized for immediate impact.") {
		t.Errorf("critical areas missing: %q", reasoning)
	}
	if !strings.Contains(reasoning, "your 5h/week availability") {
		t.Errorf("availability missing: %q", reasoning)
	}
	if !strings.Contains(reasoning, "hands-on and visual learning.") {
		t.Errorf("styles missing: %q", reasoning)
	}
	if !strings.HasSuffix(reasoning, "Early wins are built in to maintain motivation, with progressive difficulty to build mastery.") {
		t.Errorf("closing missing: %q", reasoning)
	}
}
