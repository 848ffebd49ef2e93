package seed

import (
	"context"
	"testing"

	"github.com/yungbote/skillbridge-backend/internal/repos/testutil"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

func TestApplyIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	if err := Apply(ctx, db, log); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	var skillsAfterFirst int64
	if err := db.Model(&types.Skill{}).Count(&skillsAfterFirst).Error; err != nil {
		t.Fatalf("count skills: %v", err)
	}
	if skillsAfterFirst == 0 {
		t.Fatal("expected seeded skills")
	}

	if err := Apply(ctx, db, log); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	var skillsAfterSecond int64
	if err := db.Model(&types.Skill{}).Count(&skillsAfterSecond).Error; err != nil {
		t.Fatalf("count skills: %v", err)
	}
	if skillsAfterFirst != skillsAfterSecond {
		t.Errorf("second apply changed skill count: %d -> %d", skillsAfterFirst, skillsAfterSecond)
	}

	var modules []*types.LearningModule
	if err := db.Where("title = ?", "Concurrent Go Patterns").Find(&modules).Error; err != nil {
		t.Fatalf("load module: %v", err)
	}
	if len(modules) != 1 {
		t.Fatalf("expected one module, got %d", len(modules))
	}
	if string(modules[0].Prerequisites) == "[]" {
		t.Errorf("prerequisites not resolved for %q", modules[0].Title)
	}
}
