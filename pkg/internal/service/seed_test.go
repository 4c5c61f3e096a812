package service

import (
	"context"
	"testing"

	"github.com/yeisme/keepsake/pkg/internal/model"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first, err := Seed(ctx, db)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if first.Milestones != 12 || first.Firsts != 6 {
		t.Fatalf("first run = %+v", first)
	}

	caption := "kept"
	db.Model(&model.Milestone{}).Where("month_number = ?", 1).Update("caption", caption)

	again, err := Seed(ctx, db)
	if err != nil {
		t.Fatalf("seed again: %v", err)
	}

	if again.Milestones != 0 || again.Firsts != 0 {
		t.Fatalf("second run = %+v", again)
	}

	var jan model.Milestone
	db.First(&jan, "month_number = ?", 1)

	if jan.MonthLabel != "Month 1" || jan.Caption == nil || *jan.Caption != caption {
		t.Fatalf("january = %+v", jan)
	}

	var firsts []model.BabyFirst
	db.Order("display_order ASC").Find(&firsts)

	for i, f := range firsts {
		if f.DisplayOrder != i+1 || f.MilestoneKey != DefaultFirsts[i].Key {
			t.Errorf("first %d = %+v", i, f)
		}
	}
}
