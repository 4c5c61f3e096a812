package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeisme/keepsake/pkg/internal/model"
)

// DefaultFirsts "第一次"看板的初始条目，按展示顺序排列.
var DefaultFirsts = []struct {
	Key   string
	Title string
}{
	{"first_smile", "First Smile"},
	{"first_word", "First Word"},
	{"first_step", "First Step"},
	{"first_bath", "First Bath"},
	{"first_festival", "First Festival"},
	{"first_trip", "First Trip"},
}

// SeedResult 本次新建的条目数.
type SeedResult struct {
	Milestones int64
	Firsts     int64
}

// Seed 写入 12 个月度里程碑与默认"第一次"条目. 已存在的条目保持不变，可重复执行.
func Seed(ctx context.Context, db *gorm.DB) (SeedResult, error) {
	var res SeedResult

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for month := 1; month <= 12; month++ {
			m := model.Milestone{MonthNumber: month, MonthLabel: fmt.Sprintf("Month %d", month)}

			r := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "month_number"}}, DoNothing: true}).Create(&m)
			if r.Error != nil {
				return fmt.Errorf("seed milestone %d: %w", month, r.Error)
			}

			res.Milestones += r.RowsAffected
		}

		for i, f := range DefaultFirsts {
			first := model.BabyFirst{MilestoneKey: f.Key, MilestoneTitle: f.Title, DisplayOrder: i + 1}

			r := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "milestone_key"}}, DoNothing: true}).Create(&first)
			if r.Error != nil {
				return fmt.Errorf("seed first %s: %w", f.Key, r.Error)
			}

			res.Firsts += r.RowsAffected
		}

		return nil
	})
	if err != nil {
		return SeedResult{}, storeError("seed", err)
	}

	return res, nil
}
