package db

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/resilience-backend/internal/normalization"
	"github.com/yungbote/resilience-backend/internal/platform/logger"
	"github.com/yungbote/resilience-backend/internal/types"
)

type seedFile struct {
	Habits []seedHabit `yaml:"habits"`
}

type seedHabit struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// SeedHabits installs the default master habits from a YAML fixture.
// Idempotent: a habit whose name already exists among active rows is
// skipped, so the seed can run on every boot.
func SeedHabits(gdb *gorm.DB, log *logger.Logger, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed fixture %s: %w", path, err)
	}
	var fixture seedFile
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return fmt.Errorf("parse seed fixture %s: %w", path, err)
	}

	seeded := 0
	err = gdb.Transaction(func(tx *gorm.DB) error {
		for _, h := range fixture.Habits {
			name := normalization.TrimInputString(h.Name)
			if name == "" {
				continue
			}
			var count int64
			if err := tx.Model(&types.Habit{}).Where("name = ?", name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			habit := &types.Habit{
				ID:          uuid.New(),
				Name:        name,
				Description: normalization.TrimInputString(h.Description),
			}
			if err := tx.Create(habit).Error; err != nil {
				return err
			}
			seeded++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed habits: %w", err)
	}

	log.Info("Habit seed complete", "seeded", seeded, "total", len(fixture.Habits))
	return nil
}
