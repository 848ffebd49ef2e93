// Package seed loads the built-in skill, role requirement, and module
// catalogs into the database. Apply is idempotent: rows are matched by
// natural key and only missing ones are inserted, so it is safe to run on
// every startup.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

//go:embed data/*.yaml
var dataFS embed.FS

type skillEntry struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory"`
	Description string `yaml:"description"`
}

type skillsFile struct {
	Skills []skillEntry `yaml:"skills"`
}

type requirementEntry struct {
	Skill         string `yaml:"skill"`
	RequiredLevel int    `yaml:"required_level"`
	Importance    string `yaml:"importance"`
}

type roleEntry struct {
	RoleName     string             `yaml:"role_name"`
	Requirements []requirementEntry `yaml:"requirements"`
}

type rolesFile struct {
	Roles []roleEntry `yaml:"roles"`
}

type moduleEntry struct {
	Title                string   `yaml:"title"`
	Skill                string   `yaml:"skill"`
	ContentType          string   `yaml:"content_type"`
	DifficultyLevel      int      `yaml:"difficulty_level"`
	EstimatedMinutes     int      `yaml:"estimated_minutes"`
	LearningStyleFit     []string `yaml:"learning_style_fit"`
	Prerequisites        []string `yaml:"prerequisites"`
	PracticalApplication string   `yaml:"practical_application"`
}

type modulesFile struct {
	Modules []moduleEntry `yaml:"modules"`
}

// Apply loads all catalogs inside a single transaction.
func Apply(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	seedLog := log.With("component", "seed")

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skillIDs, err := applySkills(tx, seedLog)
		if err != nil {
			return fmt.Errorf("seed skills: %w", err)
		}
		if err := applyRoles(tx, seedLog, skillIDs); err != nil {
			return fmt.Errorf("seed role requirements: %w", err)
		}
		if err := applyModules(tx, seedLog, skillIDs); err != nil {
			return fmt.Errorf("seed modules: %w", err)
		}
		return nil
	})
}

func applySkills(tx *gorm.DB, log *logger.Logger) (map[string]types.Skill, error) {
	raw, err := dataFS.ReadFile("data/skills.yaml")
	if err != nil {
		return nil, err
	}
	var file skillsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}

	byName := make(map[string]types.Skill, len(file.Skills))
	created := 0
	for _, entry := range file.Skills {
		row := types.Skill{
			Name:             entry.Name,
			Category:         entry.Category,
			LevelDefinitions: datatypes.JSON([]byte(`{}`)),
		}
		if entry.Subcategory != "" {
			sub := entry.Subcategory
			row.Subcategory = &sub
		}
		if entry.Description != "" {
			desc := entry.Description
			row.Description = &desc
		}
		res := tx.Where("name = ?", entry.Name).FirstOrCreate(&row)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			created++
		}
		byName[entry.Name] = row
	}
	log.Info("skills seeded", "total", len(file.Skills), "created", created)
	return byName, nil
}

func applyRoles(tx *gorm.DB, log *logger.Logger, skills map[string]types.Skill) error {
	raw, err := dataFS.ReadFile("data/role_requirements.yaml")
	if err != nil {
		return err
	}
	var file rolesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return err
	}

	created := 0
	for _, role := range file.Roles {
		for _, req := range role.Requirements {
			skill, ok := skills[req.Skill]
			if !ok {
				return fmt.Errorf("role %q references unknown skill %q", role.RoleName, req.Skill)
			}
			row := types.SkillRequirement{
				RoleName:      role.RoleName,
				SkillID:       skill.ID,
				RequiredLevel: req.RequiredLevel,
				Importance:    req.Importance,
			}
			res := tx.Where("role_name = ? AND skill_id = ?", role.RoleName, skill.ID).
				FirstOrCreate(&row)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				created++
			}
		}
	}
	log.Info("role requirements seeded", "roles", len(file.Roles), "created", created)
	return nil
}

func applyModules(tx *gorm.DB, log *logger.Logger, skills map[string]types.Skill) error {
	raw, err := dataFS.ReadFile("data/modules.yaml")
	if err != nil {
		return err
	}
	var file modulesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return err
	}

	// Prerequisites reference other modules by title, so insert in two
	// passes: rows first, then prerequisite ID lists.
	byTitle := make(map[string]*types.LearningModule, len(file.Modules))
	createdTitles := make(map[string]bool, len(file.Modules))
	created := 0
	for _, entry := range file.Modules {
		skill, ok := skills[entry.Skill]
		if !ok {
			return fmt.Errorf("module %q references unknown skill %q", entry.Title, entry.Skill)
		}
		styles, err := json.Marshal(entry.LearningStyleFit)
		if err != nil {
			return err
		}
		skillID := skill.ID
		row := types.LearningModule{
			Title:            entry.Title,
			ContentType:      entry.ContentType,
			SkillID:          &skillID,
			DifficultyLevel:  entry.DifficultyLevel,
			EstimatedMinutes: entry.EstimatedMinutes,
			LearningStyleFit: datatypes.JSON(styles),
			Prerequisites:    datatypes.JSON([]byte(`[]`)),
		}
		if entry.PracticalApplication != "" {
			pa := entry.PracticalApplication
			row.PracticalApplication = &pa
		}
		res := tx.Where("title = ?", entry.Title).FirstOrCreate(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			created++
			createdTitles[entry.Title] = true
		}
		byTitle[entry.Title] = &row
	}

	for _, entry := range file.Modules {
		if len(entry.Prerequisites) == 0 || !createdTitles[entry.Title] {
			continue
		}
		ids := make([]string, 0, len(entry.Prerequisites))
		for _, title := range entry.Prerequisites {
			prereq, ok := byTitle[title]
			if !ok {
				return fmt.Errorf("module %q references unknown prerequisite %q", entry.Title, title)
			}
			ids = append(ids, prereq.ID.String())
		}
		encoded, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		if err := tx.Model(&types.LearningModule{}).
			Where("id = ?", byTitle[entry.Title].ID).
			Update("prerequisites", datatypes.JSON(encoded)).Error; err != nil {
			return err
		}
	}

	log.Info("modules seeded", "total", len(file.Modules), "created", created)
	return nil
}
