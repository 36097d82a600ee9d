package server

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/gradewise/internal/store"
	"github.com/abhisek/gradewise/internal/weights"
)

// seedFile is the YAML layout accepted by `gradewise serve --seed`.
type seedFile struct {
	Subjects []seedSubject `yaml:"subjects"`
}

type seedSubject struct {
	ID                string     `yaml:"id"`
	Name              string     `yaml:"name"`
	PassingPercentage float64    `yaml:"passing_percentage"`
	PreTest           *seedNode  `yaml:"pre_test"`
	Units             []seedUnit `yaml:"units"`
	PostTest          *seedNode  `yaml:"post_test"`
}

type seedNode struct {
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title"`
	Weight float64 `yaml:"weight"`
	Fixed  bool    `yaml:"fixed"`
}

type seedLesson struct {
	seedNode `yaml:",inline"`
	HasVideo bool      `yaml:"has_video"`
	Quiz     *seedNode `yaml:"quiz"`
}

type seedUnit struct {
	seedNode `yaml:",inline"`
	Quiz     *seedNode    `yaml:"quiz"`
	Lessons  []seedLesson `yaml:"lessons"`
}

// LoadSeed reads subjects from a YAML file.
func LoadSeed(path string) ([]store.Subject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes YAML seed data. Nodes without an id get a random UUID;
// subjects must name their id.
func ParseSeed(data []byte) ([]store.Subject, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	subjects := make([]store.Subject, 0, len(f.Subjects))
	seen := make(map[string]bool)
	for i, s := range f.Subjects {
		if s.ID == "" {
			return nil, fmt.Errorf("subject #%d: id is required", i+1)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("subject %s: duplicate id", s.ID)
		}
		seen[s.ID] = true

		if s.PassingPercentage < 0 || s.PassingPercentage > weights.Total {
			return nil, fmt.Errorf("subject %s: passing_percentage must be between 0 and 100", s.ID)
		}
		subjects = append(subjects, store.Subject{
			ID:                s.ID,
			Name:              s.Name,
			PassingPercentage: s.PassingPercentage,
			Tree:              s.tree(),
		})
	}
	return subjects, nil
}

func (s seedSubject) tree() weights.Tree {
	t := weights.Tree{Units: make([]weights.Unit, 0, len(s.Units))}
	if s.PreTest != nil {
		t.PreTest = &weights.PreTest{ID: nodeID(s.PreTest.ID), Title: s.PreTest.Title}
	}
	for i, u := range s.Units {
		unit := weights.Unit{
			ID:      nodeID(u.ID),
			Title:   u.Title,
			Order:   i + 1,
			Weight:  u.Weight,
			IsFixed: u.Fixed,
			Quiz:    u.Quiz.quiz(),
			Lessons: make([]weights.Lesson, 0, len(u.Lessons)),
		}
		for j, l := range u.Lessons {
			unit.Lessons = append(unit.Lessons, weights.Lesson{
				ID:       nodeID(l.ID),
				Title:    l.Title,
				Order:    j + 1,
				Weight:   l.Weight,
				IsFixed:  l.Fixed,
				HasVideo: l.HasVideo,
				Quiz:     l.Quiz.quiz(),
			})
		}
		t.Units = append(t.Units, unit)
	}
	if s.PostTest != nil {
		t.PostTest = &weights.PostTest{
			ID:      nodeID(s.PostTest.ID),
			Title:   s.PostTest.Title,
			Weight:  s.PostTest.Weight,
			IsFixed: s.PostTest.Fixed,
		}
	}
	return t
}

func (n *seedNode) quiz() *weights.Quiz {
	if n == nil {
		return nil
	}
	return &weights.Quiz{ID: nodeID(n.ID), Title: n.Title, Weight: n.Weight, IsFixed: n.Fixed}
}

func nodeID(id string) weights.ID {
	if id == "" {
		return weights.ID(uuid.NewString())
	}
	return weights.ID(id)
}
