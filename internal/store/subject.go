package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/gradewise/ent"
	"github.com/abhisek/gradewise/ent/subject"
	"github.com/abhisek/gradewise/internal/weights"
)

// subjectRepo implements SubjectRepo using the ent client.
type subjectRepo struct {
	client *ent.Client
}

func (r *subjectRepo) Get(ctx context.Context, id string) (*Subject, error) {
	s, err := r.client.Subject.Query().
		Where(subject.SubjectKey(id)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("query subject %s: %w", id, err)
	}
	return entSubjectToSubject(s)
}

func (r *subjectRepo) Save(ctx context.Context, s *Subject) error {
	structure, err := treeToMap(s.Tree)
	if err != nil {
		return fmt.Errorf("marshal structure: %w", err)
	}

	existing, err := r.client.Subject.Query().
		Where(subject.SubjectKey(s.ID)).
		Only(ctx)
	switch {
	case ent.IsNotFound(err):
		_, err = r.client.Subject.Create().
			SetSubjectKey(s.ID).
			SetName(s.Name).
			SetPassingPercentage(s.PassingPercentage).
			SetStructure(structure).
			Save(ctx)
	case err != nil:
		return fmt.Errorf("query subject %s: %w", s.ID, err)
	default:
		_, err = existing.Update().
			SetName(s.Name).
			SetPassingPercentage(s.PassingPercentage).
			SetStructure(structure).
			Save(ctx)
	}
	if err != nil {
		return fmt.Errorf("save subject %s: %w", s.ID, err)
	}
	return nil
}

func (r *subjectRepo) List(ctx context.Context) ([]Subject, error) {
	rows, err := r.client.Subject.Query().
		Order(ent.Asc(subject.FieldSubjectKey)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	out := make([]Subject, 0, len(rows))
	for _, row := range rows {
		s, err := entSubjectToSubject(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

// treeToMap converts a weight tree to map[string]any for ent JSON storage.
func treeToMap(t weights.Tree) (map[string]any, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func entSubjectToSubject(s *ent.Subject) (*Subject, error) {
	b, err := json.Marshal(s.Structure)
	if err != nil {
		return nil, fmt.Errorf("marshal ent structure: %w", err)
	}
	var tree weights.Tree
	if err := json.Unmarshal(b, &tree); err != nil {
		return nil, fmt.Errorf("unmarshal structure: %w", err)
	}
	return &Subject{
		ID:                s.SubjectKey,
		Name:              s.Name,
		PassingPercentage: s.PassingPercentage,
		Tree:              tree,
		UpdatedAt:         s.UpdatedAt,
	}, nil
}
