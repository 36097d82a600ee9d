package api

import "github.com/abhisek/gradewise/internal/weights"

// Envelope is the common response wrapper of every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SubjectInfo is the subject metadata returned alongside the score structure.
type SubjectInfo struct {
	ID                weights.ID `json:"id,omitempty"`
	Name              string     `json:"name,omitempty"`
	PassingPercentage float64    `json:"passing_percentage"`
}

// ScoresResponse is the body of GET /subjects/{id}/scores.
type ScoresResponse struct {
	Envelope
	ScoreStructure weights.Tree `json:"scoreStructure"`
	Subject        SubjectInfo  `json:"subject"`
}

// WeightUpdate carries one weight slot of a hierarchical update.
type WeightUpdate struct {
	ID      weights.ID `json:"id"`
	Weight  float64    `json:"weight"`
	IsFixed bool       `json:"is_fixed"`
}

// LessonUpdate is a lesson entry of a hierarchical update.
type LessonUpdate struct {
	WeightUpdate
	Quiz *WeightUpdate `json:"quiz,omitempty"`
}

// UnitUpdate is a unit entry of a hierarchical update.
type UnitUpdate struct {
	WeightUpdate
	Quiz    *WeightUpdate  `json:"quiz,omitempty"`
	Lessons []LessonUpdate `json:"lessons"`
}

// Updates is the payload under "updates".
type Updates struct {
	BigLessons []UnitUpdate  `json:"big_lessons"`
	PostTest   *WeightUpdate `json:"post_test,omitempty"`
}

// HierarchicalUpdate is the body of PUT /subjects/{id}/scores-hierarchical.
type HierarchicalUpdate struct {
	Updates Updates `json:"updates"`
}

// AutoDistributeRequest is the body of POST /subjects/{id}/auto-distribute.
type AutoDistributeRequest struct {
	ResetBeforeDistribute bool       `json:"resetBeforeDistribute"`
	SubjectID             weights.ID `json:"subject_id"`
}

// PassingCriteriaRequest is the body of PUT /subjects/{id}/passing-criteria.
type PassingCriteriaRequest struct {
	PassingPercentage   float64 `json:"passing_percentage"`
	AutoDistributeScore bool    `json:"auto_distribute_score"`
}

// NewHierarchicalUpdate serializes every id, weight and fixed flag of t,
// fixed nodes included.
func NewHierarchicalUpdate(t weights.Tree) HierarchicalUpdate {
	units := make([]UnitUpdate, 0, len(t.Units))
	for _, u := range t.Units {
		uu := UnitUpdate{
			WeightUpdate: WeightUpdate{ID: u.ID, Weight: u.Weight, IsFixed: u.IsFixed},
			Quiz:         quizUpdate(u.Quiz),
			Lessons:      make([]LessonUpdate, 0, len(u.Lessons)),
		}
		for _, l := range u.Lessons {
			uu.Lessons = append(uu.Lessons, LessonUpdate{
				WeightUpdate: WeightUpdate{ID: l.ID, Weight: l.Weight, IsFixed: l.IsFixed},
				Quiz:         quizUpdate(l.Quiz),
			})
		}
		units = append(units, uu)
	}

	var post *WeightUpdate
	if t.PostTest != nil {
		post = &WeightUpdate{ID: t.PostTest.ID, Weight: t.PostTest.Weight, IsFixed: t.PostTest.IsFixed}
	}

	return HierarchicalUpdate{Updates: Updates{BigLessons: units, PostTest: post}}
}

func quizUpdate(q *weights.Quiz) *WeightUpdate {
	if q == nil {
		return nil
	}
	return &WeightUpdate{ID: q.ID, Weight: q.Weight, IsFixed: q.IsFixed}
}
