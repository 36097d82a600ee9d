package server

import (
	"fmt"

	"github.com/abhisek/gradewise/internal/api"
	"github.com/abhisek/gradewise/internal/weights"
)

// applyUpdates writes every weight in u onto a copy of t. It rejects unknown
// ids, out-of-range weights, changes to fixed nodes and a result whose
// top-level total is not exactly 100.
func applyUpdates(t weights.Tree, u api.Updates) (weights.Tree, error) {
	out := t.Clone()

	for _, uu := range u.BigLessons {
		ui := out.UnitIndex(uu.ID)
		if ui < 0 {
			return t, fmt.Errorf("unknown unit id %s", uu.ID)
		}
		unit := &out.Units[ui]
		if err := assign(&unit.Weight, unit.IsFixed, uu.WeightUpdate, "unit"); err != nil {
			return t, err
		}

		if uu.Quiz != nil {
			if unit.Quiz == nil || unit.Quiz.ID != uu.Quiz.ID {
				return t, fmt.Errorf("unknown quiz id %s in unit %s", uu.Quiz.ID, uu.ID)
			}
			if err := assign(&unit.Quiz.Weight, unit.Quiz.IsFixed, *uu.Quiz, "quiz"); err != nil {
				return t, err
			}
		}

		for _, lu := range uu.Lessons {
			li := unit.LessonIndex(lu.ID)
			if li < 0 {
				return t, fmt.Errorf("unknown lesson id %s in unit %s", lu.ID, uu.ID)
			}
			lesson := &unit.Lessons[li]
			if err := assign(&lesson.Weight, lesson.IsFixed, lu.WeightUpdate, "lesson"); err != nil {
				return t, err
			}
			if lu.Quiz != nil {
				if lesson.Quiz == nil || lesson.Quiz.ID != lu.Quiz.ID {
					return t, fmt.Errorf("unknown quiz id %s in lesson %s", lu.Quiz.ID, lu.ID)
				}
				if err := assign(&lesson.Quiz.Weight, lesson.Quiz.IsFixed, *lu.Quiz, "quiz"); err != nil {
					return t, err
				}
			}
		}
	}

	if u.PostTest != nil {
		if out.PostTest == nil || out.PostTest.ID != u.PostTest.ID {
			return t, fmt.Errorf("unknown post-test id %s", u.PostTest.ID)
		}
		if err := assign(&out.PostTest.Weight, out.PostTest.IsFixed, *u.PostTest, "post-test"); err != nil {
			return t, err
		}
	}

	if err := weights.CanSave(out).Err(); err != nil {
		a := weights.Recompute(out)
		return t, fmt.Errorf("total weight must equal 100%% (currently %s%%)", weights.FormatPercent(a.TotalUsed))
	}
	return out, nil
}

func assign(dst *float64, fixed bool, u api.WeightUpdate, kind string) error {
	if u.Weight < 0 || u.Weight > weights.Total {
		return fmt.Errorf("%s %s: weight %s is outside 0-100", kind, u.ID, weights.FormatPercent(u.Weight))
	}
	w := weights.Round2(u.Weight)
	if fixed && w != weights.Round2(*dst) {
		return fmt.Errorf("%s %s is fixed and cannot be changed", kind, u.ID)
	}
	*dst = w
	return nil
}
