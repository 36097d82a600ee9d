package weights

// Buckets lists the top-level weight slots: every unit in order, then the
// post-test when present.
func Buckets(t Tree) []NodeRef {
	refs := make([]NodeRef, 0, len(t.Units)+1)
	for _, u := range t.Units {
		refs = append(refs, UnitRef(u.ID))
	}
	if t.PostTest != nil {
		refs = append(refs, PostTestRef())
	}
	return refs
}

// EvenShares splits 100 into n equal shares at two-decimal precision. When
// 100/n is not representable, the leftover hundredths go to the trailing
// shares one each, so the shares always total exactly 100.
func EvenShares(n int) []float64 {
	return splitHundredths(Total*100, n)
}

func splitHundredths(total int64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	base := total / int64(n)
	extra := int(total % int64(n))

	shares := make([]float64, n)
	for i := range shares {
		h := base
		if i >= n-extra {
			h++
		}
		shares[i] = fromHundredths(h)
	}
	return shares
}

// Distribute replaces every top-level weight with an even share of 100.
// Nested quiz and lesson weights are left untouched.
func Distribute(t Tree) Tree {
	out := t.Clone()
	shares := EvenShares(len(Buckets(t)))

	for i := range out.Units {
		out.Units[i].Weight = shares[i]
	}
	if out.PostTest != nil {
		out.PostTest.Weight = shares[len(shares)-1]
	}
	return out
}

// DistributeNested applies Distribute and then splits each unit's new budget
// evenly across its children: the unit quiz, every lesson and every lesson
// quiz. Units without children keep an empty allocation.
func DistributeNested(t Tree) Tree {
	out := Distribute(t)

	for i := range out.Units {
		u := &out.Units[i]
		slots := 0
		if u.Quiz != nil {
			slots++
		}
		for _, l := range u.Lessons {
			slots++
			if l.Quiz != nil {
				slots++
			}
		}
		if slots == 0 {
			continue
		}

		shares := splitHundredths(hundredths(u.Weight), slots)
		next := 0
		take := func() float64 {
			s := shares[next]
			next++
			return s
		}

		if u.Quiz != nil {
			u.Quiz.Weight = take()
		}
		for j := range u.Lessons {
			u.Lessons[j].Weight = take()
			if u.Lessons[j].Quiz != nil {
				u.Lessons[j].Quiz.Weight = take()
			}
		}
	}
	return out
}
