package floating

import (
	"context"
	"sort"
)

// AutoPlacementOptions configures the autoPlacement middleware.
type AutoPlacementOptions struct {
	// AllowedPlacements limits the candidates. Empty means AllPlacements.
	AllowedPlacements []Placement

	// Alignment prefers candidates with this alignment. With the zero value
	// only unaligned placements (plain sides) are considered.
	Alignment Alignment

	// AutoAlignment also tries the opposite alignment when Alignment is set.
	AutoAlignment bool

	// CrossAxis scores aligned candidates by their cross-axis overflow too.
	CrossAxis bool

	// Padding shrinks the clipping rect when scoring.
	Padding float64
}

// PlacementOverflow is the overflow measured for one candidate: the side
// overflow followed by the two alignment-side overflows.
type PlacementOverflow struct {
	Placement Placement
	Overflows [3]float64
}

// AutoPlacementData carries the candidate scan between resets.
type AutoPlacementData struct {
	Index     int
	Overflows []PlacementOverflow
}

type autoPlacement struct {
	opts       AutoPlacementOptions
	placements []Placement
}

// AutoPlacement chooses the candidate placement with the most space. Each
// candidate is tried in turn through a pipeline reset, then the best one
// is selected. With a single allowed placement that placement always wins,
// even when it overflows.
func AutoPlacement(opts AutoPlacementOptions) Middleware {
	return autoPlacement{opts: opts, placements: placementList(opts)}
}

func (autoPlacement) Name() string { return "autoPlacement" }

func (a autoPlacement) Compute(_ context.Context, s State) (Step, error) {
	data, _ := s.Data[a.Name()].(AutoPlacementData)

	if data.Index >= len(a.placements) {
		return Keep(s), nil
	}
	current := a.placements[data.Index]
	if current != s.Placement {
		step := Keep(s)
		step.Reset = &Reset{Placement: current}
		return step, nil
	}

	overflow := DetectOverflow(s, a.opts.Padding)
	mainAlign, crossAlign := alignmentSides(current, s.Rects)
	all := append(append([]PlacementOverflow(nil), data.Overflows...), PlacementOverflow{
		Placement: current,
		Overflows: [3]float64{
			overflow.Get(current.Side()),
			overflow.Get(mainAlign),
			overflow.Get(crossAlign),
		},
	})

	if next := data.Index + 1; next < len(a.placements) {
		step := Keep(s)
		step.Data = AutoPlacementData{Index: next, Overflows: all}
		step.Reset = &Reset{Placement: a.placements[next]}
		return step, nil
	}

	best := a.best(all)
	step := Keep(s)
	step.Data = AutoPlacementData{Index: data.Index + 1, Overflows: all}
	if best != s.Placement {
		step.Reset = &Reset{Placement: best}
	}
	return step, nil
}

// best returns the candidate that fits on every side with the least main
// overflow, or failing that the one with the least main overflow.
func (a autoPlacement) best(all []PlacementOverflow) Placement {
	type scored struct {
		po    PlacementOverflow
		score float64
	}
	sorted := make([]scored, len(all))
	for i, po := range all {
		score := po.Overflows[0]
		if po.Placement.Alignment() != AlignCenter && a.opts.CrossAxis {
			score = po.Overflows[0] + po.Overflows[1]
		}
		sorted[i] = scored{po: po, score: score}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].score < sorted[j].score })

	for _, c := range sorted {
		n := 3
		if c.po.Placement.Alignment() != AlignCenter {
			n = 2
		}
		fits := true
		for _, v := range c.po.Overflows[:n] {
			if v > 0 {
				fits = false
				break
			}
		}
		if fits {
			return c.po.Placement
		}
	}
	return sorted[0].po.Placement
}

// placementList filters the allowed placements by alignment preference.
func placementList(opts AutoPlacementOptions) []Placement {
	allowed := opts.AllowedPlacements
	if len(allowed) == 0 {
		allowed = AllPlacements
	}

	var out []Placement
	if opts.Alignment == AlignCenter {
		for _, p := range allowed {
			if p.Alignment() == AlignCenter {
				out = append(out, p)
			}
		}
		return out
	}

	for _, p := range allowed {
		if p.Alignment() == opts.Alignment {
			out = append(out, p)
		}
	}
	if opts.AutoAlignment {
		for _, p := range allowed {
			if p.Alignment() != AlignCenter && p.Alignment() != opts.Alignment {
				out = append(out, p)
			}
		}
	}
	return out
}
