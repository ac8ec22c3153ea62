// Package scheduler assigns start slots: priority-ordered, round-robin
// placement of runs into slots subject to group, first-control and
// club-adjacency constraints, deterministic given a seed.
package scheduler

import (
	"math"
	"math/rand"
	"sort"
)

// DefaultPace is used for groups absent from the pace table (minutes/km).
const DefaultPace = 10.0

// Runnable is one run waiting to be slotted.
type Runnable struct {
	RunID             string
	Group             string
	Reg               string // club registration code, may be empty
	FirstControlCode  string
	CourseLengthMetres int
	PriorityBoost     bool // true when this run's competitor carries the configured OCO-style boost tag
}

// Assignment is the scheduler's output for one run.
type Assignment struct {
	RunID string
	Slot  int
}

// Assign places every run into a start slot. No slot holds two runs of
// the same group or two runs sharing a first control, no slot exceeds
// parallelStarts, club adjacency within a group is minimized, and the same
// seed always yields the same assignment.
func Assign(runs []Runnable, parallelStarts int, pace map[string]float64, seed int64) []Assignment {
	if len(runs) == 0 {
		return nil
	}
	if parallelStarts < 1 {
		parallelStarts = 1
	}

	numSlots := int(math.Ceil(float64(len(runs)) / float64(parallelStarts)))
	rng := rand.New(rand.NewSource(seed))

	ordered := prioritySort(runs, pace, rng)

	groupInSlot := make([]map[string]bool, numSlots)
	codeInSlot := make([]map[string]bool, numSlots)
	slotCounts := make([]int, numSlots)
	for i := range groupInSlot {
		groupInSlot[i] = make(map[string]bool)
		codeInSlot[i] = make(map[string]bool)
	}
	lastAssignedReg := make(map[string]string)

	remaining := make([]Runnable, len(ordered))
	copy(remaining, ordered)

	assignments := make([]Assignment, 0, len(runs))
	cursor := 0

	for len(remaining) > 0 {
		idx, slot := pickNext(remaining, groupInSlot, codeInSlot, slotCounts, lastAssignedReg, cursor, numSlots, parallelStarts)
		run := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)

		groupInSlot[slot][run.Group] = true
		codeInSlot[slot][run.FirstControlCode] = true
		slotCounts[slot]++
		lastAssignedReg[run.Group] = run.Reg

		assignments = append(assignments, Assignment{RunID: run.RunID, Slot: slot})
		cursor = (cursor + 1) % numSlots
	}

	return assignments
}

// prioritySort orders runs by (priority-boost first, then longer expected
// course time first), shuffling within a group using the seeded RNG so that
// ties among a group's own runs are reproducibly randomized.
func prioritySort(runs []Runnable, pace map[string]float64, rng *rand.Rand) []Runnable {
	expected := func(r Runnable) float64 {
		p, ok := pace[r.Group]
		if !ok {
			p = DefaultPace
		}
		return float64(r.CourseLengthMetres) * p
	}

	byGroup := make(map[string][]Runnable)
	var groupOrder []string
	for _, r := range runs {
		if _, seen := byGroup[r.Group]; !seen {
			groupOrder = append(groupOrder, r.Group)
		}
		byGroup[r.Group] = append(byGroup[r.Group], r)
	}

	sort.SliceStable(groupOrder, func(i, j int) bool {
		gi, gj := groupOrder[i], groupOrder[j]
		boostI := anyBoosted(byGroup[gi])
		boostJ := anyBoosted(byGroup[gj])
		if boostI != boostJ {
			return boostI // boosted groups first
		}
		ei, ej := expectedGroup(byGroup[gi], expected), expectedGroup(byGroup[gj], expected)
		return ei > ej // longer expected course time first
	})

	ordered := make([]Runnable, 0, len(runs))
	for _, g := range groupOrder {
		lst := byGroup[g]
		rng.Shuffle(len(lst), func(i, j int) { lst[i], lst[j] = lst[j], lst[i] })
		ordered = append(ordered, lst...)
	}
	return ordered
}

func anyBoosted(lst []Runnable) bool {
	for _, r := range lst {
		if r.PriorityBoost {
			return true
		}
	}
	return false
}

func expectedGroup(lst []Runnable, expected func(Runnable) float64) float64 {
	if len(lst) == 0 {
		return 0
	}
	return expected(lst[0])
}

// pickNext selects the index (into remaining) and slot for the next
// placement, trying four tiers in order: a run whose reg differs from its
// group's last-assigned reg under the full constraints, any run under the
// full constraints, any run under the group constraint alone, and finally
// the head of remaining into the least-loaded slot — a pathological case
// where a single group outnumbers the available slots.
func pickNext(remaining []Runnable, groupInSlot, codeInSlot []map[string]bool, slotCounts []int, lastAssignedReg map[string]string, cursor, numSlots, parallelStarts int) (int, int) {
	// Tier 1: preferred.
	for i, r := range remaining {
		if lastAssignedReg[r.Group] != "" && lastAssignedReg[r.Group] == r.Reg {
			continue
		}
		if slot, ok := findSlot(groupInSlot, codeInSlot, slotCounts, parallelStarts, cursor, numSlots, r, true); ok {
			return i, slot
		}
	}
	// Tier 2: fallback A, any reg, still under I1+I3.
	for i, r := range remaining {
		if slot, ok := findSlot(groupInSlot, codeInSlot, slotCounts, parallelStarts, cursor, numSlots, r, true); ok {
			return i, slot
		}
	}
	// Tier 3: fallback B, I1 alone.
	for i, r := range remaining {
		if slot, ok := findSlot(groupInSlot, codeInSlot, slotCounts, parallelStarts, cursor, numSlots, r, false); ok {
			return i, slot
		}
	}
	// Tier 4: last resort, head of remaining into the least-loaded slot.
	best := cursor % numSlots
	for s := 0; s < numSlots; s++ {
		if slotCounts[s] < slotCounts[best] {
			best = s
		}
	}
	return 0, best
}

// findSlot scans the num_slots slots reachable from cursor (the whole ring,
// since num_slots steps cover it) for one with free capacity whose groups
// don't already include r's, and, when requireDistinctCode is true, whose
// first-control codes don't already include r's.
func findSlot(groupInSlot, codeInSlot []map[string]bool, slotCounts []int, parallelStarts, cursor, numSlots int, r Runnable, requireDistinctCode bool) (int, bool) {
	for step := 0; step < numSlots; step++ {
		s := (cursor + step) % numSlots
		if slotCounts[s] >= parallelStarts {
			continue
		}
		if groupInSlot[s][r.Group] {
			continue
		}
		if requireDistinctCode && codeInSlot[s][r.FirstControlCode] {
			continue
		}
		return s, true
	}
	return 0, false
}
