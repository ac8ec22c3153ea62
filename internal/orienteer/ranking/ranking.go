// Package ranking computes single-day dense-tie rankings and multi-day
// best-of-three aggregation with scoring.
package ranking

import (
	"sort"

	"o-event/internal/models"
)

// Placement pairs a run with its assigned position (nil for non-OK runs)
// and its time_behind the day's winner (nil for non-OK runs).
type Placement struct {
	Position    *int
	TimeBehind  *int
	Run         models.Run
}

// RankSingleDay ranks the runs of one group/day: OK runs sorted ascending
// by result with dense-tie position assignment, followed by non-OK runs
// (unplaced) in result order, nulls last.
func RankSingleDay(runs []models.Run) []Placement {
	var ok, other []models.Run
	for _, r := range runs {
		if r.Status == models.RunOK {
			ok = append(ok, r)
		} else {
			other = append(other, r)
		}
	}

	sort.SliceStable(ok, func(i, j int) bool {
		return resultOrMax(ok[i]) < resultOrMax(ok[j])
	})
	sort.SliceStable(other, func(i, j int) bool {
		return resultOrMax(other[i]) < resultOrMax(other[j])
	})

	placements := make([]Placement, 0, len(runs))
	if len(ok) == 0 {
		for _, r := range other {
			placements = append(placements, Placement{Run: r})
		}
		return placements
	}

	winner := *ok[0].Result
	position := 1
	prevBehind := -1 // sentinel: no previous run yet
	for i, r := range ok {
		behind := *r.Result - winner
		if i == 0 || behind != prevBehind {
			position = i + 1
		}
		pos := position
		tb := behind
		placements = append(placements, Placement{Position: &pos, TimeBehind: &tb, Run: r})
		prevBehind = behind
	}

	for _, r := range other {
		placements = append(placements, Placement{Run: r})
	}

	return placements
}

func resultOrMax(r models.Run) int {
	if r.Result == nil {
		return int(^uint(0) >> 1) // max int: undefined results sort last
	}
	return *r.Result
}

// ScoreForRun computes
// score = max(0, floor(100*(2 - time_behind/(time-time_behind)))).
// If winnerTime is 0 (no winner that day) the score is 0. If time equals
// time_behind — impossible while a winner exists, since that denominator is
// exactly winner_time — the score is 0.
func ScoreForRun(run models.Run, winnerTime *int) int {
	if run.Status != models.RunOK || run.Result == nil || winnerTime == nil {
		return 0
	}
	time := *run.Result
	timeBehind := time - *winnerTime
	denom := time - timeBehind // == winnerTime
	if denom == 0 {
		return 0
	}
	s := int(100 * (2.0 - float64(timeBehind)/float64(denom)))
	if s < 0 {
		return 0
	}
	return s
}

// DayWinner returns the minimum OK result for a day's runs, or nil if none.
func DayWinner(runs []models.Run) *int {
	var best *int
	for _, r := range runs {
		if r.Status != models.RunOK || r.Result == nil {
			continue
		}
		if best == nil || *r.Result < *best {
			v := *r.Result
			best = &v
		}
	}
	return best
}

// CompetitorAggregate is the multi-day rollup for one competitor.
type CompetitorAggregate struct {
	CompetitorID string
	Scores       []int // one per day, 0 for days without a run
	BestCount    int
	TotalScore   int
	TotalTime    int
	Place        *int // nil when BestCount == 0
}

// dayRun is one competitor's run on one day, paired with its score.
type dayRun struct {
	run   models.Run
	score int
}

// RankMultiDay aggregates each competitor's top-3 OK runs across
// daysToCalculate days and sorts by (best_count desc, total_score desc,
// total_time asc), assigning dense-tie places.
func RankMultiDay(daysToCalculate int, competitorRuns map[string][]models.Run) []CompetitorAggregate {
	runsByDay := make(map[int][]models.Run, daysToCalculate)
	for _, runs := range competitorRuns {
		for _, r := range runs {
			if r.Day >= 1 && r.Day <= daysToCalculate {
				runsByDay[r.Day] = append(runsByDay[r.Day], r)
			}
		}
	}

	winners := make(map[int]*int, daysToCalculate)
	for day := 1; day <= daysToCalculate; day++ {
		winners[day] = DayWinner(runsByDay[day])
	}

	competitorIDs := make([]string, 0, len(competitorRuns))
	for id := range competitorRuns {
		competitorIDs = append(competitorIDs, id)
	}
	sort.Strings(competitorIDs)

	aggregates := make([]CompetitorAggregate, 0, len(competitorIDs))
	for _, id := range competitorIDs {
		byDay := make(map[int]models.Run)
		for _, r := range competitorRuns[id] {
			if r.Day >= 1 && r.Day <= daysToCalculate {
				byDay[r.Day] = r
			}
		}

		scores := make([]int, daysToCalculate)
		var okRuns []dayRun
		for day := 1; day <= daysToCalculate; day++ {
			r, present := byDay[day]
			if !present {
				continue
			}
			s := ScoreForRun(r, winners[day])
			scores[day-1] = s
			if r.Status == models.RunOK {
				okRuns = append(okRuns, dayRun{run: r, score: s})
			}
		}

		sort.SliceStable(okRuns, func(i, j int) bool {
			if okRuns[i].score != okRuns[j].score {
				return okRuns[i].score > okRuns[j].score
			}
			return *okRuns[i].run.Result < *okRuns[j].run.Result
		})

		best := okRuns
		if len(best) > 3 {
			best = best[:3]
		}

		totalScore := 0
		totalTime := 0
		for _, dr := range best {
			totalScore += dr.score
			totalTime += *dr.run.Result
		}

		aggregates = append(aggregates, CompetitorAggregate{
			CompetitorID: id,
			Scores:       scores,
			BestCount:    len(best),
			TotalScore:   totalScore,
			TotalTime:    totalTime,
		})
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		a, b := aggregates[i], aggregates[j]
		if a.BestCount != b.BestCount {
			return a.BestCount > b.BestCount
		}
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		return a.TotalTime < b.TotalTime
	})

	place := 1
	for i := range aggregates {
		if i > 0 && !sameKey(aggregates[i-1], aggregates[i]) {
			place = i + 1
		}
		if aggregates[i].BestCount > 0 {
			p := place
			aggregates[i].Place = &p
		}
	}

	return aggregates
}

func sameKey(a, b CompetitorAggregate) bool {
	return a.BestCount == b.BestCount && a.TotalScore == b.TotalScore && a.TotalTime == b.TotalTime
}
