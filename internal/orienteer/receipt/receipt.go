// Package receipt renders a run's splits and course-wide field-best leg
// times into a deterministic, byte-exact sequence of printer lines.
// Rendering is pure, no I/O and no store access, so the same inputs always
// produce the same lines.
package receipt

import (
	"fmt"
	"strings"

	"o-event/internal/models"
	"o-event/internal/orienteer/clock"
)

// DefaultWidth is the conventional thermal-receipt column width.
const DefaultWidth = 48

// LegStat is the per-seq statistic row of a receipt.
type LegStat struct {
	Seq         int
	ControlCode string
	Cum         *int
	Leg         *int
	BestLeg     *int // min leg_time across all runs on this course at this seq
	Loss        *int // max(0, leg-best_leg)
	Pace        *int // seconds per km, rounded, when leg_length is present
}

// Standing is the live field-position summary printed in the footer.
type Standing struct {
	Place     int
	FieldSize int
}

// Input bundles everything needed to render one receipt.
type Input struct {
	Width        int
	EventName    string
	EventDate    string
	Place        string
	Name         string
	Club         string
	Category     string
	DistanceKM   float64
	ClimbMetres  int
	CheckTime    *int
	StartTime    *int
	FinishTime   *int
	CardNumber   int
	Legs         []LegStat
	Status       models.RunStatus
	Result       *int
	CumulativeLoss int
	Standing     Standing
}

// Render produces the receipt as a sequence of printer lines. Width
// defaults to DefaultWidth when zero.
func Render(in Input) []string {
	width := in.Width
	if width == 0 {
		width = DefaultWidth
	}

	var lines []string
	rule := strings.Repeat("=", width)
	dash := strings.Repeat("-", width)

	lines = append(lines, rule)
	lines = append(lines, fmt.Sprintf("%s %s", in.EventDate, in.Place))
	lines = append(lines, dash)
	lines = append(lines, padRight(in.Name, width-len(in.Club))+in.Club)
	lines = append(lines, fmt.Sprintf("%s%.3fkm %dm", padRight(in.Category, width-16), in.DistanceKM, in.ClimbMetres))
	lines = append(lines, fmt.Sprintf("Check: %-20sFinish: %s", clock.Format(in.CheckTime), clock.Format(in.FinishTime)))
	lines = append(lines, fmt.Sprintf("Start: %-20sSI:%d", clock.Format(in.StartTime), in.CardNumber))
	lines = append(lines, rule)

	for _, leg := range in.Legs {
		lines = append(lines, renderLeg(leg))
	}

	total := "DSQ"
	if in.Status == models.RunOK {
		total = "OK"
	}
	lines = append(lines, fmt.Sprintf("     %s %10s", total, clock.Format(in.Result)))
	lines = append(lines, rule)

	standingStr := "-----"
	if in.Standing.FieldSize > 0 {
		standingStr = fmt.Sprintf("%d/%d", in.Standing.Place, in.Standing.FieldSize)
	}
	lines = append(lines, fmt.Sprintf("+%s field loss", clock.FormatSeconds(in.CumulativeLoss)))
	lines = append(lines, fmt.Sprintf("standing: %-10s", standingStr))

	return lines
}

func renderLeg(leg LegStat) string {
	cum := dashIfNil(leg.Cum)
	legStr := dashIfNil(leg.Leg)

	lossStr := ""
	if leg.Loss != nil && *leg.Loss > 0 {
		lossStr = "+" + clock.FormatSeconds(*leg.Loss)
	}

	paceStr := ""
	if leg.Pace != nil {
		paceStr = clock.FormatSeconds(*leg.Pace)
	}

	return fmt.Sprintf("%2d. %3s%11s%10s%10s%8s",
		leg.Seq, leg.ControlCode, cum, legStr, lossStr, paceStr)
}

func dashIfNil(v *int) string {
	if v == nil {
		return "-----"
	}
	return clock.FormatSeconds(*v)
}

func padRight(s string, width int) string {
	if width <= len(s) {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// FieldBestLegs computes, for each seq, the minimum non-nil leg time across
// a set of completed runs' splits on the same course — the "best_leg" input
// to LegStat.Loss.
func FieldBestLegs(allSplits [][]models.RunSplit) map[int]int {
	best := make(map[int]int)
	for _, splits := range allSplits {
		for _, s := range splits {
			if s.LegTime == nil {
				continue
			}
			if cur, ok := best[s.Seq]; !ok || *s.LegTime < cur {
				best[s.Seq] = *s.LegTime
			}
		}
	}
	return best
}

// BuildLegStats assembles LegStat rows from a run's splits, a course's leg
// lengths, and the field-best leg map. Loss is the leg's excess over the
// field best, never negative; pace is seconds per kilometre.
func BuildLegStats(splits []models.RunSplit, course models.Course, fieldBest map[int]int) []LegStat {
	legLength := make(map[int]*int, len(course.Controls))
	for _, cc := range course.Controls {
		legLength[cc.Seq] = cc.LegLength
	}

	stats := make([]LegStat, len(splits))
	for i, s := range splits {
		stat := LegStat{Seq: s.Seq, ControlCode: s.ControlCode, Cum: s.CumTime, Leg: s.LegTime}

		if best, ok := fieldBest[s.Seq]; ok {
			b := best
			stat.BestLeg = &b
			if s.LegTime != nil {
				loss := clock.MaxZero(*s.LegTime - best)
				stat.Loss = &loss
			}
		}

		if s.LegTime != nil {
			stat.Pace = clock.SafeDivPace(s.LegTime, legLength[s.Seq])
		}

		stats[i] = stat
	}
	return stats
}

// ComputeStanding derives the live place: 1 + the count of completed runs
// in the same group and day with a faster result.
func ComputeStanding(thisResult int, othersResults []int) Standing {
	place := 1
	for _, r := range othersResults {
		if r < thisResult {
			place++
		}
	}
	return Standing{Place: place, FieldSize: len(othersResults) + 1}
}
