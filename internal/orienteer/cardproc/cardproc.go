// Package cardproc implements the pure portion of readout processing:
// retiming, relativizing, required-code resolution, analysis, and split
// reconstruction. It has no knowledge of persistence — callers fetch the
// Course and its controls and hand them in, then persist the returned
// splits and run status themselves.
package cardproc

import (
	"strconv"
	"strings"

	"o-event/internal/models"
	"o-event/internal/orienteer/analysis"
	"o-event/internal/orienteer/retime"
)

// RawPunch is one punch as read off the card, with an integer code exactly
// as transmitted by the station.
type RawPunch struct {
	Code int
	Time int
}

// Input bundles everything the pure processing step needs once the Card,
// Competitor, Run and Course have already been resolved by the caller.
type Input struct {
	Punches   []RawPunch
	StartTime int
	FinishTime int
	Course    models.Course
	Ignore    map[string]bool // event-wide ignore_controls, as strings
	MaxLeg    int             // retimer window; 0 selects retime.DefaultMaxLeg
}

// Output is everything the caller needs to persist: the run's resolved
// status/result and its full set of splits (including the trailing "F"
// split), plus the raw analyzer result for diagnostics/tests.
type Output struct {
	Status   models.RunStatus
	Result   int
	Splits   []models.RunSplit
	Analysis analysis.Result
}

// RequiredCodes derives the analyzer's required-code list from a course's
// ordered controls: non-numeric codes (Start/Finish markers) and
// ignore-listed codes are stripped.
func RequiredCodes(course models.Course, ignore map[string]bool) []string {
	var codes []string
	for _, cc := range course.Controls {
		code := strings.TrimSpace(cc.ControlCode)
		if _, err := strconv.Atoi(code); err != nil {
			continue // non-numeric: Start/Finish bookend markers
		}
		if ignore[code] {
			continue
		}
		codes = append(codes, code)
	}
	return codes
}

// Process retimes the punches, makes them relative to the start time,
// analyzes them against the course, then assembles the run status/result
// and RunSplits. RunID is left empty on returned splits; the caller stamps
// it in once the Run row is known.
func Process(in Input) Output {
	maxLeg := in.MaxLeg
	if maxLeg == 0 {
		maxLeg = retime.DefaultMaxLeg
	}

	rawTimes := make([]int, len(in.Punches))
	for i, p := range in.Punches {
		rawTimes[i] = p.Time
	}
	retimed := retime.Retime(rawTimes, maxLeg)

	punches := make([]analysis.Punch, len(in.Punches))
	for i, p := range in.Punches {
		punches[i] = analysis.Punch{
			Code: strconv.Itoa(p.Code),
			Time: retimed[i] - in.StartTime,
		}
	}

	required := RequiredCodes(in.Course, in.Ignore)
	result := analysis.Analyze(required, punches)

	runResult := in.FinishTime - in.StartTime

	status := models.RunMP
	if result.AllVisited && result.OrderCorrect {
		status = models.RunOK
	}

	splits := buildSplits(in.Course, result, runResult)

	return Output{
		Status:   status,
		Result:   runResult,
		Splits:   splits,
		Analysis: result,
	}
}

// buildSplits assembles one RunSplit per required control plus a trailing
// "F" split whose cum_time is the run result.
func buildSplits(course models.Course, result analysis.Result, runResult int) []models.RunSplit {
	n := len(result.Visited)
	splits := make([]models.RunSplit, 0, n+1)

	var lastCum *int
	for i, v := range result.Visited {
		split := models.RunSplit{
			Seq:         i,
			ControlCode: v.Code,
		}
		if v.Time != nil {
			cum := *v.Time
			split.CumTime = &cum
			if lastCum != nil {
				leg := cum - *lastCum
				split.LegTime = &leg
			} else {
				split.LegTime = &cum
			}
			lastCum = &cum
		}
		splits = append(splits, split)
	}

	finish := models.RunSplit{
		Seq:         n,
		ControlCode: models.FinishSplitCode,
		CumTime:     &runResult,
	}
	if lastCum != nil {
		leg := runResult - *lastCum
		finish.LegTime = &leg
	}
	splits = append(splits, finish)

	return splits
}
