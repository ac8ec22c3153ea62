package receipt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"o-event/internal/models"
)

func intp(v int) *int { return &v }

func TestRender_OKRun(t *testing.T) {
	result := 1955
	in := Input{
		EventName:  "Autumn Cup",
		EventDate:  "2026-09-12",
		Place:      "Hillside Park",
		Name:       "Doe Jane",
		Club:       "OCO",
		Category:   "Sprint",
		DistanceKM: 3.2,
		StartTime:  intp(60386),
		FinishTime: intp(62341),
		CardNumber: 123456,
		Status:     models.RunOK,
		Result:     &result,
		Legs: []LegStat{
			{Seq: 1, ControlCode: "31", Cum: intp(314), Leg: intp(314)},
			{Seq: 2, ControlCode: "F", Cum: intp(1955), Leg: intp(1641)},
		},
		CumulativeLoss: 0,
		Standing:       Standing{Place: 1, FieldSize: 1},
	}

	lines := Render(in)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "OK")
	assert.Contains(t, joined, "+0:00")
	assert.Contains(t, joined, "1/1")
	require.NotEmpty(t, lines)
}

func TestRender_MPRun(t *testing.T) {
	in := Input{
		EventDate:  "2026-09-12",
		Place:      "Hillside Park",
		Name:       "Doe Jane",
		Club:       "OCO",
		Category:   "Sprint",
		DistanceKM: 3.2,
		Status:     models.RunMP,
		Result:     intp(1955),
		Legs: []LegStat{
			{Seq: 1, ControlCode: "31", Cum: intp(314), Leg: intp(314)},
			{Seq: 2, ControlCode: "45", Cum: nil, Leg: nil},
		},
		Standing: Standing{},
	}

	lines := Render(in)
	joined := strings.Join(lines, "\n")

	assert.Contains(t, joined, "DSQ")
	assert.Contains(t, joined, "-----")
	assert.NotContains(t, joined, "     OK")
}

func TestFieldBestLegs(t *testing.T) {
	allSplits := [][]models.RunSplit{
		{{Seq: 1, LegTime: intp(300)}, {Seq: 2, LegTime: intp(200)}},
		{{Seq: 1, LegTime: intp(280)}, {Seq: 2, LegTime: intp(250)}},
	}

	best := FieldBestLegs(allSplits)
	assert.Equal(t, 280, best[1])
	assert.Equal(t, 200, best[2])
}

func TestComputeStanding(t *testing.T) {
	s := ComputeStanding(100, []int{90, 95, 110})
	assert.Equal(t, 3, s.Place)
	assert.Equal(t, 4, s.FieldSize)

	solo := ComputeStanding(100, nil)
	assert.Equal(t, 1, solo.Place)
	assert.Equal(t, 1, solo.FieldSize)
}

func TestBuildLegStats_LossAndPace(t *testing.T) {
	course := models.Course{
		Controls: []models.CourseControl{
			{Seq: 1, ControlCode: "31", LegLength: intp(1000)},
		},
	}
	splits := []models.RunSplit{
		{Seq: 1, ControlCode: "31", CumTime: intp(314), LegTime: intp(314)},
	}
	fieldBest := map[int]int{1: 280}

	stats := BuildLegStats(splits, course, fieldBest)
	require.Len(t, stats, 1)
	require.NotNil(t, stats[0].Loss)
	assert.Equal(t, 34, *stats[0].Loss)
	require.NotNil(t, stats[0].Pace)
	assert.Equal(t, 314, *stats[0].Pace) // 314s/1000m => 314 s/km
}
