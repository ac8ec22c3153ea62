package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(required []string) []string { return required }

func TestAnalyze_PerfectRun(t *testing.T) {
	required := []string{"31", "45", "72", "100"}
	punches := []Punch{
		{Code: "31", Time: 120},
		{Code: "45", Time: 240},
		{Code: "72", Time: 300},
		{Code: "100", Time: 450},
	}

	res := Analyze(required, punches)

	require.True(t, res.AllVisited)
	require.True(t, res.OrderCorrect)
	require.Empty(t, res.Missing)
	require.Empty(t, res.Extra)

	require.Len(t, res.Visited, 4)
	wantTimes := []int{120, 240, 300, 450}
	for i, v := range res.Visited {
		require.NotNil(t, v.Time)
		assert.Equal(t, required[i], v.Code)
		assert.Equal(t, wantTimes[i], *v.Time)
	}
}

func TestAnalyze_IgnoredExtras(t *testing.T) {
	required := []string{"31", "45", "72", "100"}
	punches := []Punch{
		{Code: "31", Time: 110},
		{Code: "31", Time: 115},
		{Code: "45", Time: 200},
		{Code: "60", Time: 220},
		{Code: "45", Time: 230},
		{Code: "72", Time: 300},
		{Code: "100", Time: 400},
		{Code: "100", Time: 410},
	}

	res := Analyze(required, punches)

	require.True(t, res.AllVisited)
	wantTimes := []int{110, 200, 300, 400}
	for i, v := range res.Visited {
		require.NotNil(t, v.Time)
		assert.Equal(t, wantTimes[i], *v.Time)
	}

	wantExtra := []Punch{
		{Code: "31", Time: 115},
		{Code: "60", Time: 220},
		{Code: "45", Time: 230},
		{Code: "100", Time: 410},
	}
	assert.Equal(t, wantExtra, res.Extra)
}

func TestAnalyze_MissingControl(t *testing.T) {
	required := []string{"31", "45", "72", "100"}
	punches := []Punch{
		{Code: "31", Time: 100},
		{Code: "72", Time: 200},
		{Code: "100", Time: 300},
	}

	res := Analyze(required, punches)

	require.False(t, res.AllVisited)
	require.Equal(t, []string{"45"}, res.Missing)

	require.Nil(t, res.Visited[1].Time)
	assert.Equal(t, "45", res.Visited[1].Code)

	require.NotNil(t, res.Visited[0].Time)
	assert.Equal(t, 100, *res.Visited[0].Time)
	require.NotNil(t, res.Visited[2].Time)
	assert.Equal(t, 200, *res.Visited[2].Time)
	require.NotNil(t, res.Visited[3].Time)
	assert.Equal(t, 300, *res.Visited[3].Time)
}

func TestAnalyze_EmptyRequired(t *testing.T) {
	punches := []Punch{{Code: "31", Time: 10}, {Code: "45", Time: 20}}
	res := Analyze(nil, punches)

	assert.True(t, res.AllVisited)
	assert.True(t, res.OrderCorrect)
	assert.Empty(t, res.Visited)
	assert.Equal(t, punches, res.Extra)
}

func TestAnalyze_EmptyPunches(t *testing.T) {
	required := []string{"31", "45"}
	res := Analyze(required, nil)

	assert.False(t, res.AllVisited)
	assert.Equal(t, required, res.Missing)
	assert.Empty(t, res.Extra)
}

// Structural invariants that must hold for any input.
func TestAnalyze_StructuralInvariants(t *testing.T) {
	required := []string{"31", "45", "72", "100"}
	punches := []Punch{
		{Code: "31", Time: 100},
		{Code: "99", Time: 150},
		{Code: "45", Time: 200},
		{Code: "72", Time: 300},
	}

	res := Analyze(required, punches)

	assert.Len(t, res.Visited, len(required))
	assert.LessOrEqual(t, len(res.Matches), min(len(required), len(punches)))
	assert.Equal(t, len(res.Matches) == len(required), res.AllVisited)

	if res.OrderCorrect {
		for i := 1; i < len(res.Matches); i++ {
			assert.Greater(t, res.Matches[i].PunchIndex, res.Matches[i-1].PunchIndex)
		}
	}
}

// Analyzing the same input twice must yield an identical result.
func TestAnalyze_Idempotent(t *testing.T) {
	required := codes([]string{"31", "45", "72", "100"})
	punches := []Punch{
		{Code: "31", Time: 120},
		{Code: "45", Time: 240},
		{Code: "72", Time: 300},
	}

	first := Analyze(required, punches)
	second := Analyze(required, punches)

	assert.Equal(t, first, second)
}

func TestStripIgnored(t *testing.T) {
	required := []string{"31", "45", "72", "100"}
	ignore := map[string]bool{"45": true}

	got := StripIgnored(required, ignore)

	assert.Equal(t, []string{"31", "72", "100"}, got)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
