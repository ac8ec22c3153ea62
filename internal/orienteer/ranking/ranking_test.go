package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"o-event/internal/models"
)

func resultPtr(v int) *int { return &v }

func okRun(id string, day, result int) models.Run {
	return models.Run{CompetitorID: id, Day: day, Status: models.RunOK, Result: resultPtr(result)}
}

func TestRankSingleDay_DenseTies(t *testing.T) {
	runs := []models.Run{
		okRun("a", 1, 1000),
		okRun("b", 1, 1000),
		okRun("c", 1, 1100),
		okRun("d", 1, 1200),
	}

	placements := RankSingleDay(runs)
	require.Len(t, placements, 4)

	assert.Equal(t, 1, *placements[0].Position)
	assert.Equal(t, 1, *placements[1].Position) // tie shares position
	assert.Equal(t, 3, *placements[2].Position) // next distinct jumps to index+1
	assert.Equal(t, 4, *placements[3].Position)

	assert.Equal(t, 0, *placements[0].TimeBehind)
	assert.Equal(t, 100, *placements[2].TimeBehind)
}

func TestRankSingleDay_NonOKRunsUnplaced(t *testing.T) {
	runs := []models.Run{
		okRun("a", 1, 1000),
		{CompetitorID: "b", Day: 1, Status: models.RunMP},
	}

	placements := RankSingleDay(runs)
	require.Len(t, placements, 2)
	assert.NotNil(t, placements[0].Position)
	assert.Nil(t, placements[1].Position)
}

func TestRankSingleDay_NoOKRuns(t *testing.T) {
	runs := []models.Run{
		{CompetitorID: "a", Day: 1, Status: models.RunMP},
	}
	placements := RankSingleDay(runs)
	require.Len(t, placements, 1)
	assert.Nil(t, placements[0].Position)
}

func TestScoreForRun_WinnerScoresMax(t *testing.T) {
	winner := 1000
	run := okRun("a", 1, 1000)
	assert.Equal(t, 200, ScoreForRun(run, &winner))
}

func TestScoreForRun_NonOKScoresZero(t *testing.T) {
	run := models.Run{Status: models.RunMP}
	winner := 1000
	assert.Equal(t, 0, ScoreForRun(run, &winner))
}

func TestScoreForRun_NoWinnerScoresZero(t *testing.T) {
	run := okRun("a", 1, 1000)
	assert.Equal(t, 0, ScoreForRun(run, nil))
}

func TestRankMultiDay_TopThreeAndPlaces(t *testing.T) {
	competitorRuns := map[string][]models.Run{
		"alice": {okRun("alice", 1, 1000), okRun("alice", 2, 1050), okRun("alice", 3, 1100), okRun("alice", 4, 1200)},
		"bob":   {okRun("bob", 1, 1000), okRun("bob", 2, 1050), okRun("bob", 3, 1100), okRun("bob", 4, 1200)},
		"carol": {{CompetitorID: "carol", Day: 1, Status: models.RunMP}},
	}

	aggregates := RankMultiDay(4, competitorRuns)
	require.Len(t, aggregates, 3)

	// alice and bob are identical performers and must tie for 1st; carol,
	// with best_count 0, gets no place.
	byID := make(map[string]CompetitorAggregate, len(aggregates))
	for _, a := range aggregates {
		byID[a.CompetitorID] = a
	}

	require.NotNil(t, byID["alice"].Place)
	require.NotNil(t, byID["bob"].Place)
	assert.Equal(t, *byID["alice"].Place, *byID["bob"].Place)
	assert.Nil(t, byID["carol"].Place)
	assert.Equal(t, 3, byID["alice"].BestCount)
}

func TestDayWinner_NoOKRunsReturnsNil(t *testing.T) {
	runs := []models.Run{{Status: models.RunMP}}
	assert.Nil(t, DayWinner(runs))
}
