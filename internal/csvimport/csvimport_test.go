package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"o-event/internal/models"
)

func TestReadCompetitors(t *testing.T) {
	input := `Reg,Group,SID,First name,Last name,Notes,Days,Money
SKP,M21,501001,Jan,Novak,,"1,2",350
,W21,501002,Eva,Mala,late entry,2,175.50
`
	competitors, err := ReadCompetitors(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, competitors, 2)

	first := competitors[0]
	assert.Equal(t, "SKP", first.Reg)
	assert.Equal(t, "M21", first.Group)
	assert.Equal(t, 501001, first.SID)
	assert.Equal(t, "Jan", first.FirstName)
	assert.Equal(t, "Novak", first.LastName)
	assert.Equal(t, models.DeclaredDays{1, 2}, first.DeclaredDays)
	assert.Equal(t, 350.0, first.DeclaredFee)

	second := competitors[1]
	assert.Empty(t, second.Reg)
	assert.Equal(t, "late entry", second.Notes)
	assert.Equal(t, models.DeclaredDays{2}, second.DeclaredDays)
	assert.Equal(t, 175.50, second.DeclaredFee)
}

func TestReadCompetitors_BadHeader(t *testing.T) {
	input := "Name,Group\nJan,M21\n"
	_, err := ReadCompetitors(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestReadCompetitors_MalformedRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"bad sid", "SKP,M21,abc,Jan,Novak,,1,0", "SID"},
		{"bad day", "SKP,M21,501001,Jan,Novak,,zero,0", "Days"},
		{"bad money", "SKP,M21,501001,Jan,Novak,,1,lots", "Money"},
	}
	header := "Reg,Group,SID,First name,Last name,Notes,Days,Money\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCompetitors(strings.NewReader(header + tt.row + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadClubs(t *testing.T) {
	input := `Reg,Club
SKP,SK Praga
TJS,TJ Sokol
`
	clubs, err := ReadClubs(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []models.Club{
		{Reg: "SKP", Name: "SK Praga"},
		{Reg: "TJS", Name: "TJ Sokol"},
	}, clubs)
}

func TestReadClubs_BadHeader(t *testing.T) {
	_, err := ReadClubs(strings.NewReader("Code,Name\nSKP,SK Praga\n"))
	require.Error(t, err)
}
