package iof

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"o-event/internal/models"
	"o-event/internal/orienteer/ranking"
)

const sampleCourseData = `<?xml version="1.0" encoding="UTF-8"?>
<CourseData xmlns="http://www.orienteering.org/datastandard/3.0" iofVersion="3.0">
  <RaceCourseData>
    <Map>
      <Scale>10000</Scale>
      <TopLeftPosition lng="14.40" lat="50.10"/>
      <BottomRightPosition lng="14.45" lat="50.05"/>
    </Map>
    <Control>
      <Id>31</Id>
      <Position lng="14.41" lat="50.08"/>
      <MapPosition x="12.5" y="-33.1"/>
    </Control>
    <Control>
      <Id>45</Id>
      <Position lng="14.42" lat="50.07"/>
    </Control>
    <Course>
      <Name>M21</Name>
      <Length>5200</Length>
      <Climb>180</Climb>
      <CourseControl type="Start">
        <Control>S</Control>
      </CourseControl>
      <CourseControl>
        <Control>31</Control>
        <LegLength>420</LegLength>
      </CourseControl>
      <CourseControl>
        <Control>45</Control>
        <LegLength>610</LegLength>
      </CourseControl>
      <CourseControl type="Finish">
        <Control>F</Control>
      </CourseControl>
    </Course>
  </RaceCourseData>
</CourseData>`

func TestParseCourseData(t *testing.T) {
	parsed, err := ParseCourseData([]byte(sampleCourseData))
	require.NoError(t, err)

	assert.Equal(t, 10000.0, parsed.Map.Scale)
	assert.Equal(t, 14.40, parsed.Map.TopLeftLng)
	assert.Equal(t, 50.05, parsed.Map.BottomRightLat)

	require.Len(t, parsed.Controls, 2)
	c31 := parsed.Controls[0]
	assert.Equal(t, "31", c31.Code)
	require.NotNil(t, c31.Lng)
	assert.Equal(t, 14.41, *c31.Lng)
	require.NotNil(t, c31.MapX)
	assert.Equal(t, 12.5, *c31.MapX)
	assert.Nil(t, parsed.Controls[1].MapX)

	require.Len(t, parsed.Courses, 1)
	course := parsed.Courses[0]
	assert.Equal(t, "M21", course.Name)
	assert.Equal(t, 5200, course.Length)
	assert.Equal(t, 180, course.Climb)

	require.Len(t, course.Controls, 4)
	assert.Equal(t, models.CourseControlStart, course.Controls[0].Type)
	assert.Equal(t, "31", course.Controls[1].ControlCode)
	require.NotNil(t, course.Controls[1].LegLength)
	assert.Equal(t, 420, *course.Controls[1].LegLength)
	assert.Equal(t, 1, course.Controls[1].Seq)
	assert.Equal(t, models.CourseControlFinish, course.Controls[3].Type)
}

func TestParseCourseData_RejectsMalformed(t *testing.T) {
	_, err := ParseCourseData([]byte("<CourseData><unterminated"))
	require.Error(t, err)
}

func TestParseCourseData_RejectsNonPositiveLength(t *testing.T) {
	doc := strings.Replace(sampleCourseData, "<Length>5200</Length>", "<Length>0</Length>", 1)
	_, err := ParseCourseData([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive length")
}

// Importing CourseData and exporting a ResultList with no runs must still
// produce a structurally valid document with every course present.
func TestImportThenExport_EmptyStage(t *testing.T) {
	parsed, err := ParseCourseData([]byte(sampleCourseData))
	require.NoError(t, err)

	var classes []ClassExport
	for _, course := range parsed.Courses {
		classes = append(classes, ClassExport{
			Group:  course.Name,
			Course: course,
		})
	}

	doc, err := BuildResultList("Spring Cup", time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC), classes)
	require.NoError(t, err)

	out := string(doc)
	assert.Contains(t, out, `iofVersion="3.0"`)
	assert.Contains(t, out, `status="Complete"`)
	assert.Contains(t, out, "<Name>M21</Name>")
	assert.Contains(t, out, "<Length>5200</Length>")

	// Well-formed XML end to end.
	decoder := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
}

func TestBuildResultList_StatusesAndSplits(t *testing.T) {
	okResult := 1955
	mpResult := 2100
	start := 60386
	finish := 62341
	pos := 1
	behind := 0
	cum := 320

	course := models.Course{Name: "M21", Length: 5200, Climb: 180}

	okRun := models.Run{ID: "run-ok", CompetitorID: "c1", Status: models.RunOK, Result: &okResult, Start: &start, Finish: &finish}
	mpRun := models.Run{ID: "run-mp", CompetitorID: "c2", Status: models.RunMP, Result: &mpResult}

	classes := []ClassExport{{
		Group:  "M21",
		Course: course,
		Placements: []ranking.Placement{
			{Position: &pos, TimeBehind: &behind, Run: okRun},
			{Run: mpRun},
		},
		Competitors: map[string]models.Competitor{
			"c1": {ID: "c1", FirstName: "Jan", LastName: "Novak", SID: 501001, Reg: "SKP"},
			"c2": {ID: "c2", FirstName: "Petr", LastName: "Svoboda", SID: 501002},
		},
		Clubs: map[string]models.Club{
			"SKP": {Reg: "SKP", Name: "SK Praga"},
		},
		Splits: map[string][]models.RunSplit{
			"run-ok": {
				{Seq: 0, ControlCode: "31", CumTime: &cum, LegTime: &cum},
				{Seq: 1, ControlCode: "F", CumTime: &okResult},
			},
			"run-mp": {
				{Seq: 0, ControlCode: "31"},
				{Seq: 1, ControlCode: "F", CumTime: &mpResult},
			},
		},
	}}

	doc, err := BuildResultList("Spring Cup", time.Now(), classes)
	require.NoError(t, err)
	out := string(doc)

	assert.Contains(t, out, "<Status>OK</Status>")
	assert.Contains(t, out, "<Status>MissingPunch</Status>")
	assert.Contains(t, out, "<Position>1</Position>")
	assert.Contains(t, out, "<TimeBehind>0</TimeBehind>")
	assert.Contains(t, out, `status="Missing"`)
	assert.Contains(t, out, "<ShortName>SKP</ShortName>")
	assert.Contains(t, out, "<ControlCard>501001</ControlCard>")

	// The MP run must carry neither Position nor TimeBehind.
	mpPart := out[strings.Index(out, "Svoboda"):]
	assert.NotContains(t, mpPart, "<Position>")
	assert.NotContains(t, mpPart, "<TimeBehind>")

	// The trailing finish split is not exported as a SplitTime.
	assert.NotContains(t, out, "<ControlCode>F</ControlCode>")
}
