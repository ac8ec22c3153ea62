package cardproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"o-event/internal/models"
)

func sprintCourse() models.Course {
	return models.Course{
		Name:   "Sprint",
		Length: 3200,
		Controls: []models.CourseControl{
			{Seq: 0, ControlCode: "S", Type: models.CourseControlStart},
			{Seq: 1, ControlCode: "31"},
			{Seq: 2, ControlCode: "45"},
			{Seq: 3, ControlCode: "F", Type: models.CourseControlFinish},
		},
	}
}

func TestProcess_OKRun(t *testing.T) {
	course := sprintCourse()
	in := Input{
		Punches: []RawPunch{
			{Code: 31, Time: 60700},
			{Code: 45, Time: 61200},
		},
		StartTime:  60386,
		FinishTime: 62341,
		Course:     course,
	}

	out := Process(in)

	require.Equal(t, models.RunOK, out.Status)
	assert.Equal(t, 1955, out.Result)

	require.Len(t, out.Splits, 3) // 31, 45, F
	assert.Equal(t, "31", out.Splits[0].ControlCode)
	assert.Equal(t, "45", out.Splits[1].ControlCode)
	assert.Equal(t, models.FinishSplitCode, out.Splits[2].ControlCode)

	require.NotNil(t, out.Splits[2].CumTime)
	assert.Equal(t, 1955, *out.Splits[2].CumTime)
}

func TestProcess_MissingPunch(t *testing.T) {
	course := sprintCourse()
	in := Input{
		Punches: []RawPunch{
			{Code: 31, Time: 60700},
		},
		StartTime:  60386,
		FinishTime: 62341,
		Course:     course,
	}

	out := Process(in)

	require.Equal(t, models.RunMP, out.Status)
	require.Len(t, out.Splits, 3)
	assert.Nil(t, out.Splits[1].CumTime) // 45 never punched
}

func TestProcess_StripsIgnoredAndNonNumericCodes(t *testing.T) {
	course := sprintCourse()
	got := RequiredCodes(course, map[string]bool{"45": true})
	assert.Equal(t, []string{"31"}, got)
}

func TestProcess_Idempotent(t *testing.T) {
	course := sprintCourse()
	in := Input{
		Punches: []RawPunch{
			{Code: 31, Time: 60700},
			{Code: 45, Time: 61200},
		},
		StartTime:  60386,
		FinishTime: 62341,
		Course:     course,
	}

	first := Process(in)
	second := Process(in)

	assert.Equal(t, first, second)
}
