// internal/iof/export.go
// IOF 3.0 ResultList export.

package iof

import (
	"encoding/xml"
	"time"

	"o-event/internal/models"
	"o-event/internal/orienteer/ranking"
)

// Result statuses defined by the IOF 3.0 schema.
const (
	StatusOK           = "OK"
	StatusMissingPunch = "MissingPunch"
	StatusDidNotStart  = "DidNotStart"
	StatusOverTime     = "OverTime"
)

type resultListXML struct {
	XMLName    xml.Name   `xml:"ResultList"`
	CreateTime string     `xml:"createTime,attr"`
	Creator    string     `xml:"creator,attr"`
	IOFVersion string     `xml:"iofVersion,attr"`
	Status     string     `xml:"status,attr"`
	Event      eventXML   `xml:"Event"`
	Classes    []classXML `xml:"ClassResult"`
}

type eventXML struct {
	Name string `xml:"Name"`
}

type classXML struct {
	Class struct {
		Name string `xml:"Name"`
	} `xml:"Class"`
	Course  exportCourseXML   `xml:"Course"`
	Persons []personResultXML `xml:"PersonResult"`
}

type exportCourseXML struct {
	Length int `xml:"Length"`
	Climb  int `xml:"Climb"`
}

type personResultXML struct {
	Person struct {
		ID   string `xml:"Id"`
		Name struct {
			Family string `xml:"Family"`
			Given  string `xml:"Given"`
		} `xml:"Name"`
	} `xml:"Person"`
	Organisation *organisationXML `xml:"Organisation,omitempty"`
	Result       resultXML        `xml:"Result"`
}

type organisationXML struct {
	Name      string `xml:"Name"`
	ShortName string `xml:"ShortName"`
}

type resultXML struct {
	StartTime   string         `xml:"StartTime,omitempty"`
	FinishTime  string         `xml:"FinishTime,omitempty"`
	Time        *int           `xml:"Time,omitempty"`
	TimeBehind  *int           `xml:"TimeBehind,omitempty"`
	Position    *int           `xml:"Position,omitempty"`
	Status      string         `xml:"Status"`
	SplitTimes  []splitTimeXML `xml:"SplitTime"`
	ControlCard int            `xml:"ControlCard,omitempty"`
}

type splitTimeXML struct {
	Status      string `xml:"status,attr,omitempty"`
	ControlCode string `xml:"ControlCode"`
	Time        *int   `xml:"Time,omitempty"`
}

// ClassExport bundles one group's course and ranked runs for the export.
type ClassExport struct {
	Group       string
	Course      models.Course
	Placements  []ranking.Placement
	Competitors map[string]models.Competitor // keyed by competitor ID
	Clubs       map[string]models.Club       // keyed by registration code
	Splits      map[string][]models.RunSplit // keyed by run ID
}

// BuildResultList marshals a complete IOF 3.0 ResultList document for the
// given classes. DNS runs are included with DidNotStart; non-OK runs omit
// Position and TimeBehind.
func BuildResultList(eventName string, createdAt time.Time, classes []ClassExport) ([]byte, error) {
	doc := resultListXML{
		CreateTime: createdAt.Format(time.RFC3339),
		Creator:    "o-event",
		IOFVersion: "3.0",
		Status:     "Complete",
		Event:      eventXML{Name: eventName},
	}

	for _, class := range classes {
		cx := classXML{
			Course: exportCourseXML{Length: class.Course.Length, Climb: class.Course.Climb},
		}
		cx.Class.Name = class.Group

		for _, p := range class.Placements {
			competitor, ok := class.Competitors[p.Run.CompetitorID]
			if !ok {
				continue
			}

			var px personResultXML
			px.Person.ID = competitor.ID
			px.Person.Name.Family = competitor.LastName
			px.Person.Name.Given = competitor.FirstName

			if club, ok := class.Clubs[competitor.Reg]; ok {
				px.Organisation = &organisationXML{Name: club.Name, ShortName: club.Reg}
			}

			px.Result = buildResult(p, competitor, class.Splits[p.Run.ID])
			cx.Persons = append(cx.Persons, px)
		}

		doc.Classes = append(doc.Classes, cx)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func buildResult(p ranking.Placement, competitor models.Competitor, splits []models.RunSplit) resultXML {
	r := resultXML{
		Status:      exportStatus(p.Run.Status),
		ControlCard: competitor.SID,
	}

	if p.Run.Start != nil {
		r.StartTime = daySecondsRFC3339(*p.Run.Start)
	}
	if p.Run.Finish != nil {
		r.FinishTime = daySecondsRFC3339(*p.Run.Finish)
	}
	if p.Run.Result != nil {
		r.Time = p.Run.Result
	}

	// Position and TimeBehind only appear on placed (OK) runs.
	if p.Run.Status == models.RunOK {
		r.Position = p.Position
		r.TimeBehind = p.TimeBehind
	}

	for _, sp := range splits {
		if sp.ControlCode == models.FinishSplitCode {
			continue
		}
		st := splitTimeXML{ControlCode: sp.ControlCode, Time: sp.CumTime}
		if sp.CumTime == nil {
			st.Status = "Missing"
		}
		r.SplitTimes = append(r.SplitTimes, st)
	}

	return r
}

func exportStatus(status models.RunStatus) string {
	switch status {
	case models.RunOK:
		return StatusOK
	case models.RunMP:
		return StatusMissingPunch
	case models.RunDNS:
		return StatusDidNotStart
	case models.RunOVT:
		return StatusOverTime
	}
	return string(status)
}

// daySecondsRFC3339 renders a seconds-within-day value as a wall-clock
// time-of-day string. The export carries no date component beyond the
// document's createTime, so a fixed zero date is used.
func daySecondsRFC3339(daySeconds int) string {
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(daySeconds) * time.Second).Format("15:04:05")
}
