// internal/iof/import.go
// IOF 3.0 CourseData import: controls, courses and map geometry for one stage.

package iof

import (
	"encoding/xml"
	"fmt"

	"o-event/internal/models"
)

// courseDataXML mirrors the subset of the IOF 3.0 CourseData document the
// importer consumes.
type courseDataXML struct {
	XMLName  xml.Name `xml:"CourseData"`
	RaceData struct {
		Map struct {
			Scale                   float64 `xml:"Scale"`
			TopLeftPosition         positionXML `xml:"TopLeftPosition"`
			BottomRightPosition     positionXML `xml:"BottomRightPosition"`
		} `xml:"Map"`
		Controls []controlXML `xml:"Control"`
		Courses  []courseXML  `xml:"Course"`
	} `xml:"RaceCourseData"`
}

type positionXML struct {
	Lng float64 `xml:"lng,attr"`
	Lat float64 `xml:"lat,attr"`
}

type mapPositionXML struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
}

type controlXML struct {
	ID          string         `xml:"Id"`
	Position    *positionXML   `xml:"Position"`
	MapPosition *mapPositionXML `xml:"MapPosition"`
}

type courseXML struct {
	Name           string             `xml:"Name"`
	Length         int                `xml:"Length"`
	Climb          int                `xml:"Climb"`
	CourseControls []courseControlXML `xml:"CourseControl"`
}

type courseControlXML struct {
	Type      string `xml:"type,attr"`
	Control   string `xml:"Control"`
	LegLength *int   `xml:"LegLength"`
}

// MapInfo is the stage map geometry carried by the document.
type MapInfo struct {
	Scale          float64
	TopLeftLng     float64
	TopLeftLat     float64
	BottomRightLng float64
	BottomRightLat float64
}

// StageImport is the parsed content of one CourseData document, ready to
// persist against a stage.
type StageImport struct {
	Map      MapInfo
	Controls []models.Control
	Courses  []models.Course
}

// ParseCourseData decodes an IOF 3.0 CourseData document into controls and
// courses. Stage and course IDs are left empty; the caller stamps them in
// when persisting.
func ParseCourseData(data []byte) (*StageImport, error) {
	var doc courseDataXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed CourseData document: %w", err)
	}

	out := &StageImport{
		Map: MapInfo{
			Scale:          doc.RaceData.Map.Scale,
			TopLeftLng:     doc.RaceData.Map.TopLeftPosition.Lng,
			TopLeftLat:     doc.RaceData.Map.TopLeftPosition.Lat,
			BottomRightLng: doc.RaceData.Map.BottomRightPosition.Lng,
			BottomRightLat: doc.RaceData.Map.BottomRightPosition.Lat,
		},
	}

	for _, c := range doc.RaceData.Controls {
		control := models.Control{Code: c.ID}
		if c.Position != nil {
			lng, lat := c.Position.Lng, c.Position.Lat
			control.Lng = &lng
			control.Lat = &lat
		}
		if c.MapPosition != nil {
			x, y := c.MapPosition.X, c.MapPosition.Y
			control.MapX = &x
			control.MapY = &y
		}
		out.Controls = append(out.Controls, control)
	}

	for _, c := range doc.RaceData.Courses {
		if c.Length <= 0 {
			return nil, fmt.Errorf("course %q has non-positive length %d", c.Name, c.Length)
		}
		course := models.Course{
			Name:   c.Name,
			Length: c.Length,
			Climb:  c.Climb,
		}
		for seq, cc := range c.CourseControls {
			course.Controls = append(course.Controls, models.CourseControl{
				Seq:         seq,
				ControlCode: cc.Control,
				LegLength:   cc.LegLength,
				Type:        courseControlType(cc.Type, seq, len(c.CourseControls)),
			})
		}
		out.Courses = append(out.Courses, course)
	}

	return out, nil
}

func courseControlType(attr string, seq, total int) models.CourseControlType {
	switch attr {
	case "Start":
		return models.CourseControlStart
	case "Finish":
		return models.CourseControlFinish
	}
	// Some planners omit the type attribute; fall back on position.
	if seq == 0 {
		return models.CourseControlStart
	}
	if seq == total-1 {
		return models.CourseControlFinish
	}
	return models.CourseControlNormal
}
