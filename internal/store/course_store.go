// internal/store/course_store.go
// Stage, Control, Course and CourseControl data access — the read-mostly
// event-setup side of the model.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"o-event/internal/models"
)

// StageStore handles Stage data access.
type StageStore struct {
	db *sql.DB
}

// NewStageStore creates a new stage store.
func NewStageStore(db *sql.DB) *StageStore {
	return &StageStore{db: db}
}

// Create inserts a new stage.
func (s *StageStore) Create(ctx context.Context, stage *models.Stage) error {
	query := `INSERT INTO stages (id, day, name, start_time) VALUES (?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, stage.ID, stage.Day, stage.Name, stage.StartTime)
	return err
}

// GetByDay retrieves the stage for a given day number.
func (s *StageStore) GetByDay(ctx context.Context, day int) (*models.Stage, error) {
	query := `SELECT id, day, name, start_time FROM stages WHERE day = ?`
	var st models.Stage
	err := s.db.QueryRowContext(ctx, query, day).Scan(&st.ID, &st.Day, &st.Name, &st.StartTime)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("stage for day %d not found", day)
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// List returns every stage ordered by day.
func (s *StageStore) List(ctx context.Context) ([]models.Stage, error) {
	query := `SELECT id, day, name, start_time FROM stages ORDER BY day`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Stage
	for rows.Next() {
		var st models.Stage
		if err := rows.Scan(&st.ID, &st.Day, &st.Name, &st.StartTime); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// ControlStore handles Control data access.
type ControlStore struct {
	db *sql.DB
}

// NewControlStore creates a new control store.
func NewControlStore(db *sql.DB) *ControlStore {
	return &ControlStore{db: db}
}

// Create inserts a new control.
func (s *ControlStore) Create(ctx context.Context, c *models.Control) error {
	query := `
		INSERT INTO controls (id, stage_id, code, type, lng, lat, map_x, map_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, c.ID, c.StageID, c.Code, c.Type, c.Lng, c.Lat, c.MapX, c.MapY)
	return err
}

// ListByStage returns every control belonging to a stage.
func (s *ControlStore) ListByStage(ctx context.Context, stageID string) ([]models.Control, error) {
	query := `SELECT id, stage_id, code, type, lng, lat, map_x, map_y FROM controls WHERE stage_id = ?`
	rows, err := s.db.QueryContext(ctx, query, stageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Control
	for rows.Next() {
		var c models.Control
		if err := rows.Scan(&c.ID, &c.StageID, &c.Code, &c.Type, &c.Lng, &c.Lat, &c.MapX, &c.MapY); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CourseStore handles Course and CourseControl data access.
type CourseStore struct {
	db *sql.DB
}

// NewCourseStore creates a new course store.
func NewCourseStore(db *sql.DB) *CourseStore {
	return &CourseStore{db: db}
}

// Create inserts a new course and its ordered controls.
func (s *CourseStore) Create(ctx context.Context, course *models.Course) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO courses (id, stage_id, name, length, climb) VALUES (?, ?, ?, ?, ?)`,
		course.ID, course.StageID, course.Name, course.Length, course.Climb,
	)
	if err != nil {
		return err
	}

	for _, cc := range course.Controls {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO course_controls (id, course_id, seq, control_code, leg_length, type)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			cc.ID, course.ID, cc.Seq, cc.ControlCode, cc.LegLength, cc.Type,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByStageAndName resolves the course a competitor's group runs on a
// stage, including its ordered controls.
func (s *CourseStore) GetByStageAndName(ctx context.Context, stageID, name string) (*models.Course, error) {
	query := `SELECT id, stage_id, name, length, climb FROM courses WHERE stage_id = ? AND name = ?`
	var course models.Course
	err := s.db.QueryRowContext(ctx, query, stageID, name).Scan(
		&course.ID, &course.StageID, &course.Name, &course.Length, &course.Climb,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course %q not found on stage %s", name, stageID)
	}
	if err != nil {
		return nil, err
	}

	controls, err := s.controlsForCourse(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	course.Controls = controls
	return &course, nil
}

// ListByStage returns every course on a stage, each with its controls.
func (s *CourseStore) ListByStage(ctx context.Context, stageID string) ([]models.Course, error) {
	query := `SELECT id, stage_id, name, length, climb FROM courses WHERE stage_id = ?`
	rows, err := s.db.QueryContext(ctx, query, stageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.StageID, &c.Name, &c.Length, &c.Climb); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		controls, err := s.controlsForCourse(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Controls = controls
	}
	return out, nil
}

func (s *CourseStore) controlsForCourse(ctx context.Context, courseID string) ([]models.CourseControl, error) {
	query := `
		SELECT id, course_id, seq, control_code, leg_length, type
		FROM course_controls WHERE course_id = ? ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CourseControl
	for rows.Next() {
		var cc models.CourseControl
		if err := rows.Scan(&cc.ID, &cc.CourseID, &cc.Seq, &cc.ControlCode, &cc.LegLength, &cc.Type); err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}
