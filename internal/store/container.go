// internal/store/container.go
// Store container for dependency injection.

package store

import (
	"context"
	"database/sql"

	"o-event/internal/database"
)

// Container holds every store instance used by the application.
type Container struct {
	Config     *ConfigStore
	Stage      *StageStore
	Control    *ControlStore
	Course     *CourseStore
	Competitor *CompetitorStore
	Club       *ClubStore
	Run        *RunStore
	Card       *CardStore
	Staff      *StaffStore
	db         *sql.DB
}

// NewContainer creates a new store container.
func NewContainer(conn *database.Connections) *Container {
	return &Container{
		Config:     NewConfigStore(conn.MySQL),
		Stage:      NewStageStore(conn.MySQL),
		Control:    NewControlStore(conn.MySQL),
		Course:     NewCourseStore(conn.MySQL),
		Competitor: NewCompetitorStore(conn.MySQL),
		Club:       NewClubStore(conn.MySQL),
		Run:        NewRunStore(conn.MySQL),
		Card:       NewCardStore(conn.MySQL),
		Staff:      NewStaffStore(conn.MySQL),
		db:         conn.MySQL,
	}
}

// BeginTx starts a new database transaction.
func (c *Container) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}
