package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outcomes an archived run can end with.
const (
	OutcomeSolved = "solved"
	OutcomeNoPath = "no_path"
)

// RunRecord is the BSON version of a finished simulation run for database
// storage: the inputs that reproduce the run plus its statistics. The maze
// layout itself is not stored; the seed regenerates it.
type RunRecord struct {
	ID         uuid.UUID `bson:"_id"`
	Owner      uuid.UUID `bson:"owner"`
	Width      int       `bson:"width"`
	Height     int       `bson:"height"`
	Seed       int64     `bson:"seed"`
	Outcome    string    `bson:"outcome"`
	PathLen    int       `bson:"pathLen"`
	Cost       int       `bson:"cost"`
	Explored   int       `bson:"explored"`
	Expanded   int       `bson:"expanded"`
	Ticks      int       `bson:"ticks"`
	FinishedAt time.Time `bson:"finishedAt"`
}

// ScoreEntry is one leaderboard row: the scored member and its score.
type ScoreEntry struct {
	Member string
	Score  float64
}
