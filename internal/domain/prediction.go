package domain

import "time"

// PredictionRun records one scoring pass of one position's model over the
// latest eligible week.
type PredictionRun struct {
	RunUUID   string
	CreatedAt time.Time
	Position  Position
	Season    int
	Week      int
	DataDir   string
	ModelDir  string
	MetaJSON  string
}

// Prediction is one player's forecast within a run: predicted average fantasy
// points over the next four weeks, and the delta against the player's
// trailing five-week form.
type Prediction struct {
	RunUUID  string
	Team     string
	Position Position
	FullName string
	GsisID   string
	Season   int
	Week     int

	YearsExp          *float64
	YearsExpFilled    *float64
	DraftNumber       *float64
	DraftNumberFilled *float64
	IsRookie          *float64
	IsSecondYear      *float64
	IsUndrafted       *float64
	FantasyPrev5WkAvg *float64

	PredNext4 float64
	Delta     *float64
}
