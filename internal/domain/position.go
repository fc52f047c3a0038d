package domain

import "fmt"

// Position is a fantasy-relevant offensive position.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// AllPositions lists the positions the pipeline builds feature tables for.
var AllPositions = []Position{PositionQB, PositionRB, PositionWR, PositionTE}

// ParsePosition validates a position string.
func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return Position(s), nil
	}
	return "", fmt.Errorf("unknown position: %q", s)
}
