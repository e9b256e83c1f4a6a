package repository

import (
	"context"

	"github.com/yakoovad/club-api/internal/query"
)

type Player struct {
	ClubID      int64  `db:"club_id" dynamodbav:"clubId"`
	PlayerName  string `db:"player_name" dynamodbav:"playerName"`
	Position    string `db:"position" dynamodbav:"position"`
	Nationality string `db:"nationality" dynamodbav:"nationality,omitempty"`
	Value       int64  `db:"value" dynamodbav:"value"`
	Age         int    `db:"age" dynamodbav:"age"`
	Appearances int    `db:"appearances" dynamodbav:"appearances"`
	Club        string `db:"club" dynamodbav:"club,omitempty"`
	League      string `db:"league" dynamodbav:"league,omitempty"`
}

type PlayerRepository interface {
	// Query returns the players selected by plan, ordered by the plan's sort
	// key (player name, or position for StrategyCategoryPrefix). An empty
	// result is not an error.
	Query(ctx context.Context, plan query.Plan) ([]*Player, error)
	// Put creates or replaces the player keyed by (ClubID, PlayerName).
	Put(ctx context.Context, player *Player) error
}
