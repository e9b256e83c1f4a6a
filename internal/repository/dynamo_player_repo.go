package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"

	"github.com/yakoovad/club-api/internal/query"
)

type DynamoPlayerRepository struct {
	client        DynamoAPI
	table         string
	positionIndex string
}

func NewDynamoPlayerRepository(client DynamoAPI, table, positionIndex string) *DynamoPlayerRepository {
	return &DynamoPlayerRepository{client: client, table: table, positionIndex: positionIndex}
}

// queryInput maps a lookup plan onto a key condition. DynamoDB rejects an
// empty begins_with operand, so an empty prefix only keeps the ordering.
func (r *DynamoPlayerRepository) queryInput(plan query.Plan) *dynamodb.QueryInput {
	in := &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    aws.String("clubId = :clubId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":clubId": numberValue(plan.OwnerID)},
	}

	switch plan.Strategy {
	case query.StrategyCategoryPrefix:
		in.IndexName = aws.String(r.positionIndex)
		if plan.Prefix != "" {
			in.KeyConditionExpression = aws.String("clubId = :clubId AND begins_with(#pos, :prefix)")
			in.ExpressionAttributeNames = map[string]string{"#pos": "position"}
			in.ExpressionAttributeValues[":prefix"] = stringValue(plan.Prefix)
		}
	case query.StrategyNamePrefix:
		if plan.Prefix != "" {
			in.KeyConditionExpression = aws.String("clubId = :clubId AND begins_with(playerName, :prefix)")
			in.ExpressionAttributeValues[":prefix"] = stringValue(plan.Prefix)
		}
	}

	return in
}

func (r *DynamoPlayerRepository) Query(ctx context.Context, plan query.Plan) ([]*Player, error) {
	players := make([]*Player, 0)

	p := dynamodb.NewQueryPaginator(r.client, r.queryInput(plan))
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "query players of club %d", plan.OwnerID)
		}

		var batch []*Player
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, errors.Wrap(err, "unmarshal players")
		}
		players = append(players, batch...)
	}

	return players, nil
}

func (r *DynamoPlayerRepository) Put(ctx context.Context, player *Player) error {
	item, err := attributevalue.MarshalMap(player)
	if err != nil {
		return errors.Wrap(err, "marshal player")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	return errors.Wrapf(err, "put player %q of club %d", player.PlayerName, player.ClubID)
}
