package repository

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
)

// DynamoAPI is the part of *dynamodb.Client the repositories use.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type Tables struct {
	Clubs         string
	Players       string
	PositionIndex string
}

// DynamoStore groups the club and player repositories over one client.
type DynamoStore struct {
	client DynamoAPI
	tables Tables
}

func NewDynamoStore(client DynamoAPI, tables Tables) *DynamoStore {
	return &DynamoStore{client: client, tables: tables}
}

func (s *DynamoStore) Clubs() ClubRepository {
	return NewDynamoClubRepository(s.client, s.tables.Clubs)
}

func (s *DynamoStore) Players() PlayerRepository {
	return NewDynamoPlayerRepository(s.client, s.tables.Players, s.tables.PositionIndex)
}

// Ping checks that both tables are reachable.
func (s *DynamoStore) Ping(ctx context.Context) error {
	for _, table := range []string{s.tables.Clubs, s.tables.Players} {
		t := table
		if _, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &t}); err != nil {
			return errors.Wrapf(err, "describe table %s", table)
		}
	}
	return nil
}

func numberValue(n int64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}

func stringValue(s string) *types.AttributeValueMemberS {
	return &types.AttributeValueMemberS{Value: s}
}

func clubKey(id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": numberValue(id)}
}

func conditionFailed(err error) (*types.ConditionalCheckFailedException, bool) {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return ccf, true
	}
	return nil, false
}
