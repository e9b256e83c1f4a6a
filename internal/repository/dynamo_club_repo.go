package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
)

type DynamoClubRepository struct {
	client DynamoAPI
	table  string
}

func NewDynamoClubRepository(client DynamoAPI, table string) *DynamoClubRepository {
	return &DynamoClubRepository{client: client, table: table}
}

func (r *DynamoClubRepository) Get(ctx context.Context, id int64) (*Club, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            clubKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get club %d", id)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var club Club
	if err := attributevalue.UnmarshalMap(out.Item, &club); err != nil {
		return nil, errors.Wrap(err, "unmarshal club")
	}
	return &club, nil
}

func (r *DynamoClubRepository) List(ctx context.Context) ([]*Club, error) {
	clubs := make([]*Club, 0)

	p := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{TableName: aws.String(r.table)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "scan clubs")
		}

		var batch []*Club
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, errors.Wrap(err, "unmarshal clubs")
		}
		clubs = append(clubs, batch...)
	}

	sort.Slice(clubs, func(i, j int) bool { return clubs[i].ID < clubs[j].ID })
	return clubs, nil
}

func (r *DynamoClubRepository) Put(ctx context.Context, club *Club) error {
	item, err := attributevalue.MarshalMap(club)
	if err != nil {
		return errors.Wrap(err, "marshal club")
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	return errors.Wrapf(err, "put club %d", club.ID)
}

func (r *DynamoClubRepository) Update(ctx context.Context, patch *ClubPatch) (*Club, error) {
	sets := []string{"#version = if_not_exists(#version, :zero) + :one"}
	names := map[string]string{"#version": "version"}
	values := map[string]types.AttributeValue{
		":zero": numberValue(0),
		":one":  numberValue(1),
	}

	if patch.Name != nil {
		sets = append(sets, "#name = :name")
		names["#name"] = "name"
		values[":name"] = stringValue(*patch.Name)
	}
	if patch.City != nil {
		sets = append(sets, "#city = :city")
		names["#city"] = "city"
		values[":city"] = stringValue(*patch.City)
	}
	if patch.YearFounded != nil {
		sets = append(sets, "#year = :year")
		names["#year"] = "year_founded"
		values[":year"] = &types.AttributeValueMemberN{Value: strconv.Itoa(*patch.YearFounded)}
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       clubKey(patch.ID),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if _, ok := conditionFailed(err); ok {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "update club %d", patch.ID)
	}

	var club Club
	if err := attributevalue.UnmarshalMap(out.Attributes, &club); err != nil {
		return nil, errors.Wrap(err, "unmarshal club")
	}
	return &club, nil
}

// UpdateTranslations writes the whole cache map guarded by the version
// attribute. Items written before versioning existed have no version and are
// treated as version 0.
func (r *DynamoClubRepository) UpdateTranslations(ctx context.Context, id int64, cache map[string]Translation, expectedVersion int64) error {
	tc, err := attributevalue.Marshal(cache)
	if err != nil {
		return errors.Wrap(err, "marshal translation cache")
	}

	cond := "attribute_exists(id) AND #version = :expected"
	if expectedVersion == 0 {
		cond = "attribute_exists(id) AND (attribute_not_exists(#version) OR #version = :expected)"
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.table),
		Key:                 clubKey(id),
		UpdateExpression:    aws.String("SET translationCache = :tc, #version = :next"),
		ConditionExpression: aws.String(cond),
		ExpressionAttributeNames: map[string]string{
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tc":       tc,
			":expected": numberValue(expectedVersion),
			":next":     numberValue(expectedVersion + 1),
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if ccf, ok := conditionFailed(err); ok {
			if ccf.Item == nil {
				return ErrNotFound
			}
			return ErrVersionConflict
		}
		return errors.Wrapf(err, "update translations of club %d", id)
	}
	return nil
}

func (r *DynamoClubRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.table),
		Key:                 clubKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if _, ok := conditionFailed(err); ok {
			return ErrNotFound
		}
		return errors.Wrapf(err, "delete club %d", id)
	}
	return nil
}
