package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/2509-hackz-ichthyo/main/gridboard/internal/usecases"
)

// DynamoDBEventRepository は DynamoDB をバックエンドとする EventRepository の実装。
// テーブルはパーティションキー boardId (S)、ソートキー seq (N) を持つ前提。
type DynamoDBEventRepository struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

// NewDynamoDBEventRepository は DynamoDBEventRepository を生成する。
func NewDynamoDBEventRepository(client dynamodbiface.DynamoDBAPI, table string) *DynamoDBEventRepository {
	return &DynamoDBEventRepository{client: client, table: table}
}

type eventItem struct {
	BoardID   string `dynamodbav:"boardId"`
	Seq       int    `dynamodbav:"seq"`
	ID        string `dynamodbav:"id"`
	Kind      string `dynamodbav:"kind"`
	Row       int    `dynamodbav:"row"`
	Col       int    `dynamodbav:"col"`
	Element   string `dynamodbav:"element"`
	Payload   string `dynamodbav:"payload,omitempty"`
	CreatedAt string `dynamodbav:"createdAt"`
}

// Append はイベントを PutItem で書き込む。同じ (boardId, seq) がある場合は条件付き書き込みで失敗する。
func (r *DynamoDBEventRepository) Append(ctx context.Context, event usecases.BoardEvent) error {
	if r.client == nil {
		return errors.New("dynamodb event repository: client is nil")
	}

	item, err := dynamodbattribute.MarshalMap(eventItem{
		BoardID:   event.BoardID,
		Seq:       event.Seq,
		ID:        event.ID,
		Kind:      string(event.Kind),
		Row:       event.Row,
		Col:       event.Col,
		Element:   event.Element,
		Payload:   event.Payload,
		CreatedAt: event.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal board event: %w", err)
	}

	_, err = r.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(seq)"),
	})
	if err != nil {
		return fmt.Errorf("put board event: %w", err)
	}

	return nil
}

// ListByBoard は盤面のイベントを seq の昇順で取得する。limit が 0 以下なら全ページを読む。
func (r *DynamoDBEventRepository) ListByBoard(ctx context.Context, boardID string, limit int) ([]usecases.BoardEvent, error) {
	if r.client == nil {
		return nil, errors.New("dynamodb event repository: client is nil")
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("boardId = :boardId"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":boardId": {S: aws.String(boardID)},
		},
		ScanIndexForward: aws.Bool(true),
	}

	events := make([]usecases.BoardEvent, 0)
	for {
		if limit > 0 {
			input.Limit = aws.Int64(int64(limit - len(events)))
		}

		output, err := r.client.QueryWithContext(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("query board events: %w", err)
		}

		var items []eventItem
		if err := dynamodbattribute.UnmarshalListOfMaps(output.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal board events: %w", err)
		}

		for _, item := range items {
			event, err := item.toEvent()
			if err != nil {
				return nil, err
			}
			events = append(events, event)
		}

		if len(output.LastEvaluatedKey) == 0 || (limit > 0 && len(events) >= limit) {
			break
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}

	return events, nil
}

func (i eventItem) toEvent() (usecases.BoardEvent, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, i.CreatedAt)
	if err != nil {
		return usecases.BoardEvent{}, fmt.Errorf("parse createdAt of seq %d: %w", i.Seq, err)
	}

	return usecases.BoardEvent{
		ID:        i.ID,
		BoardID:   i.BoardID,
		Seq:       i.Seq,
		Kind:      usecases.EventKind(i.Kind),
		Row:       i.Row,
		Col:       i.Col,
		Element:   i.Element,
		Payload:   i.Payload,
		CreatedAt: createdAt.UTC(),
	}, nil
}
