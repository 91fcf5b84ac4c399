package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/MrKriegler/go-autoquote/internal/core"
)

type EventItem struct {
	ID             string `dynamodbav:"id"`
	PolicyID       string `dynamodbav:"policy_id"`
	PreviousStatus string `dynamodbav:"previous_status"`
	NewStatus      string `dynamodbav:"new_status"`
	Reason         string `dynamodbav:"reason"`
	CreatedAt      string `dynamodbav:"created_at"`
}

func eventItemFromCore(e core.Event) EventItem {
	return EventItem{
		ID:             e.ID,
		PolicyID:       e.PolicyID,
		PreviousStatus: string(e.PreviousStatus),
		NewStatus:      string(e.NewStatus),
		Reason:         e.Reason,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
}

func (i EventItem) ToCore() core.Event {
	createdAt, _ := time.Parse(time.RFC3339, i.CreatedAt)
	return core.Event{
		ID:             i.ID,
		PolicyID:       i.PolicyID,
		PreviousStatus: core.PolicyStatus(i.PreviousStatus),
		NewStatus:      core.PolicyStatus(i.NewStatus),
		Reason:         i.Reason,
		CreatedAt:      createdAt,
	}
}

type EventRepo struct {
	client *dynamodb.Client
}

func NewEventRepo(client *dynamodb.Client) *EventRepo {
	return &EventRepo{client: client}
}

// Append inserts a new log entry. Events are never updated or deleted.
func (r *EventRepo) Append(ctx context.Context, e core.Event) error {
	item := eventItemFromCore(e)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("events.marshal: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("events.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TableEvents),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrConflict
		}
		return fmt.Errorf("events.putItem: %w", err)
	}

	return nil
}

func (r *EventRepo) ListByPolicyID(ctx context.Context, policyID string) ([]core.Event, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TableEvents),
		IndexName:              aws.String(GSIEventsPolicyID),
		KeyConditionExpression: aws.String("#policy_id = :policy_id"),
		ExpressionAttributeNames: map[string]string{
			"#policy_id": "policy_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":policy_id": &types.AttributeValueMemberS{Value: policyID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("events.query: %w", err)
	}

	var items []EventItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("events.unmarshal: %w", err)
	}

	events := make([]core.Event, len(items))
	for i, item := range items {
		events[i] = item.ToCore()
	}
	return events, nil
}
