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

type DocumentItem struct {
	ID              string `dynamodbav:"id"`
	PolicyID        string `dynamodbav:"policy_id"`
	PolicyReference string `dynamodbav:"policy_reference"`
	Type            string `dynamodbav:"type"`
	Name            string `dynamodbav:"name"`
	CreatedAt       string `dynamodbav:"created_at"`
}

func documentItemFromCore(d core.Document) DocumentItem {
	return DocumentItem{
		ID:              d.ID,
		PolicyID:        d.PolicyID,
		PolicyReference: d.PolicyReference,
		Type:            string(d.Type),
		Name:            d.Name,
		CreatedAt:       d.CreatedAt.Format(time.RFC3339),
	}
}

func (i DocumentItem) ToCore() core.Document {
	createdAt, _ := time.Parse(time.RFC3339, i.CreatedAt)
	return core.Document{
		ID:              i.ID,
		PolicyID:        i.PolicyID,
		PolicyReference: i.PolicyReference,
		Type:            core.DocumentType(i.Type),
		Name:            i.Name,
		CreatedAt:       createdAt,
	}
}

type DocumentRepo struct {
	client *dynamodb.Client
}

func NewDocumentRepo(client *dynamodb.Client) *DocumentRepo {
	return &DocumentRepo{client: client}
}

func (r *DocumentRepo) Create(ctx context.Context, d core.Document) error {
	item := documentItemFromCore(d)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("documents.marshal: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("documents.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TableDocuments),
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
		return fmt.Errorf("documents.putItem: %w", err)
	}

	return nil
}

func (r *DocumentRepo) ListByPolicyID(ctx context.Context, policyID string) ([]core.Document, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TableDocuments),
		IndexName:              aws.String(GSIDocumentsPolicyID),
		KeyConditionExpression: aws.String("#policy_id = :policy_id"),
		ExpressionAttributeNames: map[string]string{
			"#policy_id": "policy_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":policy_id": &types.AttributeValueMemberS{Value: policyID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("documents.query: %w", err)
	}

	var items []DocumentItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("documents.unmarshal: %w", err)
	}

	documents := make([]core.Document, len(items))
	for i, item := range items {
		documents[i] = item.ToCore()
	}
	return documents, nil
}
