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

type PaymentItem struct {
	ID            string `dynamodbav:"id"`
	PolicyID      string `dynamodbav:"policy_id"`
	Method        string `dynamodbav:"method"`
	Last4         string `dynamodbav:"last4"`
	CardBrand     string `dynamodbav:"card_brand,omitempty"`
	AccountType   string `dynamodbav:"account_type,omitempty"`
	TransactionID string `dynamodbav:"transaction_id"`
	Amount        int64  `dynamodbav:"amount"`
	CreatedAt     string `dynamodbav:"created_at"`
}

func paymentItemFromCore(p core.Payment) PaymentItem {
	return PaymentItem{
		ID:            p.ID,
		PolicyID:      p.PolicyID,
		Method:        string(p.Method),
		Last4:         p.Last4,
		CardBrand:     p.CardBrand,
		AccountType:   p.AccountType,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func (i PaymentItem) ToCore() core.Payment {
	createdAt, _ := time.Parse(time.RFC3339, i.CreatedAt)
	return core.Payment{
		ID:            i.ID,
		PolicyID:      i.PolicyID,
		Method:        core.PaymentMethod(i.Method),
		Last4:         i.Last4,
		CardBrand:     i.CardBrand,
		AccountType:   i.AccountType,
		TransactionID: i.TransactionID,
		Amount:        i.Amount,
		CreatedAt:     createdAt,
	}
}

type PaymentRepo struct {
	client *dynamodb.Client
}

func NewPaymentRepo(client *dynamodb.Client) *PaymentRepo {
	return &PaymentRepo{client: client}
}

func (r *PaymentRepo) Create(ctx context.Context, p core.Payment) error {
	item := paymentItemFromCore(p)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("payments.marshal: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("payments.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TablePayments),
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
		return fmt.Errorf("payments.putItem: %w", err)
	}

	return nil
}

func (r *PaymentRepo) ListByPolicyID(ctx context.Context, policyID string) ([]core.Payment, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TablePayments),
		IndexName:              aws.String(GSIPaymentsPolicyID),
		KeyConditionExpression: aws.String("#policy_id = :policy_id"),
		ExpressionAttributeNames: map[string]string{
			"#policy_id": "policy_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":policy_id": &types.AttributeValueMemberS{Value: policyID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("payments.query: %w", err)
	}

	var items []PaymentItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("payments.unmarshal: %w", err)
	}

	payments := make([]core.Payment, len(items))
	for i, item := range items {
		payments[i] = item.ToCore()
	}
	return payments, nil
}
