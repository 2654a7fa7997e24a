package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/internal/timestamp"
)

const transactionsCollection = "transactions"

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) collection() *firestore.CollectionRef {
	return s.client.Collection(transactionsCollection)
}

// Add writes a new transaction with a native createdAt.
func (s *transactionStore) Add(ctx context.Context, tx *models.Transaction, createdAt time.Time) error {
	_, err := s.collection().Doc(tx.TransactionID).Create(ctx, map[string]any{
		"userId":        tx.UserID,
		"type":          string(tx.Type),
		"category":      tx.Category,
		"amount":        tx.Amount,
		"description":   tx.Description,
		"paymentMethod": tx.PaymentMethod,
		"createdAt":     createdAt,
	})
	if err != nil {
		return errs.NewDatabaseError("create", "failed to add transaction", err)
	}
	return nil
}

// Query streams the user's transactions to handle. Documents are read as raw maps so createdAt
// keeps whatever encoding it was written with. Iteration stops at the first error from handle.
func (s *transactionStore) Query(ctx context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error {
	query := s.collection().Where("userId", "==", uid)
	if q.Type != nil {
		query = query.Where("type", "==", string(*q.Type))
	}
	if q.Category != nil {
		query = query.Where("category", "==", *q.Category)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errs.NewDatabaseError("read", "failed to query transactions", err)
		}
		tx := decodeTransaction(doc.Ref.ID, doc.Data())
		if err := handle(&tx); err != nil {
			return err
		}
	}
}

func decodeTransaction(id string, data map[string]any) models.Transaction {
	tx := models.Transaction{
		TransactionID: id,
		CreatedAt:     timestamp.FromValue(data["createdAt"]),
	}
	tx.UserID, _ = data["userId"].(string)
	tx.Category, _ = data["category"].(string)
	tx.Description, _ = data["description"].(string)
	tx.PaymentMethod, _ = data["paymentMethod"].(string)
	if t, ok := data["type"].(string); ok {
		tx.Type = models.TransactionType(t)
	}
	switch amount := data["amount"].(type) {
	case float64:
		tx.Amount = amount
	case int64:
		tx.Amount = float64(amount)
	}
	return tx
}
