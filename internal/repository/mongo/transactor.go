package mongo

import (
	"alcyxob/fitness-market/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

type transactor struct {
	client  *mongo.Client
	enabled bool
}

// NewTransactor returns a repository.Transactor. When enabled is false the
// callback runs without a transaction, so a failing second write leaves the
// first one in place.
func NewTransactor(client *mongo.Client, enabled bool) repository.Transactor {
	return &transactor{client: client, enabled: enabled}
}

func (t *transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled || t.client == nil {
		return fn(ctx)
	}
	session, err := t.client.StartSession()
	if err != nil {
		return translateError(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return translateError(err)
}
