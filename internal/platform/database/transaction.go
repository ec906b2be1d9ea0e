package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	catalogpg "github.com/jinford/shoplist-api/internal/module/catalog/adapter/pg"
	catalogdomain "github.com/jinford/shoplist-api/internal/module/catalog/domain"
)

// TransactionProvider follows the pattern described in https://threedots.tech/post/database-transactions-in-go/
// It hides pgx transactions behind a callback that receives data-access adapters.
type TransactionProvider struct {
	pool *pgxpool.Pool
}

// NewTransactionProvider は新しいTransactionProviderを作成します
func NewTransactionProvider(pool *pgxpool.Pool) *TransactionProvider {
	return &TransactionProvider{pool: pool}
}

var _ catalogdomain.Transactor = (*TransactionProvider)(nil)

func newRepositories(tx pgx.Tx) catalogdomain.Repositories {
	return catalogdomain.Repositories{
		Sources:      catalogpg.NewSourceRepository(tx),
		Products:     catalogpg.NewProductRepository(tx),
		UserProducts: catalogpg.NewUserProductRepository(tx),
	}
}

// InTransaction opens a transaction, builds adapters, and passes them to fn.
func (p *TransactionProvider) InTransaction(ctx context.Context, fn func(r catalogdomain.Repositories) error) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx rollback failed: %v (original err: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
