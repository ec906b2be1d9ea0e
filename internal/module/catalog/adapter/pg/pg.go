package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX は接続プールとトランザクションの両方が満たすクエリ実行インタフェースです
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// uniqueViolationCode はPostgreSQLの一意制約違反
const uniqueViolationCode = "23505"

// isUniqueViolation は一意制約違反か判定します。
// 同一バーコード・同一ソース名の同時作成競合の検出に使います。
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
