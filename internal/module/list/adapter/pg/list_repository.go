package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jinford/shoplist-api/internal/module/list/domain"
)

// DBTX は接続プールとトランザクションの両方が満たすクエリ実行インタフェースです
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ListRepository はリストコレクションの永続化アダプターです
type ListRepository struct {
	db DBTX
}

// NewListRepository は新しいリストリポジトリを作成します
func NewListRepository(db DBTX) *ListRepository {
	return &ListRepository{db: db}
}

var _ domain.Repository = (*ListRepository)(nil)

const (
	listColumns     = `id, user_id, name, is_default, created_at, updated_at`
	listItemColumns = `id, list_id, user_product_id, quantity, notes, is_completed, created_at, updated_at`
)

// CreateList は新しいリストを作成します
func (r *ListRepository) CreateList(ctx context.Context, userID uuid.UUID, name string, isDefault bool) (*domain.List, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO lists (user_id, name, is_default) VALUES ($1, $2, $3) RETURNING `+listColumns,
		userID, name, isDefault,
	)

	list, err := scanList(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return list, nil
}

// GetList はアイテムを展開してリストを取得します。見つからなければ (nil, nil)。
func (r *ListRepository) GetList(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	row := r.db.QueryRow(ctx, `SELECT `+listColumns+` FROM lists WHERE id = $1`, id)

	list, err := scanList(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	items, err := r.itemsByList(ctx, id)
	if err != nil {
		return nil, err
	}
	list.Items = items
	return list, nil
}

// ListsByUser はユーザーのリストを作成順で返します
func (r *ListRepository) ListsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.List, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+listColumns+` FROM lists WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	var lists []*domain.List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

// UpdateList はリストの名前とデフォルト印を更新します
func (r *ListRepository) UpdateList(ctx context.Context, id uuid.UUID, name string, isDefault bool) (*domain.List, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE lists SET name = $2, is_default = $3, updated_at = now() WHERE id = $1 RETURNING `+listColumns,
		id, name, isDefault,
	)

	list, err := scanList(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update list: %w", err)
	}
	return list, nil
}

// DeleteList はリストを削除します。配下のアイテムは外部キーで連鎖削除されます。
func (r *ListRepository) DeleteList(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

// ClearDefault はユーザーの既存デフォルトリストの印を外します
func (r *ListRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE lists SET is_default = false, updated_at = now() WHERE user_id = $1 AND is_default`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear default list: %w", err)
	}
	return nil
}

// CreateItem はリストにアイテムを追加します
func (r *ListRepository) CreateItem(ctx context.Context, item domain.NewListItem) (*domain.ListItem, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO list_items (list_id, user_product_id, quantity, notes)
		 VALUES ($1, $2, $3, $4) RETURNING `+listItemColumns,
		item.ListID, item.UserProductID, item.Quantity, item.Notes,
	)

	created, err := scanListItem(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create list item: %w", err)
	}
	return created, nil
}

// GetItem はリストアイテムを取得します。見つからなければ (nil, nil)。
func (r *ListRepository) GetItem(ctx context.Context, id uuid.UUID) (*domain.ListItem, error) {
	row := r.db.QueryRow(ctx, `SELECT `+listItemColumns+` FROM list_items WHERE id = $1`, id)

	item, err := scanListItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get list item: %w", err)
	}
	return item, nil
}

// UpdateItem はリストアイテムを更新します。nilのフィールドは現状維持です。
func (r *ListRepository) UpdateItem(ctx context.Context, id uuid.UUID, update domain.ListItemUpdate) (*domain.ListItem, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE list_items SET
			quantity     = COALESCE($2, quantity),
			notes        = COALESCE($3, notes),
			is_completed = COALESCE($4, is_completed),
			updated_at   = now()
		 WHERE id = $1 RETURNING `+listItemColumns,
		id, update.Quantity, update.Notes, update.IsCompleted,
	)

	item, err := scanListItem(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update list item: %w", err)
	}
	return item, nil
}

// DeleteItem はリストアイテムを削除します
func (r *ListRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM list_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete list item: %w", err)
	}
	return nil
}

func (r *ListRepository) itemsByList(ctx context.Context, listID uuid.UUID) ([]*domain.ListItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+listItemColumns+` FROM list_items WHERE list_id = $1 ORDER BY created_at`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*domain.ListItem
	for rows.Next() {
		item, err := scanListItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanList(row pgx.Row) (*domain.List, error) {
	var l domain.List
	if err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.IsDefault, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func scanListItem(row pgx.Row) (*domain.ListItem, error) {
	var i domain.ListItem
	if err := row.Scan(&i.ID, &i.ListID, &i.UserProductID, &i.Quantity, &i.Notes, &i.IsCompleted, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}
