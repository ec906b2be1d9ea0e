package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	// ListNameMaxLen はリスト名の最大長です
	ListNameMaxLen = 100

	// DefaultListName は最初に作られるリストの名前です
	DefaultListName = "Shopping List"
)

var (
	// ErrListNotFound はリストが存在しないか、操作者の所有物でないことを示します
	ErrListNotFound = errors.New("list not found")

	// ErrListItemNotFound はリストアイテムが存在しないか、操作者の所有物でないことを示します
	ErrListItemNotFound = errors.New("list item not found")

	// ErrInvalidListName はリスト名が制約を満たさないことを示します
	ErrInvalidListName = errors.New("invalid list name")
)

// List は買い物リストです。ユーザーは複数のリストを持てます。
type List struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	IsDefault bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Items はGetListで展開されるリスト内のアイテムです
	Items []*ListItem
}

// ListItem はリスト上の1行です。カタログのユーザー商品を参照し、
// 数量・メモ・完了状態はリスト側で持ちます。
type ListItem struct {
	ID            uuid.UUID
	ListID        uuid.UUID
	UserProductID uuid.UUID
	Quantity      int
	Notes         *string
	IsCompleted   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateListName はリスト名の制約を検証します
func ValidateListName(name string) error {
	if name == "" || len(name) > ListNameMaxLen {
		return ErrInvalidListName
	}
	return nil
}

// NewListItem は作成するリストアイテムの入力です
type NewListItem struct {
	ListID        uuid.UUID
	UserProductID uuid.UUID
	Quantity      int
	Notes         *string
}

// ListItemUpdate はリストアイテムの更新入力です。nilのフィールドは変更しません。
type ListItemUpdate struct {
	Quantity    *int
	Notes       *string
	IsCompleted *bool
}

// Repository はリストコレクションへの永続化操作です
type Repository interface {
	CreateList(ctx context.Context, userID uuid.UUID, name string, isDefault bool) (*List, error)

	// GetList はアイテムを展開してリストを取得します。見つからなければ (nil, nil)。
	GetList(ctx context.Context, id uuid.UUID) (*List, error)

	ListsByUser(ctx context.Context, userID uuid.UUID) ([]*List, error)

	UpdateList(ctx context.Context, id uuid.UUID, name string, isDefault bool) (*List, error)

	// DeleteList はリストと配下のアイテムを削除します
	DeleteList(ctx context.Context, id uuid.UUID) error

	// ClearDefault はユーザーの既存デフォルトリストの印を外します
	ClearDefault(ctx context.Context, userID uuid.UUID) error

	CreateItem(ctx context.Context, item NewListItem) (*ListItem, error)

	// GetItem はリストアイテムを取得します。見つからなければ (nil, nil)。
	GetItem(ctx context.Context, id uuid.UUID) (*ListItem, error)

	UpdateItem(ctx context.Context, id uuid.UUID, update ListItemUpdate) (*ListItem, error)

	DeleteItem(ctx context.Context, id uuid.UUID) error
}
