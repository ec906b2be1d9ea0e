package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	catalogdomain "github.com/jinford/shoplist-api/internal/module/catalog/domain"
	"github.com/jinford/shoplist-api/internal/module/list/domain"
	"github.com/jinford/shoplist-api/internal/platform/logger"
)

// ProductResolver はバーコードをユーザー商品へ解決する能力です
type ProductResolver interface {
	ResolveUserProduct(ctx context.Context, userID uuid.UUID, barcode string) (*catalogdomain.UserProduct, error)
}

// Service は買い物リストの操作を担うサービスです。
// すべての操作は操作者の所有リストに限定されます。他人のリストや
// アイテムはIDを知っていても見つからなかったものとして扱います。
type Service struct {
	lists    domain.Repository
	resolver ProductResolver
	logger   *slog.Logger
}

// NewService は新しいリストサービスを作成します
func NewService(lists domain.Repository, resolver ProductResolver, log *slog.Logger) *Service {
	return &Service{
		lists:    lists,
		resolver: resolver,
		logger:   logger.Component(log, "list_service"),
	}
}

// CreateList は新しいリストを作成します。isDefaultが真なら既存のデフォルト印を外します。
func (s *Service) CreateList(ctx context.Context, userID uuid.UUID, name string, isDefault bool) (*domain.List, error) {
	if userID == uuid.Nil {
		return nil, catalogdomain.ErrNotAuthenticated
	}
	if name == "" {
		name = domain.DefaultListName
	}
	if err := domain.ValidateListName(name); err != nil {
		return nil, err
	}

	if isDefault {
		if err := s.lists.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}
	return s.lists.CreateList(ctx, userID, name, isDefault)
}

// MyLists は操作者のリストを返します
func (s *Service) MyLists(ctx context.Context, userID uuid.UUID) ([]*domain.List, error) {
	if userID == uuid.Nil {
		return nil, catalogdomain.ErrNotAuthenticated
	}
	return s.lists.ListsByUser(ctx, userID)
}

// GetList はアイテムを展開してリストを返します
func (s *Service) GetList(ctx context.Context, userID, listID uuid.UUID) (*domain.List, error) {
	return s.ownedList(ctx, userID, listID)
}

// UpdateList はリストの名前とデフォルト印を更新します
func (s *Service) UpdateList(ctx context.Context, userID, listID uuid.UUID, name string, isDefault bool) (*domain.List, error) {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return nil, err
	}
	if err := domain.ValidateListName(name); err != nil {
		return nil, err
	}

	if isDefault {
		if err := s.lists.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}
	return s.lists.UpdateList(ctx, listID, name, isDefault)
}

// DeleteList はリストと配下のアイテムを削除します
func (s *Service) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return err
	}
	return s.lists.DeleteList(ctx, listID)
}

// AddItem はバーコードをユーザー商品に解決してリストへ追加します。
// 未知のバーコードでも解決側がプレースホルダー商品を用意するため、
// 追加自体は失敗しません。
func (s *Service) AddItem(ctx context.Context, userID, listID uuid.UUID, barcode string, quantity int, notes *string) (*domain.ListItem, error) {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		quantity = 1
	}
	if quantity > catalogdomain.UserProductQuantityMax {
		return nil, fmt.Errorf("quantity %d exceeds the maximum of %d", quantity, catalogdomain.UserProductQuantityMax)
	}

	userProduct, err := s.resolver.ResolveUserProduct(ctx, userID, barcode)
	if err != nil {
		return nil, err
	}

	return s.lists.CreateItem(ctx, domain.NewListItem{
		ListID:        listID,
		UserProductID: userProduct.ID,
		Quantity:      quantity,
		Notes:         notes,
	})
}

// UpdateItem はリストアイテムの数量・メモ・完了状態を更新します
func (s *Service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, update domain.ListItemUpdate) (*domain.ListItem, error) {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if update.Quantity != nil {
		if *update.Quantity <= 0 || *update.Quantity > catalogdomain.UserProductQuantityMax {
			return nil, fmt.Errorf("quantity %d is out of range", *update.Quantity)
		}
	}
	return s.lists.UpdateItem(ctx, itemID, update)
}

// RemoveItem はリストからアイテムを削除します
func (s *Service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}
	return s.lists.DeleteItem(ctx, itemID)
}

// ownedList は操作者が所有するリストを取得します。
// 存在しない場合も他人の所有物の場合もErrListNotFoundを返します。
func (s *Service) ownedList(ctx context.Context, userID, listID uuid.UUID) (*domain.List, error) {
	if userID == uuid.Nil {
		return nil, catalogdomain.ErrNotAuthenticated
	}
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil || list.UserID != userID {
		return nil, domain.ErrListNotFound
	}
	return list, nil
}

func (s *Service) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.ListItem, error) {
	if userID == uuid.Nil {
		return nil, catalogdomain.ErrNotAuthenticated
	}
	item, err := s.lists.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrListItemNotFound
	}
	if _, err := s.ownedList(ctx, userID, item.ListID); err != nil {
		return nil, domain.ErrListItemNotFound
	}
	return item, nil
}
