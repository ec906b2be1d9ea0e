package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/jinford/shoplist-api/internal/module/catalog/domain"
	"github.com/jinford/shoplist-api/internal/module/list/domain"
)

type fakeListRepo struct {
	lists map[uuid.UUID]*domain.List
	items map[uuid.UUID]*domain.ListItem
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{
		lists: make(map[uuid.UUID]*domain.List),
		items: make(map[uuid.UUID]*domain.ListItem),
	}
}

func (f *fakeListRepo) CreateList(_ context.Context, userID uuid.UUID, name string, isDefault bool) (*domain.List, error) {
	list := &domain.List{ID: uuid.New(), UserID: userID, Name: name, IsDefault: isDefault}
	f.lists[list.ID] = list
	return list, nil
}

func (f *fakeListRepo) GetList(_ context.Context, id uuid.UUID) (*domain.List, error) {
	list, ok := f.lists[id]
	if !ok {
		return nil, nil
	}
	copied := *list
	for _, item := range f.items {
		if item.ListID == id {
			copied.Items = append(copied.Items, item)
		}
	}
	return &copied, nil
}

func (f *fakeListRepo) ListsByUser(_ context.Context, userID uuid.UUID) ([]*domain.List, error) {
	var lists []*domain.List
	for _, list := range f.lists {
		if list.UserID == userID {
			lists = append(lists, list)
		}
	}
	return lists, nil
}

func (f *fakeListRepo) UpdateList(_ context.Context, id uuid.UUID, name string, isDefault bool) (*domain.List, error) {
	list := f.lists[id]
	list.Name = name
	list.IsDefault = isDefault
	return list, nil
}

func (f *fakeListRepo) DeleteList(_ context.Context, id uuid.UUID) error {
	delete(f.lists, id)
	for itemID, item := range f.items {
		if item.ListID == id {
			delete(f.items, itemID)
		}
	}
	return nil
}

func (f *fakeListRepo) ClearDefault(_ context.Context, userID uuid.UUID) error {
	for _, list := range f.lists {
		if list.UserID == userID {
			list.IsDefault = false
		}
	}
	return nil
}

func (f *fakeListRepo) CreateItem(_ context.Context, item domain.NewListItem) (*domain.ListItem, error) {
	created := &domain.ListItem{
		ID:            uuid.New(),
		ListID:        item.ListID,
		UserProductID: item.UserProductID,
		Quantity:      item.Quantity,
		Notes:         item.Notes,
	}
	f.items[created.ID] = created
	return created, nil
}

func (f *fakeListRepo) GetItem(_ context.Context, id uuid.UUID) (*domain.ListItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (f *fakeListRepo) UpdateItem(_ context.Context, id uuid.UUID, update domain.ListItemUpdate) (*domain.ListItem, error) {
	item := f.items[id]
	if update.Quantity != nil {
		item.Quantity = *update.Quantity
	}
	if update.Notes != nil {
		item.Notes = update.Notes
	}
	if update.IsCompleted != nil {
		item.IsCompleted = *update.IsCompleted
	}
	return item, nil
}

func (f *fakeListRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

type fakeResolver struct {
	calls int
}

func (f *fakeResolver) ResolveUserProduct(_ context.Context, userID uuid.UUID, barcode string) (*catalogdomain.UserProduct, error) {
	f.calls++
	return &catalogdomain.UserProduct{
		ID:     uuid.New(),
		UserID: userID,
		Product: &catalogdomain.Product{
			ID:       uuid.New(),
			Name:     "Resolved Product",
			Barcodes: []string{barcode},
		},
	}, nil
}

func TestCreateList(t *testing.T) {
	repo := newFakeListRepo()
	svc := NewService(repo, &fakeResolver{}, nil)
	userID := uuid.New()

	t.Run("名前を指定して作成", func(t *testing.T) {
		list, err := svc.CreateList(context.Background(), userID, "Weekend BBQ", false)
		require.NoError(t, err)
		assert.Equal(t, "Weekend BBQ", list.Name)
		assert.False(t, list.IsDefault)
	})

	t.Run("名前が空ならデフォルト名", func(t *testing.T) {
		list, err := svc.CreateList(context.Background(), userID, "", false)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultListName, list.Name)
	})

	t.Run("デフォルト指定で既存の印が外れる", func(t *testing.T) {
		first, err := svc.CreateList(context.Background(), userID, "First", true)
		require.NoError(t, err)

		second, err := svc.CreateList(context.Background(), userID, "Second", true)
		require.NoError(t, err)

		assert.False(t, repo.lists[first.ID].IsDefault)
		assert.True(t, repo.lists[second.ID].IsDefault)
	})

	t.Run("未認証", func(t *testing.T) {
		_, err := svc.CreateList(context.Background(), uuid.Nil, "X", false)
		assert.ErrorIs(t, err, catalogdomain.ErrNotAuthenticated)
	})
}

func TestListOwnership(t *testing.T) {
	repo := newFakeListRepo()
	svc := NewService(repo, &fakeResolver{}, nil)
	owner := uuid.New()
	stranger := uuid.New()

	list, err := svc.CreateList(context.Background(), owner, "Groceries", false)
	require.NoError(t, err)

	t.Run("所有者は取得できる", func(t *testing.T) {
		got, err := svc.GetList(context.Background(), owner, list.ID)
		require.NoError(t, err)
		assert.Equal(t, list.ID, got.ID)
	})

	t.Run("他人のリストは見つからない扱い", func(t *testing.T) {
		_, err := svc.GetList(context.Background(), stranger, list.ID)
		assert.ErrorIs(t, err, domain.ErrListNotFound)
	})

	t.Run("他人は更新も削除もできない", func(t *testing.T) {
		_, err := svc.UpdateList(context.Background(), stranger, list.ID, "Hacked", false)
		assert.ErrorIs(t, err, domain.ErrListNotFound)

		err = svc.DeleteList(context.Background(), stranger, list.ID)
		assert.ErrorIs(t, err, domain.ErrListNotFound)
		assert.Contains(t, repo.lists, list.ID)
	})
}

func TestAddItem(t *testing.T) {
	repo := newFakeListRepo()
	resolver := &fakeResolver{}
	svc := NewService(repo, resolver, nil)
	userID := uuid.New()

	list, err := svc.CreateList(context.Background(), userID, "Groceries", false)
	require.NoError(t, err)

	t.Run("バーコードを解決してアイテムを追加", func(t *testing.T) {
		item, err := svc.AddItem(context.Background(), userID, list.ID, "037000962571", 2, nil)
		require.NoError(t, err)

		assert.Equal(t, list.ID, item.ListID)
		assert.Equal(t, 2, item.Quantity)
		assert.Equal(t, 1, resolver.calls)
	})

	t.Run("数量0は1に補正される", func(t *testing.T) {
		item, err := svc.AddItem(context.Background(), userID, list.ID, "074780343184", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)
	})

	t.Run("数量の上限超過は拒否", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), userID, list.ID, "074780343184", catalogdomain.UserProductQuantityMax+1, nil)
		assert.Error(t, err)
	})

	t.Run("他人のリストには追加できない", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), uuid.New(), list.ID, "037000962571", 1, nil)
		assert.ErrorIs(t, err, domain.ErrListNotFound)
	})
}

func TestUpdateAndRemoveItem(t *testing.T) {
	repo := newFakeListRepo()
	svc := NewService(repo, &fakeResolver{}, nil)
	userID := uuid.New()

	list, err := svc.CreateList(context.Background(), userID, "Groceries", false)
	require.NoError(t, err)
	item, err := svc.AddItem(context.Background(), userID, list.ID, "037000962571", 1, nil)
	require.NoError(t, err)

	t.Run("完了状態と数量の更新", func(t *testing.T) {
		quantity := 3
		completed := true
		updated, err := svc.UpdateItem(context.Background(), userID, item.ID, domain.ListItemUpdate{
			Quantity:    &quantity,
			IsCompleted: &completed,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Quantity)
		assert.True(t, updated.IsCompleted)
	})

	t.Run("他人はアイテムを更新できない", func(t *testing.T) {
		completed := true
		_, err := svc.UpdateItem(context.Background(), uuid.New(), item.ID, domain.ListItemUpdate{IsCompleted: &completed})
		assert.ErrorIs(t, err, domain.ErrListItemNotFound)
	})

	t.Run("削除", func(t *testing.T) {
		err := svc.RemoveItem(context.Background(), userID, item.ID)
		require.NoError(t, err)
		assert.NotContains(t, repo.items, item.ID)
	})

	t.Run("存在しないアイテム", func(t *testing.T) {
		err := svc.RemoveItem(context.Background(), userID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrListItemNotFound)
	})
}
