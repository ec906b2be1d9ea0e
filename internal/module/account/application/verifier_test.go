package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jinford/shoplist-api/internal/module/account/domain"
	catalogdomain "github.com/jinford/shoplist-api/internal/module/catalog/domain"
)

type fakeUserRepo struct {
	existing map[uuid.UUID]bool
	err      error
}

func (f *fakeUserRepo) Create(_ context.Context, _, _ string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.existing[id], nil
}

func TestVerifyUser(t *testing.T) {
	known := uuid.New()
	repo := &fakeUserRepo{existing: map[uuid.UUID]bool{known: true}}
	v := NewVerifier(repo)

	assert.NoError(t, v.VerifyUser(context.Background(), known))
	assert.ErrorIs(t, v.VerifyUser(context.Background(), uuid.New()), catalogdomain.ErrUserNotFound)
}

func TestVerifyUser_RepositoryError(t *testing.T) {
	repoErr := errors.New("connection refused")
	v := NewVerifier(&fakeUserRepo{err: repoErr})

	assert.ErrorIs(t, v.VerifyUser(context.Background(), uuid.New()), repoErr)
}
