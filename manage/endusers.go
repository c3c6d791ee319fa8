package manage

import (
	"context"
	"errors"

	"github.com/providerdesk/providerdesk/db"
	"go.uber.org/zap"
)

// EndUserService is a read-only view on the consumer accounts,
// the admin backend never mutates those
type EndUserService struct {
	store *db.DataStore
	log   *zap.Logger
}

func NewEndUserService(store *db.DataStore, log *zap.Logger) *EndUserService {
	return &EndUserService{store: store, log: log}
}

func (g *EndUserService) List(
	ctx context.Context,
	page int,
	pageSize int,
	search string,
	status string,
) (*PaginationResponse, error) {
	users, total, err := g.store.Users(ctx, db.ListOptions{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		Status:   status,
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]*EndUserDTO, 0, len(users))
	for _, v := range users {
		dtos = append(dtos, endUserDTOfromDB(v))
	}
	return &PaginationResponse{
		Total:   total,
		Entries: dtos,
	}, nil
}

func (g *EndUserService) ById(ctx context.Context, id int) (*EndUserDTO, error) {
	user, err := g.store.EndUser(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return endUserDTOfromDB(user), nil
}
