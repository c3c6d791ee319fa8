package manage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/providerdesk/providerdesk/account"
	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/events"
	"github.com/providerdesk/providerdesk/events/event"
	"github.com/providerdesk/providerdesk/mailing"
	"go.uber.org/zap"
)

func NewSuperAdminService(store *db.DataStore,
	log *zap.Logger,
	cfg *config.Configuration,
	mailer *mailing.Mailer,
	dispatcher *events.Dispatcher) *SuperAdminService {
	return &SuperAdminService{
		store:      store,
		log:        log,
		cfg:        cfg,
		mailer:     mailer,
		dispatcher: dispatcher,
	}
}

type SuperAdminService struct {
	store      *db.DataStore
	log        *zap.Logger
	cfg        *config.Configuration
	mailer     *mailing.Mailer
	dispatcher *events.Dispatcher
}

func (g *SuperAdminService) List(
	ctx context.Context,
	page int,
	pageSize int,
	search string,
	status string,
) (*PaginationResponse, error) {
	admins, total, err := g.store.SuperAdmins(ctx, db.ListOptions{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		Status:   status,
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]*SuperAdminDTO, 0, len(admins))
	for _, v := range admins {
		dtos = append(dtos, superAdminDTOfromDB(v))
	}
	return &PaginationResponse{
		Total:   total,
		Entries: dtos,
	}, nil
}

func (g *SuperAdminService) ById(ctx context.Context, id int) (*SuperAdminDTO, error) {
	admin, err := g.store.SuperAdmin(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return superAdminDTOfromDB(admin), nil
}

func (g *SuperAdminService) Create(
	ctx context.Context,
	email string,
	password string,
	fullName string,
	phone *string,
	createdBy string,
) (*SuperAdminDTO, error) {
	if len(password) < g.cfg.Security.SelfServiceMinLength {
		return nil, ErrPasswordGuidelines
	}
	hash, err := account.HashPassword(password)
	if err != nil {
		return nil, err
	}
	// the address is stored exactly as supplied, sign in matches it verbatim
	id, err := g.store.InsertSuperAdmin(ctx, email, hash, fullName, "active", phone)
	if err != nil {
		if errors.Is(db.ErrAlreadyExists, err) {
			return nil, ErrEntityAlreadyExists
		}
		return nil, err
	}
	g.dispatcher.Dispatch(ctx, &event.AccountCreated{
		AccountID:   id,
		AccountKind: string(db.KindSuperAdmin),
		Email:       email,
		CreatedBy:   createdBy,
	})
	if g.mailer != nil {
		loginLink := fmt.Sprintf("%s/super-admin/login", g.cfg.Security.FrontendURL)
		err = g.mailer.SendAccountCreatedEmail(email, fullName, loginLink)
		if err != nil {
			g.log.Warn("could not send account created email", zap.Error(err))
		}
	}
	return g.ById(ctx, id)
}

// Update applies a partial update, only the supplied fields are touched
func (g *SuperAdminService) Update(
	ctx context.Context,
	id int,
	email *string,
	fullName *string,
	status *string,
	phone *string,
) (*SuperAdminDTO, error) {
	columns := map[string]interface{}{}
	if email != nil {
		columns["email"] = *email
	}
	if fullName != nil {
		columns["full_name"] = *fullName
	}
	if status != nil {
		columns["status"] = *status
	}
	if phone != nil {
		columns["phone"] = *phone
	}
	err := g.store.UpdateSuperAdmin(ctx, id, columns)
	if err != nil {
		switch {
		case errors.Is(db.ErrNoUpdates, err):
			return nil, ErrNoChanges
		case errors.Is(db.ErrAlreadyExists, err):
			return nil, ErrEntityAlreadyExists
		case errors.Is(db.ErrNotFound, err):
			return nil, ErrNotFound
		}
		return nil, err
	}
	props := make([]string, 0, len(columns))
	for k := range columns {
		props = append(props, k)
	}
	g.dispatcher.Dispatch(ctx, &event.AccountUpdated{
		AccountID:   id,
		AccountKind: string(db.KindSuperAdmin),
		Property:    strings.Join(props, ","),
	})
	return g.ById(ctx, id)
}

// Delete removes a super admin, the store refuses to remove the
// last remaining active one
func (g *SuperAdminService) Delete(ctx context.Context, id int) error {
	admin, err := g.store.SuperAdmin(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return ErrNotFound
		}
		return err
	}
	err = g.store.DeleteSuperAdmin(ctx, id)
	if err != nil {
		switch {
		case errors.Is(db.ErrLastActiveSuperAdmin, err):
			return ErrLastActiveSuperAdmin
		case errors.Is(db.ErrNotFound, err):
			return ErrNotFound
		}
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.AccountDeleted{
		AccountID:   id,
		AccountKind: string(db.KindSuperAdmin),
		Email:       admin.Email,
	})
	return nil
}

func (g *SuperAdminService) Unlock(ctx context.Context, id int) error {
	_, err := g.store.SuperAdmin(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return ErrNotFound
		}
		return err
	}
	// unlocking an account that is not locked is a no-op
	if _, err := g.store.UnlockAccount(ctx, db.KindSuperAdmin, id); err != nil {
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.AccountUnlocked{
		AccountID:   id,
		AccountKind: string(db.KindSuperAdmin),
	})
	return nil
}
