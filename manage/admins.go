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

//this contains everything an administrator does TO accounts and directory
//entities - the account.service part is what an account holder can trigger
//and use himself proactivly

var (
	ErrEntityAlreadyExists     = errors.New("entity already exists in system")
	ErrEntityInvalidTransition = errors.New("entity does not support transition")
	ErrPasswordGuidelines      = errors.New("password doesnt match password guidlines")
	ErrNotFound                = errors.New("entity not found")
	ErrNoChanges               = errors.New("nothing to update")
	ErrLastActiveSuperAdmin    = errors.New("refusing to remove the last active super admin")
	ErrTransitionDenied        = errors.New("actor is not allowed to perform this transition")
)

func NewAdminUserService(store *db.DataStore,
	log *zap.Logger,
	cfg *config.Configuration,
	mailer *mailing.Mailer,
	dispatcher *events.Dispatcher) *AdminUserService {
	return &AdminUserService{
		store:      store,
		log:        log,
		cfg:        cfg,
		mailer:     mailer,
		dispatcher: dispatcher,
	}
}

type AdminUserService struct {
	store      *db.DataStore
	log        *zap.Logger
	cfg        *config.Configuration
	mailer     *mailing.Mailer
	dispatcher *events.Dispatcher
}

func (g *AdminUserService) List(
	ctx context.Context,
	page int,
	pageSize int,
	search string,
	status string,
	role string,
) (*PaginationResponse, error) {
	admins, total, err := g.store.AdminUsers(ctx, db.ListOptions{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		Status:   status,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]*AdminUserDTO, 0, len(admins))
	for _, v := range admins {
		dtos = append(dtos, adminUserDTOfromDB(v))
	}
	return &PaginationResponse{
		Total:   total,
		Entries: dtos,
	}, nil
}

func (g *AdminUserService) ById(ctx context.Context, id int) (*AdminUserDTO, error) {
	admin, err := g.store.AdminUser(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return adminUserDTOfromDB(admin), nil
}

// Create registers a new admin user account, the password has to satisfy
// the self-service minimum length
func (g *AdminUserService) Create(
	ctx context.Context,
	email string,
	password string,
	fullName string,
	role string,
	phone *string,
	department *string,
	createdBy *string,
) (*AdminUserDTO, error) {
	if len(password) < g.cfg.Security.SelfServiceMinLength {
		return nil, ErrPasswordGuidelines
	}
	if role == "" {
		role = "admin"
	}
	hash, err := account.HashPassword(password)
	if err != nil {
		return nil, err
	}
	// the address is stored exactly as supplied, sign in matches it verbatim
	id, err := g.store.InsertAdminUser(
		ctx,
		email,
		hash,
		fullName,
		role,
		"active",
		phone,
		department,
		createdBy,
	)
	if err != nil {
		if errors.Is(db.ErrAlreadyExists, err) {
			return nil, ErrEntityAlreadyExists
		}
		return nil, err
	}
	by := ""
	if createdBy != nil {
		by = *createdBy
	}
	g.dispatcher.Dispatch(ctx, &event.AccountCreated{
		AccountID:   id,
		AccountKind: string(db.KindAdminUser),
		Email:       email,
		CreatedBy:   by,
	})
	if g.mailer != nil {
		loginLink := fmt.Sprintf("%s/admin/login", g.cfg.Security.FrontendURL)
		err = g.mailer.SendAccountCreatedEmail(email, fullName, loginLink)
		if err != nil {
			g.log.Warn("could not send account created email", zap.Error(err))
		}
	}
	return g.ById(ctx, id)
}

// Update applies a partial update, only the supplied fields are touched
func (g *AdminUserService) Update(
	ctx context.Context,
	id int,
	email *string,
	fullName *string,
	role *string,
	status *string,
	phone *string,
	department *string,
) (*AdminUserDTO, error) {
	columns := map[string]interface{}{}
	if email != nil {
		columns["email"] = *email
	}
	if fullName != nil {
		columns["full_name"] = *fullName
	}
	if role != nil {
		columns["role"] = *role
	}
	if status != nil {
		columns["status"] = *status
	}
	if phone != nil {
		columns["phone"] = *phone
	}
	if department != nil {
		columns["department"] = *department
	}
	err := g.store.UpdateAdminUser(ctx, id, columns)
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
		AccountKind: string(db.KindAdminUser),
		Property:    strings.Join(props, ","),
	})
	return g.ById(ctx, id)
}

func (g *AdminUserService) Delete(ctx context.Context, id int) error {
	admin, err := g.store.AdminUser(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return ErrNotFound
		}
		return err
	}
	err = g.store.DeleteAdminUser(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return ErrNotFound
		}
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.AccountDeleted{
		AccountID:   id,
		AccountKind: string(db.KindAdminUser),
		Email:       admin.Email,
	})
	return nil
}

// Unlock clears the failure counter and lock timestamp so the
// account may sign in again before the lockout runs out
func (g *AdminUserService) Unlock(ctx context.Context, id int) error {
	_, err := g.store.AdminUser(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return ErrNotFound
		}
		return err
	}
	// unlocking an account that is not locked is a no-op
	if _, err := g.store.UnlockAccount(ctx, db.KindAdminUser, id); err != nil {
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.AccountUnlocked{
		AccountID:   id,
		AccountKind: string(db.KindAdminUser),
	})
	return nil
}
