package manage

import (
	"context"
	"errors"
	"strings"

	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/events"
	"github.com/providerdesk/providerdesk/events/event"
	"go.uber.org/zap"
)

func NewClinicService(store *db.DataStore,
	log *zap.Logger,
	cfg *config.Configuration,
	dispatcher *events.Dispatcher) *ClinicService {
	return &ClinicService{
		store:      store,
		log:        log,
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

type ClinicService struct {
	store      *db.DataStore
	log        *zap.Logger
	cfg        *config.Configuration
	dispatcher *events.Dispatcher
}

func (g *ClinicService) List(
	ctx context.Context,
	page int,
	pageSize int,
	search string,
	status string,
) (*PaginationResponse, error) {
	clinics, total, err := g.store.Clinics(ctx, db.ListOptions{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		Status:   status,
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]*ClinicDTO, 0, len(clinics))
	for _, v := range clinics {
		dtos = append(dtos, clinicDTOfromDB(v))
	}
	return &PaginationResponse{
		Total:   total,
		Entries: dtos,
	}, nil
}

func (g *ClinicService) ById(ctx context.Context, id int) (*ClinicDTO, error) {
	clinic, err := g.store.Clinic(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return clinicDTOfromDB(clinic), nil
}

func (g *ClinicService) Create(
	ctx context.Context,
	name string,
	address string,
	phone *string,
	email *string,
) (*ClinicDTO, error) {
	name = strings.TrimSpace(name)
	id, err := g.store.InsertClinic(ctx, name, address, phone, email, "active")
	if err != nil {
		if errors.Is(db.ErrAlreadyExists, err) {
			return nil, ErrEntityAlreadyExists
		}
		return nil, err
	}
	g.dispatcher.Dispatch(ctx, &event.ClinicCreated{
		ClinicID:   id,
		ClinicName: name,
	})
	return g.ById(ctx, id)
}

// Update applies a partial update, only the supplied fields are touched
func (g *ClinicService) Update(
	ctx context.Context,
	id int,
	name *string,
	address *string,
	phone *string,
	email *string,
	status *string,
) (*ClinicDTO, error) {
	columns := map[string]interface{}{}
	if name != nil {
		columns["name"] = strings.TrimSpace(*name)
	}
	if address != nil {
		columns["address"] = *address
	}
	if phone != nil {
		columns["phone"] = *phone
	}
	if email != nil {
		columns["email"] = *email
	}
	if status != nil {
		columns["status"] = *status
	}
	err := g.store.UpdateClinic(ctx, id, columns)
	if err != nil {
		switch {
		case errors.Is(db.ErrNoUpdates, err):
			return nil, ErrNoChanges
		case errors.Is(db.ErrNotFound, err):
			return nil, ErrNotFound
		}
		return nil, err
	}
	props := make([]string, 0, len(columns))
	for k := range columns {
		props = append(props, k)
	}
	g.dispatcher.Dispatch(ctx, &event.ClinicUpdated{
		ClinicID: id,
		Property: strings.Join(props, ","),
	})
	return g.ById(ctx, id)
}

func (g *ClinicService) Delete(ctx context.Context, id int) error {
	err := g.store.DeleteClinic(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return ErrNotFound
		}
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.ClinicDeleted{ClinicID: id})
	return nil
}
