package manage

import (
	"context"
	"errors"

	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/events"
	"github.com/providerdesk/providerdesk/events/event"
	"github.com/providerdesk/providerdesk/sanitize"
	"go.uber.org/zap"
)

// application statuses a doctor moves through, resigned is terminal
const (
	DoctorStatusNew       = "new"
	DoctorStatusInProcess = "in-process"
	DoctorStatusPending   = "pending"
	DoctorStatusApproved  = "approved"
	DoctorStatusRejected  = "rejected"
	DoctorStatusResigned  = "resigned"
)

var doctorStatuses = map[string]bool{
	DoctorStatusNew:       true,
	DoctorStatusInProcess: true,
	DoctorStatusPending:   true,
	DoctorStatusApproved:  true,
	DoctorStatusRejected:  true,
	DoctorStatusResigned:  true,
}

// ValidDoctorStatus reports whether the supplied value is a known
// application status
func ValidDoctorStatus(status string) bool {
	return doctorStatuses[status]
}

func NewDoctorService(store *db.DataStore,
	log *zap.Logger,
	cfg *config.Configuration,
	dispatcher *events.Dispatcher) *DoctorService {
	return &DoctorService{
		store:      store,
		log:        log,
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

type DoctorService struct {
	store      *db.DataStore
	log        *zap.Logger
	cfg        *config.Configuration
	dispatcher *events.Dispatcher
}

func (g *DoctorService) List(
	ctx context.Context,
	page int,
	pageSize int,
	search string,
	status string,
) (*PaginationResponse, error) {
	doctors, total, err := g.store.Doctors(ctx, db.ListOptions{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		Status:   status,
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]*DoctorDTO, 0, len(doctors))
	for _, v := range doctors {
		dtos = append(dtos, doctorDTOfromDB(v))
	}
	return &PaginationResponse{
		Total:   total,
		Entries: dtos,
	}, nil
}

// ByStatus lists all applications currently in the given status
func (g *DoctorService) ByStatus(
	ctx context.Context,
	status string,
	page int,
	pageSize int,
) (*PaginationResponse, error) {
	if !ValidDoctorStatus(status) {
		return nil, ErrEntityInvalidTransition
	}
	return g.List(ctx, page, pageSize, "", status)
}

// ApprovedList is the directory-facing listing, only approved doctors
func (g *DoctorService) ApprovedList(
	ctx context.Context,
	page int,
	pageSize int,
	search string,
) (*PaginationResponse, error) {
	return g.List(ctx, page, pageSize, search, DoctorStatusApproved)
}

func (g *DoctorService) ById(ctx context.Context, id int) (*DoctorDTO, error) {
	doctor, err := g.store.Doctor(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doctorDTOfromDB(doctor), nil
}

func (g *DoctorService) Create(
	ctx context.Context,
	fullName string,
	email string,
	specialization string,
	yearsOfExperience int,
	countryCode string,
	mobileNumber string,
	licenseNumber string,
	clinicAddress *string,
) (*DoctorDTO, error) {
	id, err := g.store.InsertDoctor(
		ctx,
		fullName,
		email,
		specialization,
		yearsOfExperience,
		countryCode,
		mobileNumber,
		licenseNumber,
		clinicAddress,
		DoctorStatusNew,
	)
	if err != nil {
		if errors.Is(db.ErrAlreadyExists, err) {
			return nil, ErrEntityAlreadyExists
		}
		return nil, err
	}
	g.dispatcher.Dispatch(ctx, &event.DoctorCreated{
		DoctorID: id,
		Email:    email,
	})
	return g.ById(ctx, id)
}

// Update applies a partial update, only the supplied fields are touched
func (g *DoctorService) Update(
	ctx context.Context,
	id int,
	fullName *string,
	email *string,
	specialization *string,
	yearsOfExperience *int,
	countryCode *string,
	mobileNumber *string,
	licenseNumber *string,
	clinicAddress *string,
) (*DoctorDTO, error) {
	columns := map[string]interface{}{}
	if fullName != nil {
		columns["full_name"] = *fullName
	}
	if email != nil {
		columns["email"] = *email
	}
	if specialization != nil {
		columns["specialization"] = *specialization
	}
	if yearsOfExperience != nil {
		columns["years_of_experience"] = *yearsOfExperience
	}
	if countryCode != nil {
		columns["country_code"] = *countryCode
	}
	if mobileNumber != nil {
		columns["mobile_number"] = *mobileNumber
	}
	if licenseNumber != nil {
		columns["license_number"] = *licenseNumber
	}
	if clinicAddress != nil {
		columns["clinic_address"] = *clinicAddress
	}
	err := g.store.UpdateDoctor(ctx, id, columns)
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
	return g.ById(ctx, id)
}

// UpdateStatus moves an application to the given status, final decisions
// (approved, rejected) are reserved for super admins
func (g *DoctorService) UpdateStatus(
	ctx context.Context,
	id int,
	status string,
	actorRole string,
	actorEmail string,
) (*DoctorDTO, error) {
	if !ValidDoctorStatus(status) || status == DoctorStatusResigned {
		return nil, ErrEntityInvalidTransition
	}
	if (status == DoctorStatusApproved || status == DoctorStatusRejected) &&
		actorRole != "super_admin" {
		g.log.Info("denied doctor status transition",
			sanitize.UserInputString("actor", actorEmail),
			zap.String("status", status))
		return nil, ErrTransitionDenied
	}
	doctor, err := g.store.Doctor(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	err = g.store.SetDoctorStatus(ctx, id, status)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	g.dispatcher.Dispatch(ctx, &event.DoctorStatusChanged{
		DoctorID:  id,
		From:      doctor.Status,
		To:        status,
		ChangedBy: actorEmail,
	})
	return g.ById(ctx, id)
}

// Resign retires an approved doctor from the directory
func (g *DoctorService) Resign(
	ctx context.Context,
	id int,
	actorEmail string,
) (*DoctorDTO, error) {
	doctor, err := g.store.Doctor(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doctor.Status != DoctorStatusApproved {
		return nil, ErrEntityInvalidTransition
	}
	err = g.store.SetDoctorStatus(ctx, id, DoctorStatusResigned)
	if err != nil {
		return nil, err
	}
	g.dispatcher.Dispatch(ctx, &event.DoctorStatusChanged{
		DoctorID:  id,
		From:      DoctorStatusApproved,
		To:        DoctorStatusResigned,
		ChangedBy: actorEmail,
	})
	return g.ById(ctx, id)
}

func (g *DoctorService) Delete(ctx context.Context, id int) error {
	doctor, err := g.store.Doctor(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return ErrNotFound
		}
		return err
	}
	err = g.store.DeleteDoctor(ctx, id)
	if err != nil {
		if errors.Is(db.ErrNotFound, err) {
			return ErrNotFound
		}
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.DoctorDeleted{
		DoctorID: id,
		Email:    doctor.Email,
	})
	return nil
}
