package db

import (
	"context"

	"github.com/providerdesk/providerdesk/db/tables"
	"github.com/providerdesk/providerdesk/events"
	"github.com/providerdesk/providerdesk/events/event"
	"go.uber.org/zap"
)

// Auditor is a way to write audit log events into a persistent store
type Auditor interface {
	addToAuditLog(event string, payload tables.MapStructure) error
}

// BootstrapListeners registers all the event listeners from this package
func BootstrapListeners(store Auditor, log *zap.Logger) []events.EventListener {
	return []events.EventListener{
		&accountLoginListener{
			log:   log,
			store: store,
		},
		&accountLockedListener{
			log:   log,
			store: store,
		},
		&accountUnlockedListener{
			log:   log,
			store: store,
		},
		&passwordRecoveryRequestedListener{
			log:   log,
			store: store,
		},
		&passwordRecoveryUsedListener{
			log:   log,
			store: store,
		},
		&passwordChangedListener{
			log:   log,
			store: store,
		},
		&accountCreatedListener{
			log:   log,
			store: store,
		},
		&accountUpdatedListener{
			log:   log,
			store: store,
		},
		&accountDeletedListener{
			log:   log,
			store: store,
		},
		&doctorCreatedListener{
			log:   log,
			store: store,
		},
		&doctorStatusChangedListener{
			log:   log,
			store: store,
		},
		&doctorDeletedListener{
			log:   log,
			store: store,
		},
		&clinicCreatedListener{
			log:   log,
			store: store,
		},
		&clinicUpdatedListener{
			log:   log,
			store: store,
		},
		&clinicDeletedListener{
			log:   log,
			store: store,
		},
		&emailPasswordRecoverySentListener{
			log:   log,
			store: store,
		},
	}
}

type accountLoginListener struct {
	store Auditor
	log   *zap.Logger
}

func (*accountLoginListener) ForEvent() events.EventName {
	return event.AccountLoginEvent
}

func (l *accountLoginListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.AccountLogin)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"account_id":   e.AccountID,
		"account_kind": e.AccountKind,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type accountLockedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*accountLockedListener) ForEvent() events.EventName {
	return event.AccountLockedEvent
}

func (l *accountLockedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.AccountLocked)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"account_id":   e.AccountID,
		"account_kind": e.AccountKind,
		"locked_until": e.LockedUntil.Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type accountUnlockedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*accountUnlockedListener) ForEvent() events.EventName {
	return event.AccountUnlockedEvent
}

func (l *accountUnlockedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.AccountUnlocked)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"account_id":   e.AccountID,
		"account_kind": e.AccountKind,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type passwordRecoveryRequestedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*passwordRecoveryRequestedListener) ForEvent() events.EventName {
	return event.AccountPasswordRecoveryRequestedEvent
}

func (l *passwordRecoveryRequestedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.AccountPasswordRecoveryRequested)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"account_id":   e.AccountID,
		"account_kind": e.AccountKind,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type passwordRecoveryUsedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*passwordRecoveryUsedListener) ForEvent() events.EventName {
	return event.AccountPasswordRecoveryUsedEvent
}

func (l *passwordRecoveryUsedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.AccountPasswordRecoveryUsed)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"account_id":   e.AccountID,
		"account_kind": e.AccountKind,
		"email":        e.Email,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type passwordChangedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*passwordChangedListener) ForEvent() events.EventName {
	return event.AccountPasswordChangedEvent
}

func (l *passwordChangedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.AccountPasswordChanged)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"account_id":   e.AccountID,
		"account_kind": e.AccountKind,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type accountCreatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*accountCreatedListener) ForEvent() events.EventName {
	return event.AccountCreatedEvent
}

func (l *accountCreatedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.AccountCreated)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"account_id":   e.AccountID,
		"account_kind": e.AccountKind,
		"email":        e.Email,
		"created_by":   e.CreatedBy,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type accountUpdatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*accountUpdatedListener) ForEvent() events.EventName {
	return event.AccountUpdatedEvent
}

func (l *accountUpdatedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.AccountUpdated)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"account_id":   e.AccountID,
		"account_kind": e.AccountKind,
		"property":     e.Property,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type accountDeletedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*accountDeletedListener) ForEvent() events.EventName {
	return event.AccountDeletedEvent
}

func (l *accountDeletedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.AccountDeleted)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"account_id":   e.AccountID,
		"account_kind": e.AccountKind,
		"email":        e.Email,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type doctorCreatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*doctorCreatedListener) ForEvent() events.EventName {
	return event.DoctorCreatedEvent
}

func (l *doctorCreatedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.DoctorCreated)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"doctor_id": e.DoctorID,
		"email":     e.Email,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type doctorStatusChangedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*doctorStatusChangedListener) ForEvent() events.EventName {
	return event.DoctorStatusChangedEvent
}

func (l *doctorStatusChangedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.DoctorStatusChanged)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"doctor_id":  e.DoctorID,
		"from":       e.From,
		"to":         e.To,
		"changed_by": e.ChangedBy,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type doctorDeletedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*doctorDeletedListener) ForEvent() events.EventName {
	return event.DoctorDeletedEvent
}

func (l *doctorDeletedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.DoctorDeleted)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"doctor_id": e.DoctorID,
		"email":     e.Email,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type clinicCreatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*clinicCreatedListener) ForEvent() events.EventName {
	return event.ClinicCreatedEvent
}

func (l *clinicCreatedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.ClinicCreated)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"clinic_id": e.ClinicID,
		"name":      e.ClinicName,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type clinicUpdatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*clinicUpdatedListener) ForEvent() events.EventName {
	return event.ClinicUpdatedEvent
}

func (l *clinicUpdatedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.ClinicUpdated)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"clinic_id": e.ClinicID,
		"property":  e.Property,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type clinicDeletedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*clinicDeletedListener) ForEvent() events.EventName {
	return event.ClinicDeletedEvent
}

func (l *clinicDeletedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.ClinicDeleted)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"clinic_id": e.ClinicID,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type emailPasswordRecoverySentListener struct {
	store Auditor
	log   *zap.Logger
}

func (*emailPasswordRecoverySentListener) ForEvent() events.EventName {
	return event.EmailPasswordRecoverySentEvent
}

func (l *emailPasswordRecoverySentListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.EmailPasswordRecoverySent)
	err := l.store.addToAuditLog(string(l.ForEvent()), map[string]interface{}{
		"account_id":   e.AccountID,
		"account_kind": e.AccountKind,
		"email":        e.Email,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}
