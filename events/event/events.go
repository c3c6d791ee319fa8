package event

import (
	"time"

	"github.com/providerdesk/providerdesk/events"
)

const (
	AccountLoginEvent    events.EventName = "account_login"
	AccountLockedEvent   events.EventName = "account_locked"
	AccountUnlockedEvent events.EventName = "account_unlocked"

	AccountPasswordRecoveryRequestedEvent events.EventName = "account_password_recovery_requested"
	AccountPasswordRecoveryUsedEvent      events.EventName = "account_password_recovery_used"
	AccountPasswordChangedEvent           events.EventName = "account_password_changed"

	AccountCreatedEvent events.EventName = "account_created"
	AccountUpdatedEvent events.EventName = "account_updated"
	AccountDeletedEvent events.EventName = "account_deleted"

	DoctorCreatedEvent       events.EventName = "doctor_created"
	DoctorStatusChangedEvent events.EventName = "doctor_status_changed"
	DoctorDeletedEvent       events.EventName = "doctor_deleted"

	ClinicCreatedEvent events.EventName = "clinic_created"
	ClinicUpdatedEvent events.EventName = "clinic_updated"
	ClinicDeletedEvent events.EventName = "clinic_deleted"

	EmailPasswordRecoverySentEvent events.EventName = "email_password_recovery_sent"
)

type AccountLogin struct {
	AccountID   int
	AccountKind string
}

func (*AccountLogin) Name() events.EventName { return AccountLoginEvent }

type AccountLocked struct {
	AccountID   int
	AccountKind string
	LockedUntil time.Time
}

func (*AccountLocked) Name() events.EventName { return AccountLockedEvent }

type AccountUnlocked struct {
	AccountID   int
	AccountKind string
}

func (*AccountUnlocked) Name() events.EventName { return AccountUnlockedEvent }

type AccountPasswordRecoveryRequested struct {
	AccountID   int
	AccountKind string
}

func (*AccountPasswordRecoveryRequested) Name() events.EventName {
	return AccountPasswordRecoveryRequestedEvent
}

type AccountPasswordRecoveryUsed struct {
	AccountID   int
	AccountKind string
	Email       string
}

func (*AccountPasswordRecoveryUsed) Name() events.EventName {
	return AccountPasswordRecoveryUsedEvent
}

type AccountPasswordChanged struct {
	AccountID   int
	AccountKind string
}

func (*AccountPasswordChanged) Name() events.EventName { return AccountPasswordChangedEvent }

type AccountCreated struct {
	AccountID   int
	AccountKind string
	Email       string
	CreatedBy   string
}

func (*AccountCreated) Name() events.EventName { return AccountCreatedEvent }

type AccountUpdated struct {
	AccountID   int
	AccountKind string
	Property    string
}

func (*AccountUpdated) Name() events.EventName { return AccountUpdatedEvent }

type AccountDeleted struct {
	AccountID   int
	AccountKind string
	Email       string
}

func (*AccountDeleted) Name() events.EventName { return AccountDeletedEvent }

type DoctorCreated struct {
	DoctorID int
	Email    string
}

func (*DoctorCreated) Name() events.EventName { return DoctorCreatedEvent }

type DoctorStatusChanged struct {
	DoctorID  int
	From      string
	To        string
	ChangedBy string
}

func (*DoctorStatusChanged) Name() events.EventName { return DoctorStatusChangedEvent }

type DoctorDeleted struct {
	DoctorID int
	Email    string
}

func (*DoctorDeleted) Name() events.EventName { return DoctorDeletedEvent }

type ClinicCreated struct {
	ClinicID   int
	ClinicName string
}

func (*ClinicCreated) Name() events.EventName { return ClinicCreatedEvent }

type ClinicUpdated struct {
	ClinicID int
	Property string
}

func (*ClinicUpdated) Name() events.EventName { return ClinicUpdatedEvent }

type ClinicDeleted struct {
	ClinicID int
}

func (*ClinicDeleted) Name() events.EventName { return ClinicDeletedEvent }

type EmailPasswordRecoverySent struct {
	AccountID   int
	AccountKind string
	Email       string
	Sent        time.Time
}

func (*EmailPasswordRecoverySent) Name() events.EventName { return EmailPasswordRecoverySentEvent }
