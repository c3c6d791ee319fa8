package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/providerdesk/providerdesk/account/mocks"
	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/db"
	"github.com/providerdesk/providerdesk/db/tables"
	"github.com/providerdesk/providerdesk/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
)

func recoveryTestConfig() *config.SecurityConfiguration {
	return &config.SecurityConfiguration{
		MaxLoginAttempts:     5,
		LockoutDuration:      15 * time.Minute,
		ResetTokenExpiry:     time.Hour,
		PasswordMinLength:    6,
		SelfServiceMinLength: 8,
		FrontendURL:          "https://desk.example.com",
	}
}

func TestInitiateResetUnknownEmail(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()

	dataStore.On("AccountByEmail", ctx, db.KindSuperAdmin, "nobody@example.com").
		Return(nil, db.ErrNotFound)
	dataStore.On("AccountByEmail", ctx, db.KindAdminUser, "nobody@example.com").
		Return(nil, db.ErrNotFound)

	// an unknown address must be indistinguishable from a known one
	err := service.InitiateReset(ctx, "nobody@example.com")
	assert.Nil(err)
	dataStore.AssertNotCalled(
		t,
		"InsertResetToken",
		mock.Anything,
		mock.Anything,
		mock.Anything,
		mock.Anything,
		mock.Anything,
	)
}

func TestInitiateResetInactiveAccount(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:     1,
		Kind:   db.KindAdminUser,
		Email:  "gone@example.com",
		Status: "inactive",
	}

	dataStore.On("AccountByEmail", ctx, db.KindSuperAdmin, "gone@example.com").
		Return(nil, db.ErrNotFound)
	dataStore.On("AccountByEmail", ctx, db.KindAdminUser, "gone@example.com").Return(ad, nil)

	err := service.InitiateReset(ctx, "gone@example.com")
	assert.Nil(err)
	dataStore.AssertNotCalled(
		t,
		"InsertResetToken",
		mock.Anything,
		mock.Anything,
		mock.Anything,
		mock.Anything,
		mock.Anything,
	)
}

func TestInitiateReset(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:       1,
		Kind:     db.KindSuperAdmin,
		Email:    "boss@example.com",
		FullName: "The Boss",
		Status:   "active",
	}

	dataStore.On("AccountByEmail", ctx, db.KindSuperAdmin, "boss@example.com").Return(ad, nil)
	dataStore.On("InsertResetToken", ctx, db.KindSuperAdmin, 1, mock.Anything, mock.Anything).
		Return(1, nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()

	var mailedLink string
	mailer.On("SendPasswordResetEmail", "boss@example.com", "The Boss", mock.Anything).
		Run(func(args mock.Arguments) {
			mailedLink = args.String(2)
		}).
		Return(nil)

	err := service.InitiateReset(ctx, "boss@example.com")
	assert.Nil(err)
	assert.True(strings.HasPrefix(mailedLink, "https://desk.example.com/reset-password?token="))

	// the mail carries the plaintext token, the store only ever sees its digest
	token := strings.TrimPrefix(mailedLink, "https://desk.example.com/reset-password?token=")
	assert.Len(token, 64)
	storedDigest := dataStore.Calls[1].Arguments.String(3)
	assert.NotEqual(token, storedDigest)
	assert.Equal(generator.DigestToken(token), storedDigest)
}

func TestInitiateResetMailFailureIsSwallowed(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:     1,
		Kind:   db.KindSuperAdmin,
		Email:  "boss@example.com",
		Status: "active",
	}

	dataStore.On("AccountByEmail", ctx, db.KindSuperAdmin, "boss@example.com").Return(ad, nil)
	dataStore.On("InsertResetToken", ctx, db.KindSuperAdmin, 1, mock.Anything, mock.Anything).
		Return(1, nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()
	mailer.On("SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp relay refused the message"))

	err := service.InitiateReset(ctx, "boss@example.com")
	assert.Nil(err)
}

func TestVerifyTokenUnknown(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()

	dataStore.On("ResetTokenByDigest", ctx, mock.Anything).Return(nil, db.ErrNotFound)

	_, err := service.VerifyToken(ctx, "deadbeef")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrInvalidResetToken)
}

func TestVerifyTokenEmpty(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()

	_, err := service.VerifyToken(ctx, "")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrInvalidResetToken)
}

func TestVerifyTokenAlreadyUsed(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	usedAt := time.Now().UTC().Add(-time.Minute)
	entity := &tables.PasswordResetTokenTable{
		ID:          1,
		AccountKind: "super_admin",
		AccountID:   1,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
		UsedAt:      &usedAt,
	}

	dataStore.On("ResetTokenByDigest", ctx, mock.Anything).Return(entity, nil)

	_, err := service.VerifyToken(ctx, "deadbeef")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrResetTokenUsed)
}

func TestVerifyTokenExpired(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	entity := &tables.PasswordResetTokenTable{
		ID:          1,
		AccountKind: "super_admin",
		AccountID:   1,
		ExpiresAt:   time.Now().UTC().Add(-time.Minute),
	}

	dataStore.On("ResetTokenByDigest", ctx, mock.Anything).Return(entity, nil)

	_, err := service.VerifyToken(ctx, "deadbeef")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrResetTokenExpired)
}

func TestVerifyToken(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	entity := &tables.PasswordResetTokenTable{
		ID:          1,
		AccountKind: "super_admin",
		AccountID:   1,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	}
	ad := &db.AccountData{
		ID:     1,
		Kind:   db.KindSuperAdmin,
		Email:  "boss@example.com",
		Status: "active",
	}

	dataStore.On("ResetTokenByDigest", ctx, generator.DigestToken("deadbeef")).Return(entity, nil)
	dataStore.On("AccountByID", ctx, db.KindSuperAdmin, 1).Return(ad, nil)

	email, err := service.VerifyToken(ctx, "deadbeef")
	assert.Nil(err)
	assert.Equal("boss@example.com", email)
}

func TestResetPasswordTooShort(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()

	err := service.ResetPassword(ctx, "deadbeef", "short")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrPasswordTooShort)
}

func TestResetPasswordConsumeRace(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	entity := &tables.PasswordResetTokenTable{
		ID:          1,
		AccountKind: "admin",
		AccountID:   3,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	}
	ad := &db.AccountData{
		ID:     3,
		Kind:   db.KindAdminUser,
		Email:  "staff@example.com",
		Status: "active",
	}

	// a concurrent redeem already flipped used_at between lookup and consume
	dataStore.On("ResetTokenByDigest", ctx, mock.Anything).Return(entity, nil)
	dataStore.On("AccountByID", ctx, db.KindAdminUser, 3).Return(ad, nil)
	dataStore.On("ConsumeResetToken", ctx, 1).Return(false, nil)

	err := service.ResetPassword(ctx, "deadbeef", "newpassword")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrResetTokenUsed)
	dataStore.AssertNotCalled(
		t,
		"SetAccountPassword",
		mock.Anything,
		mock.Anything,
		mock.Anything,
		mock.Anything,
	)
}

func TestResetPassword(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	entity := &tables.PasswordResetTokenTable{
		ID:          1,
		AccountKind: "admin",
		AccountID:   3,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	}
	ad := &db.AccountData{
		ID:     3,
		Kind:   db.KindAdminUser,
		Email:  "staff@example.com",
		Status: "active",
	}

	dataStore.On("ResetTokenByDigest", ctx, mock.Anything).Return(entity, nil)
	dataStore.On("AccountByID", ctx, db.KindAdminUser, 3).Return(ad, nil)
	dataStore.On("ConsumeResetToken", ctx, 1).Return(true, nil)
	dataStore.On("SetAccountPassword", ctx, db.KindAdminUser, 3, mock.Anything).Return(true, nil)
	dataStore.On("RetireResetTokens", ctx, db.KindAdminUser, 3).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()

	err := service.ResetPassword(ctx, "deadbeef", "newpassword")
	assert.Nil(err)
}

func TestResetPasswordRetiresSiblingsOnlyAfterSuccess(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	entity := &tables.PasswordResetTokenTable{
		ID:          2,
		AccountKind: "admin",
		AccountID:   3,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	}
	ad := &db.AccountData{
		ID:     3,
		Kind:   db.KindAdminUser,
		Email:  "staff@example.com",
		Status: "active",
	}

	dataStore.On("ResetTokenByDigest", ctx, mock.Anything).Return(entity, nil)
	dataStore.On("AccountByID", ctx, db.KindAdminUser, 3).Return(ad, nil)
	dataStore.On("ConsumeResetToken", ctx, 2).Return(true, nil)
	dataStore.On("SetAccountPassword", ctx, db.KindAdminUser, 3, mock.Anything).
		Return(false, errors.New("connection reset by peer"))

	// older tokens stay redeemable when the password swap itself fails
	err := service.ResetPassword(ctx, "deadbeef", "newpassword")
	assert.NotNil(err)
	dataStore.AssertNotCalled(
		t,
		"RetireResetTokens",
		mock.Anything,
		mock.Anything,
		mock.Anything,
	)
}

func TestInitiateResetForKindIgnoresOtherKind(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()

	// only the super admin table is consulted, an admin user with the
	// same address does not count
	dataStore.On("AccountByEmail", ctx, db.KindSuperAdmin, "staff@example.com").
		Return(nil, db.ErrNotFound)

	err := service.InitiateResetForKind(ctx, db.KindSuperAdmin, "staff@example.com")
	assert.Nil(err)
	dataStore.AssertNotCalled(
		t,
		"AccountByEmail",
		mock.Anything,
		db.KindAdminUser,
		mock.Anything,
	)
	dataStore.AssertNotCalled(
		t,
		"InsertResetToken",
		mock.Anything,
		mock.Anything,
		mock.Anything,
		mock.Anything,
		mock.Anything,
	)
}

func TestInitiateResetForKind(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:       1,
		Kind:     db.KindSuperAdmin,
		Email:    "boss@example.com",
		FullName: "The Boss",
		Status:   "active",
	}

	dataStore.On("AccountByEmail", ctx, db.KindSuperAdmin, "boss@example.com").Return(ad, nil)
	dataStore.On("InsertResetToken", ctx, db.KindSuperAdmin, 1, mock.Anything, mock.Anything).
		Return(1, nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()
	mailer.On("SendPasswordResetEmail", "boss@example.com", "The Boss", mock.Anything).
		Return(nil)

	err := service.InitiateResetForKind(ctx, db.KindSuperAdmin, "boss@example.com")
	assert.Nil(err)
}

func TestSelfServiceResetTooShortForSelfService(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()

	// seven characters pass the generic minimum but not the stricter
	// self-service one
	err := service.SelfServiceReset(ctx, "deadbeef", "seven77")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrPasswordTooShort)
}

func TestSelfServiceResetRefusesForeignToken(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	entity := &tables.PasswordResetTokenTable{
		ID:          1,
		AccountKind: "admin",
		AccountID:   3,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	}

	dataStore.On("ResetTokenByDigest", ctx, mock.Anything).Return(entity, nil)

	err := service.SelfServiceReset(ctx, "deadbeef", "longenough")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrInvalidResetToken)
	dataStore.AssertNotCalled(
		t,
		"ConsumeResetToken",
		mock.Anything,
		mock.Anything,
	)
}

func TestSelfServiceReset(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewRecoveryStorer(t)
	logger := zaptest.NewLogger(t)
	mailer := mocks.NewRecoveryMailer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewRecoveryService(dataStore, logger, recoveryTestConfig(), mailer, dispatcher)
	ctx := context.Background()
	entity := &tables.PasswordResetTokenTable{
		ID:          1,
		AccountKind: "super_admin",
		AccountID:   1,
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
	}
	ad := &db.AccountData{
		ID:     1,
		Kind:   db.KindSuperAdmin,
		Email:  "boss@example.com",
		Status: "active",
	}

	dataStore.On("ResetTokenByDigest", ctx, mock.Anything).Return(entity, nil)
	dataStore.On("AccountByID", ctx, db.KindSuperAdmin, 1).Return(ad, nil)
	dataStore.On("ConsumeResetToken", ctx, 1).Return(true, nil)
	dataStore.On("SetAccountPassword", ctx, db.KindSuperAdmin, 1, mock.Anything).
		Return(true, nil)
	dataStore.On("RetireResetTokens", ctx, db.KindSuperAdmin, 1).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()

	err := service.SelfServiceReset(ctx, "deadbeef", "longenough")
	assert.Nil(err)
}
