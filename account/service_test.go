package account

import (
	"context"
	"testing"
	"time"

	"github.com/providerdesk/providerdesk/account/mocks"
	"github.com/providerdesk/providerdesk/config"
	"github.com/providerdesk/providerdesk/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func signinTestConfig() *config.SecurityConfiguration {
	return &config.SecurityConfiguration{
		MaxLoginAttempts:     5,
		LockoutDuration:      15 * time.Minute,
		PasswordMinLength:    6,
		SelfServiceMinLength: 8,
	}
}

func hashed(t *testing.T, password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.Nil(t, err)
	return hash
}

func TestSignInUnknownEmail(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()

	dataStore.On("AccountByEmail", ctx, db.KindAdminUser, "nobody@example.com").
		Return(nil, db.ErrNotFound)

	_, err := service.SignIn(ctx, db.KindAdminUser, "nobody@example.com", "test")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrInvalidCredentials)
}

func TestSignInInactiveAccount(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:     1,
		Email:  "test@example.com",
		Status: "inactive",
	}

	dataStore.On("AccountByEmail", ctx, db.KindAdminUser, "test@example.com").Return(ad, nil)

	_, err := service.SignIn(ctx, db.KindAdminUser, "test@example.com", "test")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrAccountInactive)
}

func TestSignInLockedAccount(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	until := time.Now().UTC().Add(10 * time.Minute)
	ad := &db.AccountData{
		ID:                 1,
		Email:              "test@example.com",
		Status:             "active",
		AccountLockedUntil: &until,
	}

	dataStore.On("AccountByEmail", ctx, db.KindAdminUser, "test@example.com").Return(ad, nil)

	_, err := service.SignIn(ctx, db.KindAdminUser, "test@example.com", "test")
	assert.NotNil(err)
	var locked *LockedError
	assert.ErrorAs(err, &locked)
	assert.Greater(locked.MinutesRemaining(), 0)
	assert.LessOrEqual(locked.MinutesRemaining(), 10)
}

func TestSignInWrongPasswordLeavesAttempts(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:           1,
		Email:        "test@example.com",
		Status:       "active",
		PasswordHash: hashed(t, "correct"),
	}

	dataStore.On("AccountByEmail", ctx, db.KindAdminUser, "test@example.com").Return(ad, nil)
	dataStore.On("SetAccountFailureCount", ctx, db.KindAdminUser, 1, 1).Return(nil)

	_, err := service.SignIn(ctx, db.KindAdminUser, "test@example.com", "wrong")
	assert.NotNil(err)
	var remaining *AttemptsRemainingError
	assert.ErrorAs(err, &remaining)
	assert.Equal(4, remaining.Remaining)
	assert.ErrorIs(err, ErrInvalidCredentials)
}

func TestSignInFinalFailureTripsLockout(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:                  1,
		Email:               "test@example.com",
		Status:              "active",
		PasswordHash:        hashed(t, "correct"),
		FailedLoginAttempts: 4,
	}

	dataStore.On("AccountByEmail", ctx, db.KindAdminUser, "test@example.com").Return(ad, nil)
	dataStore.On("LockAccount", ctx, db.KindAdminUser, 1, mock.Anything).Return(true, nil)
	dataStore.On("SetAccountFailureCount", ctx, db.KindAdminUser, 1, 5).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()

	_, err := service.SignIn(ctx, db.KindAdminUser, "test@example.com", "wrong")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrAccountNowLocked)
}

func TestSignInRelocksAfterElapsedLockout(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	stale := time.Now().UTC().Add(-time.Minute)
	ad := &db.AccountData{
		ID:                  1,
		Email:               "test@example.com",
		Status:              "active",
		PasswordHash:        hashed(t, "correct"),
		FailedLoginAttempts: 4,
		AccountLockedUntil:  &stale,
	}

	dataStore.On("AccountByEmail", ctx, db.KindAdminUser, "test@example.com").Return(ad, nil)
	dataStore.On("LockAccount", ctx, db.KindAdminUser, 1, mock.Anything).Return(true, nil)
	dataStore.On("SetAccountFailureCount", ctx, db.KindAdminUser, 1, 5).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()

	// the elapsed deadline still on the row must not stop a fresh lockout
	_, err := service.SignIn(ctx, db.KindAdminUser, "test@example.com", "wrong")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrAccountNowLocked)
	until := dataStore.Calls[1].Arguments.Get(3).(time.Time)
	assert.True(until.After(time.Now().UTC()))
}

func TestSignInSuccess(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:           7,
		Email:        "test@example.com",
		FullName:     "Test Admin",
		Role:         "admin",
		Status:       "active",
		PasswordHash: hashed(t, "correct"),
	}

	dataStore.On("AccountByEmail", ctx, db.KindAdminUser, "test@example.com").Return(ad, nil)
	dataStore.On("RecordAccountLogin", ctx, db.KindAdminUser, 7).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()

	signedIn, err := service.SignIn(ctx, db.KindAdminUser, "test@example.com", "correct")
	assert.Nil(err)
	assert.Equal(7, signedIn.ID)
	assert.Equal(db.KindAdminUser, signedIn.Kind)
	assert.Equal("Test Admin", signedIn.FullName)
	assert.Equal("admin", signedIn.Role)
	assert.Equal("admin", signedIn.UserType())
}

func TestSignInAnyPrefersSuperAdmin(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:           1,
		Email:        "boss@example.com",
		FullName:     "The Boss",
		Status:       "active",
		PasswordHash: hashed(t, "correct"),
	}

	dataStore.On("AccountByEmail", ctx, db.KindSuperAdmin, "boss@example.com").Return(ad, nil)
	dataStore.On("RecordAccountLogin", ctx, db.KindSuperAdmin, 1).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()

	signedIn, err := service.SignInAny(ctx, "boss@example.com", "correct")
	assert.Nil(err)
	assert.Equal(db.KindSuperAdmin, signedIn.Kind)
}

func TestSignInAnyFallsBackToAdminUser(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:           3,
		Email:        "staff@example.com",
		Status:       "active",
		PasswordHash: hashed(t, "correct"),
	}

	dataStore.On("AccountByEmail", ctx, db.KindSuperAdmin, "staff@example.com").
		Return(nil, db.ErrNotFound)
	dataStore.On("AccountByEmail", ctx, db.KindAdminUser, "staff@example.com").Return(ad, nil)
	dataStore.On("RecordAccountLogin", ctx, db.KindAdminUser, 3).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()

	signedIn, err := service.SignInAny(ctx, "staff@example.com", "correct")
	assert.Nil(err)
	assert.Equal(db.KindAdminUser, signedIn.Kind)
}

func TestSignInAnyDoesNotLeakIntoAdminTableOnSuperAdminFailure(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:           1,
		Email:        "boss@example.com",
		Status:       "active",
		PasswordHash: hashed(t, "correct"),
	}

	// a wrong password for an existing super admin must not be retried
	// against the admin user table
	dataStore.On("AccountByEmail", ctx, db.KindSuperAdmin, "boss@example.com").Return(ad, nil)
	dataStore.On("SetAccountFailureCount", ctx, db.KindSuperAdmin, 1, 1).Return(nil)

	_, err := service.SignInAny(ctx, "boss@example.com", "wrong")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrInvalidCredentials)
	dataStore.AssertNotCalled(
		t,
		"AccountByEmail",
		ctx,
		db.KindAdminUser,
		"boss@example.com",
	)
}

func TestChangePasswordTooShort(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()

	err := service.ChangePassword(ctx, db.KindSuperAdmin, 1, "current", "short")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrPasswordTooShort)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:           1,
		Email:        "boss@example.com",
		Status:       "active",
		PasswordHash: hashed(t, "correct"),
	}

	dataStore.On("AccountByID", ctx, db.KindSuperAdmin, 1).Return(ad, nil)

	err := service.ChangePassword(ctx, db.KindSuperAdmin, 1, "wrong", "longenough")
	assert.NotNil(err)
	assert.ErrorIs(err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:           1,
		Email:        "boss@example.com",
		Status:       "active",
		PasswordHash: hashed(t, "correct"),
	}

	dataStore.On("AccountByID", ctx, db.KindSuperAdmin, 1).Return(ad, nil)
	dataStore.On("SetAccountPassword", ctx, db.KindSuperAdmin, 1, mock.Anything).Return(true, nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()

	err := service.ChangePassword(ctx, db.KindSuperAdmin, 1, "correct", "longenough")
	assert.Nil(err)
}

func TestUnlockUnknownAccount(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()

	dataStore.On("AccountByID", ctx, db.KindAdminUser, 42).Return(nil, db.ErrNotFound)

	err := service.Unlock(ctx, db.KindAdminUser, 42)
	assert.NotNil(err)
	assert.ErrorIs(err, ErrEntityDoesNotExist)
	dataStore.AssertNotCalled(t, "UnlockAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnlockNotLockedAccountIsNoOp(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:     3,
		Kind:   db.KindAdminUser,
		Email:  "staff@example.com",
		Status: "active",
	}

	dataStore.On("AccountByID", ctx, db.KindAdminUser, 3).Return(ad, nil)
	// nothing to clear, the update touches no row
	dataStore.On("UnlockAccount", ctx, db.KindAdminUser, 3).Return(false, nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return()

	err := service.Unlock(ctx, db.KindAdminUser, 3)
	assert.Nil(err)
}

func TestAccountFromSubjectInactive(t *testing.T) {
	assert := assert.New(t)
	dataStore := mocks.NewAccountStorer(t)
	logger := zaptest.NewLogger(t)
	dispatcher := mocks.NewDispatcher(t)
	service := NewSigninService(dataStore, logger, signinTestConfig(), dispatcher)
	ctx := context.Background()
	ad := &db.AccountData{
		ID:     1,
		Email:  "gone@example.com",
		Status: "inactive",
	}

	dataStore.On("AccountByID", ctx, db.KindAdminUser, 1).Return(ad, nil)

	_, err := service.AccountFromSubject(ctx, db.KindAdminUser, 1)
	assert.NotNil(err)
	assert.ErrorIs(err, ErrAccountInactive)
}
