package app

import (
	"context"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"troffee-admin-console/internal/domain/shared"
	"troffee-admin-console/internal/domain/user"
	"troffee-admin-console/internal/ports/outbound"
)

func newTestUserService(debounce time.Duration) (*UserService, *mockUserAPI, *mockNotifier, *fakeclock.FakeClock) {
	api := &mockUserAPI{}
	notifier := &mockNotifier{}
	clk := fakeclock.NewFakeClock(time.Now())
	service := NewUserService(UserServiceParams{
		API:      api,
		Notifier: notifier,
		Clock:    clk,
		Debounce: debounce,
		PageSize: 10,
		Logger:   zerolog.Nop(),
	})
	return service, api, notifier, clk
}

func samplePage() *user.Page {
	return &user.Page{
		Users: []user.User{
			{ID: "u1", FullName: "Ann", Role: user.RoleAdmin, IsEmailVerified: true, IsPhoneVerified: true},
			{ID: "u2", FullName: "Bob", Role: user.RoleUser, Suspended: true},
			{ID: "u3", FullName: "Cid", Role: user.RoleUser, IsEmailVerified: true},
		},
		Total: 23,
	}
}

func TestList_BuildsPageView(t *testing.T) {
	service, api, _, _ := newTestUserService(0)

	api.On("ListUsers", mock.Anything, user.ListQuery{Search: "an", Page: 1, PageSize: 10}).Return(samplePage(), nil).Once()

	view, err := service.List(context.Background(), user.ListQuery{Search: " an ", Page: 0})
	require.NoError(t, err)

	assert.Equal(t, "an", view.Search)
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 3, view.TotalPages)
	assert.Len(t, view.Users, 3)
	assert.Equal(t, user.Stats{TotalUsers: 23, VerifiedUsers: 1, SuspendedUsers: 1, AdminUsers: 1}, view.Stats)
}

func TestList_PropagatesError(t *testing.T) {
	service, api, _, _ := newTestUserService(0)

	api.On("ListUsers", mock.Anything, mock.Anything).Return(nil, shared.ErrNetwork).Once()

	_, err := service.List(context.Background(), user.ListQuery{})
	assert.ErrorIs(t, err, shared.ErrNetwork)
}

func TestUpdate(t *testing.T) {
	service, api, notifier, _ := newTestUserService(0)

	update := user.Update{FullName: "Ann", Email: "ann@example.com", Role: user.RoleAdmin}
	api.On("UpdateUser", mock.Anything, "u1", update).Return(nil).Once()
	notifier.On("Publish", mock.Anything, eventOfType(outbound.EventTypeUserUpdated)).Return(nil).Once()

	require.NoError(t, service.Update(context.Background(), "u1", update))
	api.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestUpdate_ValidationStopsCall(t *testing.T) {
	service, api, _, _ := newTestUserService(0)

	err := service.Update(context.Background(), "u1", user.Update{FullName: "Ann", Email: "not-an-email", Role: user.RoleUser})
	assert.ErrorIs(t, err, shared.ErrValidation)

	err = service.Update(context.Background(), "", user.Update{})
	assert.ErrorIs(t, err, shared.ErrUserIDRequired)

	api.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetSuspended(t *testing.T) {
	service, api, notifier, _ := newTestUserService(0)

	api.On("SuspendUser", mock.Anything, "u1").Return(nil).Once()
	api.On("UnsuspendUser", mock.Anything, "u2").Return(nil).Once()
	notifier.On("Publish", mock.Anything, eventOfType(outbound.EventTypeUserSuspended)).Return(nil).Once()
	notifier.On("Publish", mock.Anything, eventOfType(outbound.EventTypeUserUnsuspended)).Return(nil).Once()

	require.NoError(t, service.SetSuspended(context.Background(), "u1", true))
	require.NoError(t, service.SetSuspended(context.Background(), "u2", false))

	api.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSetSuspended_BackendError(t *testing.T) {
	service, api, notifier, _ := newTestUserService(0)

	api.On("SuspendUser", mock.Anything, "u1").Return(shared.ErrAuthorization).Once()

	err := service.SetSuspended(context.Background(), "u1", true)
	assert.ErrorIs(t, err, shared.ErrAuthorization)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
