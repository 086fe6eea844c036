package app

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"troffee-admin-console/internal/domain/auction"
	"troffee-admin-console/internal/domain/user"
	"troffee-admin-console/internal/ports/outbound"
)

type mockAuctionAPI struct {
	mock.Mock
}

func (m *mockAuctionAPI) GetAuction(ctx context.Context, id string) (*auction.Auction, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*auction.Auction)
	return a, args.Error(1)
}

func (m *mockAuctionAPI) UpdateAuction(ctx context.Context, id string, update auction.FullUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *mockAuctionAPI) UpdateAuctionEndTime(ctx context.Context, id string, endTime time.Time) error {
	return m.Called(ctx, id, endTime).Error(0)
}

func (m *mockAuctionAPI) DeleteAuction(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserAPI struct {
	mock.Mock
}

func (m *mockUserAPI) ListUsers(ctx context.Context, query user.ListQuery) (*user.Page, error) {
	args := m.Called(ctx, query)
	p, _ := args.Get(0).(*user.Page)
	return p, args.Error(1)
}

func (m *mockUserAPI) UpdateUser(ctx context.Context, id string, update user.Update) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *mockUserAPI) SuspendUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserAPI) UnsuspendUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Publish(ctx context.Context, event outbound.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockNotifier) Subscribe(ctx context.Context) (<-chan outbound.Event, error) {
	args := m.Called(ctx)
	ch, _ := args.Get(0).(<-chan outbound.Event)
	return ch, args.Error(1)
}

func eventOfType(t outbound.EventType) interface{} {
	return mock.MatchedBy(func(e outbound.Event) bool { return e.Type == t })
}
