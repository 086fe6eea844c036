package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"troffee-admin-console/internal/domain/auction"
	"troffee-admin-console/internal/domain/localtime"
	"troffee-admin-console/internal/domain/shared"
	"troffee-admin-console/internal/ports/inbound"
	"troffee-admin-console/internal/ports/outbound"
)

var utcMinus2 = time.FixedZone("UTC-2", -2*3600)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func testAuction(status auction.Status) *auction.Auction {
	return &auction.Auction{
		ID:            "a1",
		Title:         "Vase",
		Category:      "Art",
		Description:   "Blue vase",
		StartingPrice: 100,
		Currency:      "USD",
		Images:        []string{"one.jpg"},
		Status:        status,
		StartDate:     time.Date(2025, 9, 19, 10, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC),
	}
}

func openSession(t *testing.T, status auction.Status) (inbound.EditSession, *mockAuctionAPI, *mockNotifier) {
	t.Helper()
	api := &mockAuctionAPI{}
	notifier := &mockNotifier{}
	editor := NewAuctionEditorService(AuctionEditorServiceParams{
		API:       api,
		Notifier:  notifier,
		Converter: localtime.NewConverter(utcMinus2),
		Logger:    zerolog.Nop(),
	})

	api.On("GetAuction", mock.Anything, "a1").Return(testAuction(status), nil).Once()
	session, err := editor.Open(context.Background(), "a1")
	require.NoError(t, err)
	return session, api, notifier
}

func TestOpen_RequiresID(t *testing.T) {
	editor := NewAuctionEditorService(AuctionEditorServiceParams{API: &mockAuctionAPI{}, Logger: zerolog.Nop()})
	_, err := editor.Open(context.Background(), "")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestOpen_PropagatesNotFound(t *testing.T) {
	api := &mockAuctionAPI{}
	api.On("GetAuction", mock.Anything, "missing").Return(nil, shared.ErrNotFound)
	editor := NewAuctionEditorService(AuctionEditorServiceParams{API: api, Logger: zerolog.Nop()})

	_, err := editor.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestView_LocalFormValues(t *testing.T) {
	session, _, _ := openSession(t, auction.StatusUpcoming)

	view := session.View()
	assert.Equal(t, auction.EditModeFull, view.Mode)
	assert.True(t, view.CanDelete)
	assert.Equal(t, "UTC-2", view.Timezone)
	assert.Equal(t, "2025-09-19T08:00", view.Form.StartTime)
	assert.Equal(t, "2025-09-20T08:00", view.Form.EndTime)
	assert.Equal(t, []string{"one.jpg"}, view.Form.Images)
}

func TestView_EndedIsReadOnly(t *testing.T) {
	session, _, _ := openSession(t, auction.StatusEnded)

	view := session.View()
	assert.Equal(t, auction.EditModeReadOnly, view.Mode)
	assert.False(t, view.CanDelete)
}

func TestSubmit_UpcomingSendsFullUpdateInUTC(t *testing.T) {
	session, api, notifier := openSession(t, auction.StatusUpcoming)

	api.On("UpdateAuction", mock.Anything, "a1", mock.MatchedBy(func(u auction.FullUpdate) bool {
		return u.Title == "Vase II" &&
			u.Category == "Art" &&
			u.StartTime.Equal(time.Date(2025, 9, 19, 17, 30, 0, 0, time.UTC)) &&
			u.EndTime.Equal(time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)) &&
			len(u.Images) == 1 && u.Images[0].Ref == "one.jpg"
	})).Return(nil).Once()
	notifier.On("Publish", mock.Anything, eventOfType(outbound.EventTypeAuctionUpdated)).Return(nil).Once()

	err := session.Submit(context.Background(), auction.EditRequest{
		Title:     strPtr("Vase II"),
		StartTime: strPtr("2025-09-19T15:30"),
	})
	require.NoError(t, err)

	view := session.View()
	assert.Equal(t, "Vase II", view.Auction.Title)
	assert.Equal(t, "2025-09-19T15:30", view.Form.StartTime)
	api.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSubmit_UpcomingRejectsEndBeforeStart(t *testing.T) {
	session, api, _ := openSession(t, auction.StatusUpcoming)

	err := session.Submit(context.Background(), auction.EditRequest{
		EndTime: strPtr("2025-09-19T07:00"),
	})
	assert.ErrorIs(t, err, shared.ErrInvalidEndTime)
	api.AssertNotCalled(t, "UpdateAuction", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_RejectsNonPositivePrice(t *testing.T) {
	session, _, _ := openSession(t, auction.StatusUpcoming)

	err := session.Submit(context.Background(), auction.EditRequest{StartingPrice: floatPtr(0)})
	assert.ErrorIs(t, err, shared.ErrInvalidPrice)
}

func TestSubmit_RejectsMalformedTime(t *testing.T) {
	session, _, _ := openSession(t, auction.StatusUpcoming)

	err := session.Submit(context.Background(), auction.EditRequest{StartTime: strPtr("19/09/2025 15:30")})
	assert.ErrorIs(t, err, shared.ErrInvalidDateTime)
}

func TestSubmit_ActiveOnlyEndTime(t *testing.T) {
	session, api, notifier := openSession(t, auction.StatusActive)

	err := session.Submit(context.Background(), auction.EditRequest{Title: strPtr("New title")})
	assert.ErrorIs(t, err, shared.ErrFieldNotEditable)

	newEnd := time.Date(2025, 9, 21, 17, 30, 0, 0, time.UTC)
	api.On("UpdateAuctionEndTime", mock.Anything, "a1", mock.MatchedBy(func(end time.Time) bool {
		return end.Equal(newEnd)
	})).Return(nil).Once()
	notifier.On("Publish", mock.Anything, eventOfType(outbound.EventTypeAuctionEndTimeUpdated)).Return(nil).Once()

	err = session.Submit(context.Background(), auction.EditRequest{EndTime: strPtr("2025-09-21T15:30")})
	require.NoError(t, err)
	assert.True(t, session.View().Auction.EndDate.Equal(newEnd))
	api.AssertExpectations(t)
}

func TestSubmit_EndedIsReadOnly(t *testing.T) {
	session, _, _ := openSession(t, auction.StatusEnded)

	err := session.Submit(context.Background(), auction.EditRequest{EndTime: strPtr("2025-09-21T15:30")})
	assert.ErrorIs(t, err, shared.ErrAuctionReadOnly)
}

func TestSubmit_Empty(t *testing.T) {
	session, _, _ := openSession(t, auction.StatusUpcoming)

	err := session.Submit(context.Background(), auction.EditRequest{})
	assert.ErrorIs(t, err, shared.ErrEmptyEdit)
}

func TestSubmit_BusyWhileInFlight(t *testing.T) {
	session, api, notifier := openSession(t, auction.StatusActive)

	started := make(chan struct{})
	release := make(chan struct{})
	api.On("UpdateAuctionEndTime", mock.Anything, "a1", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).Once()
	notifier.On("Publish", mock.Anything, mock.Anything).Return(nil)

	req := auction.EditRequest{EndTime: strPtr("2025-09-21T15:30")}
	done := make(chan error, 1)
	go func() { done <- session.Submit(context.Background(), req) }()

	<-started
	assert.ErrorIs(t, session.Submit(context.Background(), req), shared.ErrBusy)
	assert.ErrorIs(t, session.Delete(context.Background()), shared.ErrBusy)

	close(release)
	assert.NoError(t, <-done)
	api.AssertNumberOfCalls(t, "UpdateAuctionEndTime", 1)
}

func TestSubmit_ResultNotAppliedAfterClose(t *testing.T) {
	session, api, notifier := openSession(t, auction.StatusUpcoming)

	started := make(chan struct{})
	release := make(chan struct{})
	api.On("UpdateAuction", mock.Anything, "a1", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).Once()
	notifier.On("Publish", mock.Anything, mock.Anything).Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- session.Submit(context.Background(), auction.EditRequest{Title: strPtr("Changed")})
	}()

	<-started
	session.Close()
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, "Vase", session.View().Auction.Title)
	assert.ErrorIs(t, session.Submit(context.Background(), auction.EditRequest{Title: strPtr("Again")}), shared.ErrSessionClosed)
}

func TestSubmit_PublishFailureDoesNotFailEdit(t *testing.T) {
	session, api, notifier := openSession(t, auction.StatusUpcoming)

	api.On("UpdateAuction", mock.Anything, "a1", mock.Anything).Return(nil).Once()
	notifier.On("Publish", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	assert.NoError(t, session.Submit(context.Background(), auction.EditRequest{Video: strPtr("https://v.example.com")}))
}

func TestDelete(t *testing.T) {
	session, api, notifier := openSession(t, auction.StatusActive)

	api.On("DeleteAuction", mock.Anything, "a1").Return(nil).Once()
	notifier.On("Publish", mock.Anything, eventOfType(outbound.EventTypeAuctionDeleted)).Return(nil).Once()

	require.NoError(t, session.Delete(context.Background()))
	assert.ErrorIs(t, session.Delete(context.Background()), shared.ErrSessionClosed)
	api.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestDelete_NotAllowedWhenEnded(t *testing.T) {
	session, api, _ := openSession(t, auction.StatusEnded)

	assert.ErrorIs(t, session.Delete(context.Background()), shared.ErrDeleteNotAllowed)
	api.AssertNotCalled(t, "DeleteAuction", mock.Anything, mock.Anything)
}

func TestDelete_BackendErrorKeepsSessionOpen(t *testing.T) {
	session, api, _ := openSession(t, auction.StatusUpcoming)

	api.On("DeleteAuction", mock.Anything, "a1").Return(shared.ErrAuthorization).Once()

	assert.ErrorIs(t, session.Delete(context.Background()), shared.ErrAuthorization)
	assert.Equal(t, auction.EditModeFull, session.View().Mode)
}
