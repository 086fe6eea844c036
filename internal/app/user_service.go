package app

import (
	"context"
	"time"

	"troffee-admin-console/internal/domain/shared"
	"troffee-admin-console/internal/domain/user"
	"troffee-admin-console/internal/ports/inbound"
	"troffee-admin-console/internal/ports/outbound"

	"code.cloudfoundry.org/clock"
	"github.com/rs/zerolog"
)

// UserService implements inbound.UserService
type UserService struct {
	api      outbound.UserAPI
	notifier outbound.Notifier
	clock    clock.Clock
	debounce time.Duration
	pageSize int
	logger   zerolog.Logger
}
type UserServiceParams struct {
	API      outbound.UserAPI
	Notifier outbound.Notifier
	Clock    clock.Clock
	Debounce time.Duration
	PageSize int
	Logger   zerolog.Logger
}

// NewUserService creates a new user service
func NewUserService(params UserServiceParams) *UserService {
	clk := params.Clock
	if clk == nil {
		clk = clock.NewClock()
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = user.DefaultPageSize
	}
	return &UserService{
		api:      params.API,
		notifier: params.Notifier,
		clock:    clk,
		debounce: params.Debounce,
		pageSize: pageSize,
		logger:   params.Logger.With().Str("component", "user_service").Logger(),
	}
}

// List retrieves one page of users with its stats
func (service *UserService) List(ctx context.Context, query user.ListQuery) (*inbound.PageView, error) {
	query = service.normalize(query)

	page, err := service.api.ListUsers(ctx, query)
	if err != nil {
		service.logger.Error().Err(err).
			Str("search", query.Search).
			Int("page", query.Page).
			Msg("Failed to list users")
		return nil, err
	}

	view := newPageView(query, page)
	return &view, nil
}

// Update validates and sends a profile update
func (service *UserService) Update(ctx context.Context, userID string, update user.Update) error {
	if userID == "" {
		return shared.ErrUserIDRequired
	}
	if err := update.Validate(); err != nil {
		service.logger.Warn().Err(err).Str("user_id", userID).Msg("Invalid user update")
		return err
	}

	if err := service.api.UpdateUser(ctx, userID, update); err != nil {
		service.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to update user")
		return err
	}

	service.logger.Info().Str("user_id", userID).Msg("User updated")
	service.publish(ctx, outbound.Event{Type: outbound.EventTypeUserUpdated, SubjectID: userID})
	return nil
}

// SetSuspended suspends or unsuspends a user
func (service *UserService) SetSuspended(ctx context.Context, userID string, suspended bool) error {
	if userID == "" {
		return shared.ErrUserIDRequired
	}

	call, eventType := service.api.UnsuspendUser, outbound.EventTypeUserUnsuspended
	if suspended {
		call, eventType = service.api.SuspendUser, outbound.EventTypeUserSuspended
	}

	if err := call(ctx, userID); err != nil {
		service.logger.Error().Err(err).
			Str("user_id", userID).
			Bool("suspended", suspended).
			Msg("Failed to change user suspension")
		return err
	}

	service.logger.Info().Str("user_id", userID).Bool("suspended", suspended).Msg("User suspension changed")
	service.publish(ctx, outbound.Event{Type: eventType, SubjectID: userID})
	return nil
}

// NewConsole opens a user console that pushes every applied page to sink
func (service *UserService) NewConsole(sink inbound.PageSink) inbound.UserConsole {
	return newUserConsole(service, sink)
}

func (service *UserService) normalize(query user.ListQuery) user.ListQuery {
	if query.PageSize <= 0 {
		query.PageSize = service.pageSize
	}
	return query.Normalize()
}

func (service *UserService) publish(ctx context.Context, event outbound.Event) {
	if service.notifier == nil {
		return
	}
	if err := service.notifier.Publish(ctx, event); err != nil {
		service.logger.Error().Err(err).
			Str("event_type", string(event.Type)).
			Str("subject_id", event.SubjectID).
			Msg("Failed to publish event")
	}
}

func newPageView(query user.ListQuery, page *user.Page) inbound.PageView {
	users := page.Users
	if users == nil {
		users = []user.User{}
	}
	return inbound.PageView{
		Search:     query.Search,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: user.TotalPages(page.Total, query.PageSize),
		Users:      users,
		Stats:      user.ComputeStats(*page),
	}
}
