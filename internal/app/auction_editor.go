package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"troffee-admin-console/internal/domain/auction"
	"troffee-admin-console/internal/domain/localtime"
	"troffee-admin-console/internal/domain/shared"
	"troffee-admin-console/internal/ports/inbound"
	"troffee-admin-console/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// AuctionEditorService implements inbound.AuctionEditor on top of the auction API
type AuctionEditorService struct {
	api       outbound.AuctionAPI
	notifier  outbound.Notifier
	converter *localtime.Converter
	logger    zerolog.Logger
}
type AuctionEditorServiceParams struct {
	API       outbound.AuctionAPI
	Notifier  outbound.Notifier
	Converter *localtime.Converter
	Logger    zerolog.Logger
}

// NewAuctionEditorService creates a new auction editor
func NewAuctionEditorService(params AuctionEditorServiceParams) *AuctionEditorService {
	converter := params.Converter
	if converter == nil {
		converter = localtime.NewConverter(time.UTC)
	}
	return &AuctionEditorService{
		api:       params.API,
		notifier:  params.Notifier,
		converter: converter,
		logger:    params.Logger.With().Str("component", "auction_editor").Logger(),
	}
}

// Open fetches the auction and starts an edit session for it
func (service *AuctionEditorService) Open(ctx context.Context, auctionID string) (inbound.EditSession, error) {
	if auctionID == "" {
		return nil, shared.ErrAuctionIDRequired
	}

	a, err := service.api.GetAuction(ctx, auctionID)
	if err != nil {
		service.logger.Error().Err(err).Str("auction_id", auctionID).Msg("Failed to load auction")
		return nil, err
	}

	service.logger.Debug().
		Str("auction_id", a.ID).
		Str("status", string(a.Status)).
		Msg("Edit session opened")

	return &editSession{
		service: service,
		auction: *a,
		logger:  service.logger.With().Str("auction_id", a.ID).Logger(),
	}, nil
}

type editSession struct {
	service *AuctionEditorService

	mu      sync.RWMutex
	auction auction.Auction

	busy   atomic.Bool
	closed atomic.Bool
	logger zerolog.Logger
}

func (s *editSession) View() inbound.EditView {
	s.mu.RLock()
	a := s.auction
	s.mu.RUnlock()

	a.Images = append([]string(nil), a.Images...)
	conv := s.service.converter

	return inbound.EditView{
		Auction:   a,
		Mode:      auction.ModeFor(a.Status),
		CanDelete: auction.CanDelete(a.Status),
		Timezone:  conv.Location().String(),
		Form: inbound.EditForm{
			Title:         a.Title,
			Category:      a.Category,
			Description:   a.Description,
			StartTime:     s.formTime(a.StartDate),
			EndTime:       s.formTime(a.EndDate),
			StartingPrice: a.StartingPrice,
			Currency:      a.Currency,
			Images:        a.Images,
			Video:         a.Video,
		},
	}
}

func (s *editSession) formTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return s.service.converter.ToLocalDateTimeString(t)
}

func (s *editSession) Submit(ctx context.Context, req auction.EditRequest) error {
	if s.closed.Load() {
		return shared.ErrSessionClosed
	}
	if !s.busy.CompareAndSwap(false, true) {
		return shared.ErrBusy
	}
	defer s.busy.Store(false)

	s.mu.RLock()
	current := s.auction
	s.mu.RUnlock()

	if req.IsEmpty() {
		return shared.ErrEmptyEdit
	}

	if auction.ModeFor(current.Status) == auction.EditModeReadOnly {
		s.logger.Warn().Str("status", string(current.Status)).Msg("Edit rejected, auction is read-only")
		return shared.ErrAuctionReadOnly
	}

	fields := req.Fields()
	if err := auction.AuthorizeEdit(current.Status, fields); err != nil {
		s.logger.Warn().Err(err).Str("status", string(current.Status)).Msg("Edit rejected by lifecycle policy")
		return err
	}

	switch current.Status {
	case auction.StatusUpcoming:
		return s.submitFull(ctx, current, req, fields)
	case auction.StatusActive:
		return s.submitEndTime(ctx, current, req)
	default:
		return shared.ErrAuctionReadOnly
	}
}

func (s *editSession) submitFull(ctx context.Context, current auction.Auction, req auction.EditRequest, fields []auction.Field) error {
	update := auction.NewFullUpdate(&current)

	if req.Title != nil {
		update.Title = *req.Title
	}
	if req.Category != nil {
		update.Category = *req.Category
	}
	if req.Description != nil {
		update.Description = *req.Description
	}
	if req.StartingPrice != nil {
		if *req.StartingPrice <= 0 {
			return shared.ErrInvalidPrice
		}
		update.StartingPrice = *req.StartingPrice
	}
	if req.Currency != nil {
		update.Currency = *req.Currency
	}
	if req.Images != nil {
		update.Images = req.Images
	}
	if req.Video != nil {
		update.Video = *req.Video
	}

	conv := s.service.converter
	if req.StartTime != nil {
		start, err := conv.ToAbsoluteInstant(*req.StartTime)
		if err != nil {
			return err
		}
		update.StartTime = start
	}
	if req.EndTime != nil {
		end, err := conv.ToAbsoluteInstant(*req.EndTime)
		if err != nil {
			return err
		}
		update.EndTime = end
	}

	if !update.EndTime.After(update.StartTime) {
		s.logger.Warn().
			Time("start_time", update.StartTime).
			Time("end_time", update.EndTime).
			Msg("End time must be after start time")
		return shared.ErrInvalidEndTime
	}

	if err := s.service.api.UpdateAuction(ctx, current.ID, update); err != nil {
		s.logger.Error().Err(err).Msg("Failed to update auction")
		return err
	}

	s.logger.Info().Interface("fields", fields).Msg("Auction updated")

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, string(f))
	}
	s.service.publish(ctx, outbound.Event{
		Type:      outbound.EventTypeAuctionUpdated,
		SubjectID: current.ID,
		Data:      map[string]interface{}{"fields": names},
	})

	if s.closed.Load() {
		return nil
	}
	s.mu.Lock()
	s.auction.Apply(update)
	s.mu.Unlock()
	return nil
}

func (s *editSession) submitEndTime(ctx context.Context, current auction.Auction, req auction.EditRequest) error {
	end, err := s.service.converter.ToAbsoluteInstant(*req.EndTime)
	if err != nil {
		return err
	}

	if !current.StartDate.IsZero() && !end.After(current.StartDate) {
		return shared.ErrInvalidEndTime
	}

	if err := s.service.api.UpdateAuctionEndTime(ctx, current.ID, end); err != nil {
		s.logger.Error().Err(err).Msg("Failed to update auction end time")
		return err
	}

	s.logger.Info().Time("end_time", end).Msg("Auction end time updated")

	s.service.publish(ctx, outbound.Event{
		Type:      outbound.EventTypeAuctionEndTimeUpdated,
		SubjectID: current.ID,
		Data:      map[string]interface{}{"endTime": localtime.FormatInstant(end)},
	})

	if s.closed.Load() {
		return nil
	}
	s.mu.Lock()
	s.auction.EndDate = end
	s.mu.Unlock()
	return nil
}

func (s *editSession) Delete(ctx context.Context) error {
	if s.closed.Load() {
		return shared.ErrSessionClosed
	}
	if !s.busy.CompareAndSwap(false, true) {
		return shared.ErrBusy
	}
	defer s.busy.Store(false)

	s.mu.RLock()
	id, status := s.auction.ID, s.auction.Status
	s.mu.RUnlock()

	if !auction.CanDelete(status) {
		return shared.ErrDeleteNotAllowed
	}

	if err := s.service.api.DeleteAuction(ctx, id); err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete auction")
		return err
	}

	s.logger.Info().Msg("Auction deleted")
	s.service.publish(ctx, outbound.Event{Type: outbound.EventTypeAuctionDeleted, SubjectID: id})
	s.closed.Store(true)
	return nil
}

func (s *editSession) Close() {
	s.closed.Store(true)
}

// publish notifies other screens. The change already happened, so a failure is only logged.
func (service *AuctionEditorService) publish(ctx context.Context, event outbound.Event) {
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
