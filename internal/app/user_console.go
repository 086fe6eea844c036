package app

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"troffee-admin-console/internal/domain/shared"
	"troffee-admin-console/internal/domain/user"
	"troffee-admin-console/internal/metrics"
	"troffee-admin-console/internal/ports/inbound"

	"github.com/rs/zerolog"
)

// userConsole holds the state of one user-management screen. Queries are numbered
// in dispatch order and a response is only applied when it is newer than the last
// applied one.
type userConsole struct {
	service   *UserService
	sink      inbound.PageSink
	debouncer *Debouncer
	ctx       context.Context
	cancel    context.CancelFunc

	mu         sync.Mutex
	search     string
	page       int
	dispatched uint64
	applied    uint64
	users      []user.User
	closed     bool

	busy   atomic.Bool
	logger zerolog.Logger
}

func newUserConsole(service *UserService, sink inbound.PageSink) *userConsole {
	ctx, cancel := context.WithCancel(context.Background())
	return &userConsole{
		service:   service,
		sink:      sink,
		debouncer: NewDebouncer(service.clock, service.debounce),
		ctx:       ctx,
		cancel:    cancel,
		page:      1,
		logger:    service.logger.With().Str("component", "user_console").Logger(),
	}
}

func (c *userConsole) SetSearch(search string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if strings.TrimSpace(search) != strings.TrimSpace(c.search) {
		c.page = 1
	}
	c.search = search
	c.mu.Unlock()

	c.debouncer.Trigger(c.dispatch)
}

func (c *userConsole) SetPage(page int) {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.page = page
	c.mu.Unlock()

	c.debouncer.Trigger(c.dispatch)
}

func (c *userConsole) Refresh() {
	c.debouncer.Cancel()
	c.dispatch()
}

func (c *userConsole) UpdateUser(ctx context.Context, userID string, update user.Update) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.busy.Store(false)

	if err := c.service.Update(ctx, userID, update); err != nil {
		return err
	}

	c.Refresh()
	return nil
}

func (c *userConsole) ToggleSuspend(ctx context.Context, userID string) error {
	if userID == "" {
		return shared.ErrUserIDRequired
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.busy.Store(false)

	target, ok := c.lookup(userID)
	if !ok {
		return shared.ErrUserNotOnPage
	}

	if err := c.service.SetSuspended(ctx, userID, !target.Suspended); err != nil {
		return err
	}

	c.Refresh()
	return nil
}

func (c *userConsole) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.debouncer.Cancel()
	c.cancel()
	c.logger.Debug().Msg("User console closed")
}

func (c *userConsole) begin() error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return shared.ErrSessionClosed
	}
	if !c.busy.CompareAndSwap(false, true) {
		return shared.ErrBusy
	}
	return nil
}

func (c *userConsole) lookup(userID string) (user.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, u := range c.users {
		if u.ID == userID {
			return u, true
		}
	}
	return user.User{}, false
}

// dispatch numbers a query for the current search and page and runs it in the background
func (c *userConsole) dispatch() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.dispatched++
	seq := c.dispatched
	query := user.ListQuery{Search: c.search, Page: c.page}
	c.mu.Unlock()

	go c.fetch(seq, query)
}

func (c *userConsole) fetch(seq uint64, query user.ListQuery) {
	view, err := c.service.List(c.ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if err != nil {
		// Only the latest query reports failures
		if seq != c.dispatched {
			return
		}
		// Older responses still in flight must not replace the failed newer query
		c.applied = seq
		c.logger.Warn().Err(err).Uint64("seq", seq).Msg("User query failed")
		c.sink(inbound.PageView{}, err)
		return
	}

	if seq <= c.applied {
		metrics.StaleResponsesDropped.Inc()
		c.logger.Debug().
			Uint64("seq", seq).
			Uint64("applied", c.applied).
			Msg("Dropping stale user page")
		return
	}

	c.applied = seq
	c.users = view.Users
	view.Seq = seq
	c.sink(*view, nil)
}
