// Package status is the employee self-view client. It polls the caller's
// own active request and serves the last-known snapshot between refreshes.
package status

import (
	"context"
	"sync"
	"time"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/client/api"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/resignation"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/poller"
)

const DefaultPollInterval = 30 * time.Second

type Client struct {
	api    *api.Client
	poller *poller.Poller

	mu       sync.RWMutex
	current  resignation.Request
	active   bool
	lastSync time.Time
}

func NewClient(apiClient *api.Client, interval time.Duration) *Client {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	c := &Client{api: apiClient}
	c.poller = poller.New("resignation-status", interval, c.Refresh)
	return c
}

// Start begins polling the caller's active request. The first refresh
// runs immediately.
func (c *Client) Start(ctx context.Context) {
	c.poller.Start(ctx)
}

// Stop halts polling. No refresh fires after Stop returns.
func (c *Client) Stop() {
	c.poller.Stop()
}

// Refresh fetches the active-request view once. On failure the previous
// snapshot stays in place and the error is returned for the poller to log.
func (c *Client) Refresh(ctx context.Context) error {
	status, err := c.api.ActiveStatus(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.active = status.Active
	if status.Request != nil {
		c.current = *status.Request
	} else {
		c.current = resignation.Request{}
	}
	c.lastSync = time.Now()
	c.mu.Unlock()
	return nil
}

// Current returns the last-known active request, if one exists.
func (c *Client) Current() (resignation.Request, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current, c.active
}

// Progress projects the last-known request onto the four display steps.
// An empty slice means no active request is known.
func (c *Client) Progress() []resignation.ProgressStep {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.active {
		return nil
	}
	return resignation.ProgressSteps(c.current)
}

// LastSync reports when the view was last refreshed successfully.
func (c *Client) LastSync() (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSync, !c.lastSync.IsZero()
}

// Submit files a new resignation request. The server owns the real
// single-active-request check; the client re-reads its view first so the
// common case fails fast without a doomed write.
func (c *Client) Submit(ctx context.Context, reason string) (resignation.Request, error) {
	if err := c.Refresh(ctx); err == nil {
		if _, active := c.Current(); active {
			return resignation.Request{}, resignation.ErrDuplicateActiveRequest
		}
	}

	created, err := c.api.Submit(ctx, resignation.SubmitRequest{Reason: reason})
	if err != nil {
		return resignation.Request{}, err
	}

	c.mu.Lock()
	c.current = created
	c.active = created.IsActive()
	c.lastSync = time.Now()
	c.mu.Unlock()
	return created, nil
}
