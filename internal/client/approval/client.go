// Package approval is the review-queue client used by manager and hr
// tooling. It polls the pending queue for one stage and keeps the last
// successfully fetched snapshot available between refreshes.
package approval

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/client/api"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/resignation"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/poller"
)

const DefaultPollInterval = 30 * time.Second

type Client struct {
	api    *api.Client
	stage  resignation.Stage
	poller *poller.Poller

	mu       sync.RWMutex
	queue    []resignation.Request
	lastSync time.Time
}

func NewClient(apiClient *api.Client, stage resignation.Stage, interval time.Duration) *Client {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	c := &Client{
		api:   apiClient,
		stage: stage,
	}
	c.poller = poller.New("approval-queue-"+string(stage), interval, c.Refresh)
	return c
}

// Start begins polling the pending queue. The first refresh runs
// immediately.
func (c *Client) Start(ctx context.Context) {
	c.poller.Start(ctx)
}

// Stop halts polling. No refresh fires after Stop returns.
func (c *Client) Stop() {
	c.poller.Stop()
}

// Refresh fetches the pending queue once. On failure the previous
// snapshot stays in place and the error is returned for the poller to log.
func (c *Client) Refresh(ctx context.Context) error {
	requests, err := c.api.Pending(ctx, c.stage)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.queue = requests
	c.lastSync = time.Now()
	c.mu.Unlock()
	return nil
}

// Queue returns the last successfully fetched pending requests.
func (c *Client) Queue() []resignation.Request {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]resignation.Request, len(c.queue))
	copy(out, c.queue)
	return out
}

// LastSync reports when the queue was last refreshed successfully.
func (c *Client) LastSync() (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSync, !c.lastSync.IsZero()
}

// Decide records a decision on a queued request. The note is checked
// locally first so an empty one never reaches the server. On success the
// request leaves the local queue at once instead of waiting for the next
// tick. A conflict or not-found answer means the local snapshot is stale,
// so those trigger an immediate refresh before the error is returned.
func (c *Client) Decide(ctx context.Context, requestID string, decision resignation.Decision, note string) (resignation.Request, error) {
	req := resignation.DecideRequest{
		RequestID: requestID,
		Stage:     c.stage,
		Decision:  decision,
		Note:      note,
	}
	if err := req.Validate(); err != nil {
		return resignation.Request{}, err
	}

	updated, err := c.api.Decide(ctx, req)
	if err != nil {
		if errors.Is(err, resignation.ErrStageAlreadyDecided) || errors.Is(err, resignation.ErrRequestNotFound) {
			// Someone else got there first; resync so the stale entry
			// disappears without waiting a full interval.
			_ = c.Refresh(ctx)
		}
		return resignation.Request{}, err
	}

	c.removeFromQueue(requestID)
	return updated, nil
}

func (c *Client) removeFromQueue(requestID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, r := range c.queue {
		if r.ID == requestID {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return
		}
	}
}
