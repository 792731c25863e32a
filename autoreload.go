package songstore

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/egodevrjm/songstore/pkg/constants"
	"github.com/egodevrjm/songstore/pkg/errors"
	"github.com/egodevrjm/songstore/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoReloader = (*client)(nil)

// AutoReloader provides controls for periodic background reloads.
type AutoReloader interface {
	// AutoReloadOn begins periodic reloads if configured
	AutoReloadOn() error

	// AutoReloadOff stops periodic reloads
	AutoReloadOff() error
}

// AutoReloadOn begins periodic reloads if configured.
func (c *client) AutoReloadOn() error {
	if c.options.autoReloadInterval <= 0 {
		return &errors.ValidationError{
			Field:   "autoReloadInterval",
			Value:   c.options.autoReloadInterval,
			Message: "reload interval must be positive",
		}
	}

	// Stop any existing reload loop to prevent resource leaks
	if err := c.AutoReloadOff(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Recreate stopCh since it was closed in AutoReloadOff
	c.stopCh = make(chan struct{})
	c.reloadTicker = time.NewTicker(c.options.autoReloadInterval)

	ctx, cancel := context.WithCancel(context.Background())
	c.reloadCancel = cancel

	ticker := c.reloadTicker
	stop := c.stopCh
	go func(parentCtx context.Context) {
		for {
			select {
			case <-ticker.C:
				reloadCtx, reloadCancel := context.WithTimeout(parentCtx, constants.LoadTimeout)
				err := c.Reload(reloadCtx)
				reloadCancel()

				if err != nil {
					if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
						return
					}
					logging.Error().Err(err).Msg("Auto-reload failed")
				}
			case <-parentCtx.Done():
				return
			case <-stop:
				return
			}
		}
	}(ctx)

	return nil
}

// AutoReloadOff stops periodic reloads.
func (c *client) AutoReloadOff() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reloadTicker != nil {
		c.reloadTicker.Stop()
		c.reloadTicker = nil
	}
	if c.reloadCancel != nil {
		c.reloadCancel()
		c.reloadCancel = nil
	}
	select {
	case <-c.stopCh:
		// Already closed
	default:
		close(c.stopCh)
	}
	return nil
}
