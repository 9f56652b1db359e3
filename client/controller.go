package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kabili207/ftms-go/core"
	"github.com/kabili207/ftms-go/core/models"
)

// DefaultTimeout bounds a control operation (write plus the await of its
// response indication) when the config does not override it.
const DefaultTimeout = 2 * time.Second

// Controller drives the control point protocol and translates machine
// status and training status notifications into events.
//
// Control requests require authorization: the first command of a session
// transparently issues REQUEST_CONTROL, and a LOST_CONTROL status silently
// clears the flag so the next command re-authorizes. One request may be in
// flight at a time; concurrent callers must serialise.
type Controller struct {
	t       Transport
	cb      Callback
	log     *slog.Logger
	timeout time.Duration

	mu         sync.Mutex
	subscribed bool
	auth       bool
	indicate   chan []byte
	done       chan struct{}
}

// NewController creates a controller bound to a transport. A zero timeout
// falls back to DefaultTimeout; a nil logger to slog.Default().
func NewController(t Transport, cb Callback, timeout time.Duration, logger *slog.Logger) *Controller {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		t:       t,
		cb:      cb,
		log:     logger.WithGroup("controller"),
		timeout: timeout,
	}
}

// Subscribe enables the machine status, control point indication and
// training status subscriptions. Idempotent. The training status
// characteristic, when present, is read once before notifications start.
func (c *Controller) Subscribe(ctx context.Context) error {
	c.mu.Lock()
	if c.subscribed {
		c.mu.Unlock()
		return nil
	}
	if c.done == nil {
		c.done = make(chan struct{})
	}
	c.mu.Unlock()

	if c.t.HasCharacteristic(core.CharTrainingStatus) {
		if data, err := c.t.Read(ctx, core.CharTrainingStatus); err == nil {
			c.handleTrainingStatus(data)
		}
		if err := c.t.Subscribe(ctx, core.CharTrainingStatus, c.handleTrainingStatus); err != nil {
			return err
		}
	}
	if c.t.HasCharacteristic(core.CharMachineStatus) {
		if err := c.t.Subscribe(ctx, core.CharMachineStatus, c.handleMachineStatus); err != nil {
			return err
		}
	}
	if c.t.HasCharacteristic(core.CharControlPoint) {
		if err := c.t.Subscribe(ctx, core.CharControlPoint, c.handleIndicate); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.subscribed = true
	c.mu.Unlock()
	return nil
}

// Reset clears the session state: authorization, subscriptions and any
// pending indication wait. Called on disconnect.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.subscribed = false
	c.auth = false
	c.indicate = nil
	done := c.done
	c.done = nil
	c.mu.Unlock()

	if done != nil {
		close(done)
	}
}

// WriteCommand issues one control request and awaits its response
// indication, both bounded by the controller timeout. A non-SUCCESS result
// is returned as a value; transport failures, timeout and disconnection
// are errors.
func (c *Controller) WriteCommand(ctx context.Context, req models.ControlRequest) (models.ResultCode, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.writeCommand(ctx, req)
}

func (c *Controller) writeCommand(ctx context.Context, req models.ControlRequest) (models.ResultCode, error) {
	c.mu.Lock()
	auth := c.auth
	c.mu.Unlock()

	// Auto-request control, bounded by the same deadline.
	if !auth && req.Code != models.ControlRequestControl {
		result, err := c.writeCommand(ctx, models.ControlRequest{Code: models.ControlRequestControl})
		if err != nil {
			return 0, err
		}
		if result != models.ResultSuccess {
			return result, nil
		}
	}

	if err := c.Subscribe(ctx); err != nil {
		return 0, err
	}

	payload, err := req.Encode()
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	ind := make(chan []byte, 1)
	c.indicate = ind
	done := c.done
	c.mu.Unlock()

	if err := c.t.Write(ctx, core.CharControlPoint, payload); err != nil {
		c.Reset()
		return 0, fmt.Errorf("writing control point: %w", err)
	}

	var resp []byte
	select {
	case resp = <-ind:
	case <-done:
		return 0, ErrDisconnected
	case <-ctx.Done():
		c.mu.Lock()
		if c.indicate == ind {
			c.indicate = nil
		}
		c.auth = false
		c.mu.Unlock()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, ErrTimeout
		}
		return 0, ctx.Err()
	}

	indication, err := models.DecodeControlIndication(resp)
	if err != nil {
		return 0, err
	}
	if indication.RequestCode != req.Code {
		return 0, fmt.Errorf("%w: sent %s, indicated %s", ErrProtocol, req.Code, indication.RequestCode)
	}
	if indication.Result != models.ResultSuccess {
		return indication.Result, nil
	}

	return models.ResultSuccess, c.completeRequest(req, indication)
}

// completeRequest updates controller state and synthesises the event for
// a successfully indicated request.
func (c *Controller) completeRequest(req models.ControlRequest, indication models.ControlIndication) error {
	switch req.Code {
	case models.ControlRequestControl:
		c.mu.Lock()
		c.auth = true
		c.mu.Unlock()
		return nil

	case models.ControlReset:
		c.mu.Lock()
		c.auth = false
		c.mu.Unlock()
		c.cb(ControlEvent{ID: ControlReset, Source: SourceCallback})
		return nil

	case models.ControlStartResume:
		c.cb(ControlEvent{ID: ControlStart, Source: SourceCallback})
		return nil

	case models.ControlStopPause:
		id := ControlStop
		if req.Param == models.StopPausePause {
			id = ControlPause
		}
		c.cb(ControlEvent{ID: id, Source: SourceCallback})
		return nil

	case models.ControlSpinDown:
		speed, err := models.DecodeSpinDownSpeed(indication.Params)
		if err != nil {
			return err
		}
		code, _ := req.Param.(models.SpinDownControlCode)
		c.cb(SpinDownEvent{Code: code, TargetSpeed: speed})
		return nil
	}

	if name, ok := req.ParamField(); ok {
		c.cb(SetupEvent{Source: SourceCallback, Name: name, Value: req.Param})
	}
	return nil
}

// handleIndicate completes the pending indication wait, if any.
func (c *Controller) handleIndicate(data []byte) {
	c.mu.Lock()
	ind := c.indicate
	c.indicate = nil
	c.mu.Unlock()

	if ind != nil {
		ind <- data
	}
}

// handleMachineStatus translates a machine status notification into an
// event. LOST_CONTROL is a silent state transition: the next command
// transparently re-authorizes.
func (c *Controller) handleMachineStatus(data []byte) {
	status, err := models.DecodeMachineStatus(data)
	if err != nil {
		c.log.Warn("dropping bad machine status", "err", err)
		return
	}

	switch status.Code {
	case models.StatusLostControl:
		c.mu.Lock()
		c.auth = false
		c.mu.Unlock()
		return

	case models.StatusReset:
		c.mu.Lock()
		c.auth = false
		c.mu.Unlock()
		c.cb(ControlEvent{ID: ControlReset, Source: SourceOther})
		return

	case models.StatusStopPause:
		id := ControlStop
		if status.Value == models.StopPausePause {
			id = ControlPause
		}
		c.cb(ControlEvent{ID: id, Source: SourceUser})
		return

	case models.StatusStopSafety:
		c.cb(ControlEvent{ID: ControlStop, Source: SourceSafety})
		return

	case models.StatusStartResume:
		c.cb(ControlEvent{ID: ControlStart, Source: SourceUser})
		return

	case models.StatusSpinDown:
		phase, _ := status.Value.(models.SpinDownStatusCode)
		c.cb(SpinDownEvent{Status: phase})
		return
	}

	if status.FieldName != "" {
		c.cb(SetupEvent{Source: SourceOther, Name: status.FieldName, Value: status.Value})
	}
}

// handleTrainingStatus translates a training status read or notification
// into an event.
func (c *Controller) handleTrainingStatus(data []byte) {
	status, err := models.DecodeTrainingStatus(data)
	if err != nil {
		c.log.Warn("dropping bad training status", "err", err)
		return
	}
	c.cb(TrainingStatusEvent{Code: status.Code, Text: status.Text, HasText: status.HasText})
}
