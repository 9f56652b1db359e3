package client

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kabili207/ftms-go/core"
	"github.com/kabili207/ftms-go/core/models"
)

// Updater parses realtime data notifications, reassembles More Data
// continuations and emits delta update events.
//
// Records accumulate into cur until a record with More Data clear closes
// the sequence. A closed accumulation that holds only zero values is
// dropped: machines emit streams of null records around sleep and wakeup.
// Otherwise the delta against the previously emitted snapshot is emitted
// as an UpdateEvent and the snapshot advances.
type Updater struct {
	model *models.RealtimeModel
	cb    Callback
	log   *slog.Logger

	mu   sync.Mutex
	cur  map[string]any
	prev map[string]any
}

// NewUpdater creates an updater for one machine's realtime data model.
// A nil logger falls back to slog.Default().
func NewUpdater(model *models.RealtimeModel, cb Callback, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{
		model: model,
		cb:    cb,
		log:   logger.WithGroup("updater"),
		cur:   make(map[string]any),
		prev:  make(map[string]any),
	}
}

// Reset clears the accumulator and the emitted snapshot. Called on
// disconnect.
func (u *Updater) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	clear(u.cur)
	clear(u.prev)
}

// Subscribe resets state and enables notifications on the realtime data
// characteristic.
func (u *Updater) Subscribe(ctx context.Context, t Transport, uuid uint16) error {
	u.Reset()
	return t.Subscribe(ctx, uuid, u.handleNotify)
}

// Unsubscribe disables the notification subscription and resets state.
func (u *Updater) Unsubscribe(ctx context.Context, t Transport, uuid uint16) error {
	u.Reset()
	return t.Unsubscribe(ctx, uuid)
}

func (u *Updater) handleNotify(data []byte) {
	fields, moreData, err := u.model.Decode(data)
	if err != nil {
		u.log.Warn("dropping bad realtime record", "model", u.model.Name(), "err", err)
		return
	}

	u.mu.Lock()
	for k, v := range fields {
		u.cur[k] = v
	}

	if moreData {
		u.mu.Unlock()
		return
	}

	delta := u.closeRecord()
	u.mu.Unlock()

	if len(delta) > 0 {
		u.cb(UpdateEvent{Data: delta})
	}
}

// closeRecord finishes the current accumulation: applies the null-record
// filter, computes the delta against the emitted snapshot and advances it.
// Caller holds mu.
func (u *Updater) closeRecord() map[string]any {
	defer clear(u.cur)

	live := false
	for _, v := range u.cur {
		if !isZeroValue(v) {
			live = true
			break
		}
	}
	if !live {
		return nil
	}

	var delta map[string]any
	for k, v := range u.cur {
		if p, ok := u.prev[k]; !ok || p != v {
			if delta == nil {
				delta = make(map[string]any)
			}
			delta[k] = v
		}
	}
	if delta == nil {
		return nil
	}

	clear(u.prev)
	for k, v := range u.cur {
		u.prev[k] = v
	}
	return delta
}

// isZeroValue reports whether a decoded field value is its type's zero.
func isZeroValue(v any) bool {
	switch x := v.(type) {
	case int64:
		return x == 0
	case float64:
		return x == 0
	case core.MovementDirection:
		return x == core.DirectionForward
	default:
		return v == nil
	}
}
