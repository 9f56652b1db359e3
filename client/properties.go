package client

import (
	"sync"

	"github.com/kabili207/ftms-go/core/models"
)

// Properties caches the session state accumulated from events: the latest
// realtime properties, the latest target settings, the last training
// status code, and the set of properties that have ever been live
// (non-zero) during the session.
type Properties struct {
	mu          sync.RWMutex
	props       map[string]any
	settings    map[string]any
	training    models.TrainingStatusCode
	hasTraining bool
	live        map[string]struct{}
}

// NewProperties creates an empty properties cache.
func NewProperties() *Properties {
	return &Properties{
		props:    make(map[string]any),
		settings: make(map[string]any),
		live:     make(map[string]struct{}),
	}
}

// Apply merges an event into the cache.
func (p *Properties) Apply(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev := e.(type) {
	case UpdateEvent:
		for k, v := range ev.Data {
			p.props[k] = v
			if !isZeroValue(v) {
				p.live[k] = struct{}{}
			}
		}
	case SetupEvent:
		p.settings[ev.Name] = ev.Value
	case TrainingStatusEvent:
		p.training = ev.Code
		p.hasTraining = true
	}
}

// Reset clears the cache. Called on disconnect.
func (p *Properties) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.props)
	clear(p.settings)
	clear(p.live)
	p.hasTraining = false
}

// Value returns the latest value of a realtime property.
func (p *Properties) Value(name string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.props[name]
	return v, ok
}

// Float returns a realtime property as a float64, converting integer
// valued properties.
func (p *Properties) Float(name string) (float64, bool) {
	v, ok := p.Value(name)
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

// Int returns a realtime property as an int64.
func (p *Properties) Int(name string) (int64, bool) {
	v, ok := p.Value(name)
	if !ok {
		return 0, false
	}
	x, ok := v.(int64)
	return x, ok
}

// All returns a copy of the latest realtime properties.
func (p *Properties) All() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]any, len(p.props))
	for k, v := range p.props {
		out[k] = v
	}
	return out
}

// Settings returns a copy of the latest target settings.
func (p *Properties) Settings() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]any, len(p.settings))
	for k, v := range p.settings {
		out[k] = v
	}
	return out
}

// TrainingStatus returns the last training status code, if one has been
// seen this session.
func (p *Properties) TrainingStatus() (models.TrainingStatusCode, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.training, p.hasTraining
}

// Live returns the names of properties that have reported a non-zero
// value at least once during the session.
func (p *Properties) Live() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.live))
	for k := range p.live {
		out = append(out, k)
	}
	return out
}
