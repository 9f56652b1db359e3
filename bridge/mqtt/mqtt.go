// Package mqtt republishes the FTMS event stream to an MQTT broker.
//
// Events are published as JSON to "{prefix}/{machineID}/{event type}"
// topics, which makes a connected fitness machine consumable by gateway
// and home automation deployments without linking against this library.
package mqtt

import (
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kabili207/ftms-go/client"
	"github.com/kabili207/ftms-go/core/models"
)

const (
	// DefaultTopicPrefix is the default MQTT topic prefix for FTMS events.
	DefaultTopicPrefix = "ftms"

	// publishTimeout bounds a single publish.
	publishTimeout = 10 * time.Second
)

// Config holds the configuration for an MQTT bridge.
type Config struct {
	// Broker is the MQTT broker URL (e.g., "tcp://broker.example.com:1883").
	Broker string
	// Username for MQTT authentication. Leave empty if not required.
	Username string
	// Password for MQTT authentication. Leave empty if not required.
	Password string
	// UseTLS enables TLS for the MQTT connection.
	UseTLS bool
	// ClientID is the MQTT client identifier. If empty, a random one is generated.
	ClientID string
	// TopicPrefix is the MQTT topic prefix (default: "ftms").
	TopicPrefix string
	// MachineID identifies the machine in the topic hierarchy, typically
	// its BLE address.
	MachineID string
	// Logger is the logger to use. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Bridge publishes FTMS events to an MQTT broker.
type Bridge struct {
	cfg    Config
	log    *slog.Logger
	client paho.Client

	mu        sync.RWMutex
	connected bool
}

// New creates a new MQTT bridge with the given configuration.
func New(cfg Config) *Bridge {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = DefaultTopicPrefix
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Bridge{
		cfg: cfg,
		log: cfg.Logger.WithGroup("mqtt"),
	}
}

// Start connects to the MQTT broker.
func (b *Bridge) Start() error {
	if b.cfg.Broker == "" {
		return errors.New("broker URL is required")
	}
	if b.cfg.MachineID == "" {
		return errors.New("machine ID is required")
	}

	clientID := b.cfg.ClientID
	if clientID == "" {
		clientID = "ftms-" + randomString(16)
	}

	opts := paho.NewClientOptions().
		AddBroker(b.cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetMaxReconnectInterval(2 * time.Minute).
		SetKeepAlive(60 * time.Second).
		SetPingTimeout(10 * time.Second).
		SetCleanSession(true).
		SetOrderMatters(false).
		SetOnConnectHandler(b.onConnected).
		SetConnectionLostHandler(b.onConnectionLost)

	if b.cfg.Username != "" {
		opts.SetUsername(b.cfg.Username)
	}
	if b.cfg.Password != "" {
		opts.SetPassword(b.cfg.Password)
	}
	if b.cfg.UseTLS {
		opts.SetTLSConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
		})
	}

	b.client = paho.NewClient(opts)

	token := b.client.Connect()
	if !token.WaitTimeout(30 * time.Second) {
		return errors.New("connection timeout")
	}
	if token.Error() != nil {
		return fmt.Errorf("connecting to broker: %w", token.Error())
	}
	return nil
}

// Stop gracefully disconnects from the MQTT broker.
func (b *Bridge) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.client != nil {
		b.client.Disconnect(1000)
		b.connected = false
	}
	return nil
}

// IsConnected returns true if the bridge is connected to the broker.
func (b *Bridge) IsConnected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.connected && b.client != nil && b.client.IsConnected()
}

// Handler returns a session callback that publishes every event. Plug it
// into the machine Config, or chain it from an existing callback.
func (b *Bridge) Handler() client.Callback {
	return func(e client.Event) {
		if err := b.Publish(e); err != nil {
			b.log.Debug("failed to publish event", "type", e.Type(), "error", err)
		}
	}
}

// Publish publishes one event to its topic.
func (b *Bridge) Publish(e client.Event) error {
	if !b.IsConnected() {
		return errors.New("not connected")
	}

	payload, err := json.Marshal(eventBody(e))
	if err != nil {
		return err
	}
	topic := b.cfg.TopicPrefix + "/" + b.cfg.MachineID + "/" + e.Type()

	token := b.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return errors.New("timeout publishing to MQTT")
	}
	return token.Error()
}

// eventBody flattens an event into its JSON shape.
func eventBody(e client.Event) map[string]any {
	body := map[string]any{"event": e.Type()}
	switch ev := e.(type) {
	case client.UpdateEvent:
		for k, v := range ev.Data {
			body[k] = jsonValue(v)
		}
	case client.SetupEvent:
		body["source"] = ev.Source.String()
		body[ev.Name] = jsonValue(ev.Value)
	case client.ControlEvent:
		body["source"] = ev.Source.String()
	case client.TrainingStatusEvent:
		body["code"] = ev.Code.String()
		if ev.HasText {
			body["text"] = ev.Text
		}
	case client.SpinDownEvent:
		if ev.Code != 0 {
			body["code"] = ev.Code.String()
		}
		if ev.Status != 0 {
			body["status"] = ev.Status.String()
		}
		if ev.TargetSpeed != nil {
			body["target_speed_low"] = ev.TargetSpeed.Low
			body["target_speed_high"] = ev.TargetSpeed.High
		}
	}
	return body
}

// jsonValue lowers typed event values to JSON-friendly kinds.
func jsonValue(v any) any {
	switch x := v.(type) {
	case fmt.Stringer:
		return x.String()
	case models.IndoorBikeSimulation:
		return map[string]any{
			"wind_speed":         x.WindSpeed,
			"grade":              x.Grade,
			"rolling_resistance": x.RollingResistance,
			"wind_resistance":    x.WindResistance,
		}
	default:
		return v
	}
}

func (b *Bridge) onConnected(_ paho.Client) {
	b.mu.Lock()
	b.connected = true
	b.mu.Unlock()
	b.log.Info("connected to MQTT broker", "broker", b.cfg.Broker)
}

func (b *Bridge) onConnectionLost(_ paho.Client, err error) {
	b.mu.Lock()
	b.connected = false
	b.mu.Unlock()
	b.log.Error("MQTT connection lost", "error", err)
}

func randomString(n int) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
