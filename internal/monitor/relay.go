package monitor

import (
	"fmt"

	"github.com/arlenmoss/emberwatch/internal/infrastructure/config"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/mqtt"
)

// Command tokens understood by the devices on the control topic.
// Transported as plain text, not JSON.
const (
	// CommandUpdate asks devices to publish a fresh reading.
	CommandUpdate = "UPDATE"

	// CommandTestAlarm asks devices to raise a test alarm.
	CommandTestAlarm = "TEST_ALARM"
)

// publishFunc matches mqtt.PublishOnce; injectable for tests.
type publishFunc func(cfg config.MQTTConfig, auth config.MQTTAuthConfig, clientID, topic string, payload []byte, qos byte) error

// Relay publishes operator commands to the control topic.
//
// Each Send opens a fresh write-scoped connection, publishes once at the
// configured QoS, and disconnects. There is no persistent connection and no
// delivery confirmation beyond the publish acknowledgment; failures are
// reported to the caller, not retried.
type Relay struct {
	cfg      config.MQTTConfig
	clientID string
	logger   Logger
	publish  publishFunc
}

// NewRelay creates a Relay using the write-scoped credential pair from cfg.
// The clientID identifies the short-lived connections on the broker.
func NewRelay(cfg config.MQTTConfig, clientID string) *Relay {
	return &Relay{
		cfg:      cfg,
		clientID: clientID,
		logger:   noopLogger{},
		publish:  mqtt.PublishOnce,
	}
}

// SetLogger sets the logger for the relay.
func (r *Relay) SetLogger(logger Logger) {
	r.logger = logger
}

// Send publishes a command token to the control topic.
//
// Only the known control vocabulary is accepted; devices ignore anything
// else, so an unknown token is a caller bug and is rejected locally.
func (r *Relay) Send(command string) error {
	switch command {
	case CommandUpdate, CommandTestAlarm:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}

	err := r.publish(
		r.cfg,
		r.cfg.WriteAuth,
		r.clientID,
		r.cfg.Topics.Control,
		[]byte(command),
		byte(r.cfg.QoS),
	)
	if err != nil {
		r.logger.Error("failed to send control command",
			"command", command,
			"error", err,
		)
		return fmt.Errorf("sending control command %q: %w", command, err)
	}

	r.logger.Info("control command sent", "command", command)
	return nil
}
