package mqtt

import (
	"fmt"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/arlenmoss/emberwatch/internal/infrastructure/config"
)

// PublishOnce publishes a single message over a short-lived connection.
//
// It opens a fresh connection with the given credential pair, publishes once,
// and disconnects. The command relay uses this with the write-scoped pair so
// the write credentials never touch the persistent read-scoped subscriber;
// the reminder bot uses it with its single pair.
//
// Both the connect and the publish are bounded by explicit timeouts, so a
// hung broker cannot stall the caller indefinitely.
//
// Parameters:
//   - cfg: MQTT configuration (broker address, TLS)
//   - auth: Credential pair for this publish
//   - clientID: Client identifier for this short-lived connection
//   - topic: Topic to publish to
//   - payload: Message payload (plain text for control tokens)
//   - qos: Quality of Service level (0, 1, or 2)
//
// Returns:
//   - error: nil on success, or wrapped error describing the failure
func PublishOnce(cfg config.MQTTConfig, auth config.MQTTAuthConfig, clientID, topic string, payload []byte, qos byte) error {
	// Validate inputs
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}

	opts := buildClientOptions(cfg, auth, clientID)

	// One shot: no reconnect machinery, no LWT. If the publish fails the
	// caller is told and decides; there is nothing to restore.
	opts.SetAutoReconnect(false)
	opts.SetConnectRetry(false)

	client := pahomqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer client.Disconnect(defaultDisconnectQuiesce)

	pubToken := client.Publish(topic, qos, false, payload)
	if !pubToken.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := pubToken.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}
