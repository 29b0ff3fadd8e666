package monitor

import (
	"encoding/json"
	"fmt"
	"time"
)

// Ingestor decodes sensor topic messages into the shared State and triggers
// alert dispatch for alarm-positive readings.
//
// Handle matches the mqtt.MessageHandler signature so the ingestor can be
// subscribed directly. Decode failures skip the update and surface as an
// error for the subscriber's logging; they never crash the ingest loop.
type Ingestor struct {
	state      *State
	dispatcher *Dispatcher
	logger     Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewIngestor creates an Ingestor bound to the shared state.
// The dispatcher may be nil, in which case alarm readings only update state.
func NewIngestor(state *State, dispatcher *Dispatcher) *Ingestor {
	return &Ingestor{
		state:      state,
		dispatcher: dispatcher,
		logger:     noopLogger{},
		now:        time.Now,
	}
}

// SetLogger sets the logger for the ingestor.
func (i *Ingestor) SetLogger(logger Logger) {
	i.logger = logger
}

// Handle processes one raw sensor message.
//
// Payload fields are all optional: a missing device_id falls back to the
// shared "unknown" registry key, missing numbers stay unknown, and a missing
// alarm flag means no alarm. When the applied reading has an active alarm
// and notifications are enabled, the dispatcher runs synchronously before
// Handle returns.
func (i *Ingestor) Handle(_ string, payload []byte) error {
	var msg sensorPayload
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	deviceID := UnknownDeviceID
	if msg.DeviceID != nil && *msg.DeviceID != "" {
		deviceID = *msg.DeviceID
	}

	alarm := msg.Alarm != nil && *msg.Alarm
	at := i.now()

	notify := i.state.Apply(deviceID, msg.Temperature, msg.Smoke, alarm, at)

	i.logger.Debug("sensor reading applied",
		"device_id", deviceID,
		"alarm", alarm,
		"notify", notify,
	)

	if notify && i.dispatcher != nil {
		i.dispatcher.Dispatch(Alert{
			DeviceID:    deviceID,
			Temperature: msg.Temperature,
			SmokeLevel:  msg.Smoke,
			At:          at,
		})
	}

	return nil
}
