package monitor

import "time"

// UnknownDeviceID is the registry key used when a sensor payload carries no
// device identifier. Subsequent anonymous readings overwrite the same entry.
const UnknownDeviceID = "unknown"

// Reading is the last-known telemetry for one device.
//
// Temperature and SmokeLevel are nil when the device did not report them;
// formatting renders nil as "N/A". Entries are overwritten on every new
// message for the device and never deleted while the process runs.
type Reading struct {
	DeviceID    string    `json:"device_id"`
	Temperature *float64  `json:"temperature,omitempty"`
	SmokeLevel  *float64  `json:"smoke,omitempty"`
	LastSeen    time.Time `json:"last_seen"`
}

// Snapshot is a point-in-time copy of the system status.
//
// The top-level Temperature/SmokeLevel/AlarmActive reflect the most recently
// ingested message regardless of which device sent it (last writer wins
// globally, not per device).
type Snapshot struct {
	LastUpdate           time.Time
	HasUpdate            bool
	Temperature          *float64
	SmokeLevel           *float64
	AlarmActive          bool
	NotificationsEnabled bool
	Devices              map[string]Reading
}

// Alert describes one alarm-positive reading to be delivered to recipients.
type Alert struct {
	DeviceID    string
	Temperature *float64
	SmokeLevel  *float64
	At          time.Time
}

// sensorPayload is the wire shape on the sensor topic.
// Every field is optional; absent numeric fields stay nil and an absent
// alarm flag defaults to false.
type sensorPayload struct {
	DeviceID    *string  `json:"device_id"`
	Temperature *float64 `json:"temperature"`
	Smoke       *float64 `json:"smoke"`
	Alarm       *bool    `json:"alarm"`
}

// Logger defines the logging interface used by this package.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
