package monitor

import (
	"sync"
	"time"
)

// State is the single owner of the system status and the device registry.
//
// Both the ingest path (broker message handler goroutines) and the chat
// command handlers go through its accessors; nothing else holds a reference
// to the underlying maps. All methods are safe for concurrent use.
type State struct {
	mu sync.RWMutex

	lastUpdate  time.Time
	hasUpdate   bool
	temperature *float64
	smokeLevel  *float64
	alarmActive bool

	notificationsEnabled bool

	// devices is keyed by device ID, one entry per device,
	// create-or-overwrite, never pruned.
	devices map[string]Reading
}

// NewState creates an empty State with notifications enabled.
func NewState() *State {
	return &State{
		notificationsEnabled: true,
		devices:              make(map[string]Reading),
	}
}

// Apply records a decoded sensor reading.
//
// It overwrites the registry entry for the device and replaces the top-level
// status fields from the same payload. The returned notify flag is true when
// the reading carries an active alarm and notifications are enabled at the
// time of the update; the caller dispatches synchronously on it.
func (s *State) Apply(deviceID string, temperature, smokeLevel *float64, alarm bool, at time.Time) (notify bool) {
	if deviceID == "" {
		deviceID = UnknownDeviceID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.devices[deviceID] = Reading{
		DeviceID:    deviceID,
		Temperature: temperature,
		SmokeLevel:  smokeLevel,
		LastSeen:    at,
	}

	s.lastUpdate = at
	s.hasUpdate = true
	s.temperature = temperature
	s.smokeLevel = smokeLevel
	s.alarmActive = alarm

	return alarm && s.notificationsEnabled
}

// Snapshot returns a copy of the current status.
//
// The devices map and the numeric pointers are cloned, so callers can hold
// or mutate the snapshot without affecting the live state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	devices := make(map[string]Reading, len(s.devices))
	for id, r := range s.devices {
		r.Temperature = clonePtr(r.Temperature)
		r.SmokeLevel = clonePtr(r.SmokeLevel)
		devices[id] = r
	}

	return Snapshot{
		LastUpdate:           s.lastUpdate,
		HasUpdate:            s.hasUpdate,
		Temperature:          clonePtr(s.temperature),
		SmokeLevel:           clonePtr(s.smokeLevel),
		AlarmActive:          s.alarmActive,
		NotificationsEnabled: s.notificationsEnabled,
		Devices:              devices,
	}
}

// ToggleNotifications flips alert delivery on or off and returns the new state.
// Toggling twice restores the original state.
func (s *State) ToggleNotifications() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationsEnabled = !s.notificationsEnabled
	return s.notificationsEnabled
}

// NotificationsEnabled reports whether alert delivery is currently on.
func (s *State) NotificationsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notificationsEnabled
}

// DeviceCount returns the number of registry entries.
func (s *State) DeviceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.devices)
}

// clonePtr copies a float pointer so snapshots do not alias live state.
func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
