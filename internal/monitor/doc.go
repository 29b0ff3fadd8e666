// Package monitor implements the fire-monitoring bridge core: sensor
// ingestion, the shared status snapshot, alert fan-out, and the control
// command relay.
//
// # Architecture
//
//	sensor topic → Ingestor → State → Dispatcher → chat recipients
//	chat operator → Relay → control topic
//
// State is the single owner of the system status and the device registry.
// The broker delivers sensor messages on its own goroutines and the chat
// dispatcher runs handlers on another; both reach the shared data only
// through State's mutex-guarded accessors.
//
// # Delivery Semantics
//
// Every alarm-positive reading produces exactly one delivery attempt per
// recipient while notifications are enabled, and none while disabled. There
// is no debouncing, so a noisy sensor can trigger repeated alerts; operators
// use /toggle_alerts to silence the stream.
//
// Relay publishes are fire-and-forget over a dedicated write-scoped
// connection per call. A failure is reported to the invoking command and not
// retried.
package monitor
