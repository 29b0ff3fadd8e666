package mqtt

import (
	"fmt"
	"time"
)

// statusTopic is where each daemon publishes its own online/offline status.
// Retained so that new subscribers immediately see the last known state.
// The sensor, control, and reminder topics come from configuration; this one
// is fixed because it describes the daemons themselves rather than devices.
const statusTopic = "emberwatch/system/status"

// buildOnlinePayload creates the JSON payload for online status messages.
func buildOnlinePayload(clientID string) string {
	return fmt.Sprintf(
		`{"status":"online","client_id":"%s","timestamp":"%s"}`,
		clientID,
		time.Now().UTC().Format(time.RFC3339),
	)
}

// buildOfflinePayload creates the JSON payload for graceful offline status.
func buildOfflinePayload(clientID string) string {
	return fmt.Sprintf(
		`{"status":"offline","client_id":"%s","reason":"graceful_shutdown","timestamp":"%s"}`,
		clientID,
		time.Now().UTC().Format(time.RFC3339),
	)
}
