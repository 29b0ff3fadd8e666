package monitor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// timestampLayout is the human-readable timestamp format used in chat messages.
const timestampLayout = "2006-01-02 15:04:05"

// unknownValue is rendered for readings the device did not report.
const unknownValue = "N/A"

// FormatAlert renders one alarm notification in Telegram Markdown.
func FormatAlert(alert Alert) string {
	var b strings.Builder
	b.WriteString("🚨 *Fire Alarm Triggered!* 🚨\n\n")
	fmt.Fprintf(&b, "▸ Device: `%s`\n", alert.DeviceID)
	fmt.Fprintf(&b, "▸ Temperature: `%s℃`\n", formatValue(alert.Temperature))
	fmt.Fprintf(&b, "▸ Smoke: `%s%%`\n", formatValue(alert.SmokeLevel))
	fmt.Fprintf(&b, "▸ Time: `%s`", alert.At.Format(timestampLayout))
	return b.String()
}

// FormatStatus renders the system status overview shown by /status.
func FormatStatus(s Snapshot) string {
	var b strings.Builder
	b.WriteString("System Status Overview\n\n")
	fmt.Fprintf(&b, "▸ Last update: `%s`\n", formatTimestamp(s.LastUpdate, s.HasUpdate))
	fmt.Fprintf(&b, "▸ Current temperature: `%s℃`\n", formatValue(s.Temperature))
	fmt.Fprintf(&b, "▸ Smoke concentration: `%s%%`\n", formatValue(s.SmokeLevel))
	fmt.Fprintf(&b, "▸ Alarm status: `%s`\n", alarmLabel(s.AlarmActive))
	fmt.Fprintf(&b, "▸ Notification status: `%s`", notificationLabel(s.NotificationsEnabled))

	if len(s.Devices) > 0 {
		b.WriteString("\n\n*📡 Connected Devices:*")
		for _, id := range sortedDeviceIDs(s.Devices) {
			r := s.Devices[id]
			fmt.Fprintf(&b, "\n├─ `%s` | %s℃ | %s%%",
				id, formatValue(r.Temperature), formatValue(r.SmokeLevel))
		}
	}

	return b.String()
}

// FormatDevices renders the numbered device list shown by /devices.
// Returns an empty string when no devices have reported yet.
func FormatDevices(s Snapshot) string {
	if len(s.Devices) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Registered Devices List\n\n")
	for i, id := range sortedDeviceIDs(s.Devices) {
		r := s.Devices[id]
		fmt.Fprintf(&b, "%d. `%s`\n▸ Temperature: %s℃\n▸ Smoke: %s%%\n",
			i+1, id, formatValue(r.Temperature), formatValue(r.SmokeLevel))
	}
	return b.String()
}

// formatValue renders an optional reading, using the unknown sentinel for nil.
func formatValue(v *float64) string {
	if v == nil {
		return unknownValue
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// formatTimestamp renders a timestamp, using the unknown sentinel before the
// first reading arrives.
func formatTimestamp(t time.Time, has bool) string {
	if !has {
		return unknownValue
	}
	return t.Format(timestampLayout)
}

func alarmLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Normal"
}

func notificationLabel(enabled bool) string {
	if enabled {
		return "Enabled"
	}
	return "Disabled"
}

// sortedDeviceIDs returns registry keys in stable order for rendering.
func sortedDeviceIDs(devices map[string]Reading) []string {
	ids := make([]string, 0, len(devices))
	for id := range devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
