package bot

import (
	"fmt"
	"strings"
)

// welcomeMessage builds the /start and /help reply.
func (b *Bot) welcomeMessage() string {
	var sb strings.Builder
	sb.WriteString("🔥 *Fire Monitoring System* 🔥\n\n")
	sb.WriteString("Available commands:\n")
	sb.WriteString("/status - Show current system status\n")
	sb.WriteString("/update - Request fresh readings from devices\n")
	sb.WriteString("/toggle\\_alerts - Enable or disable alarm notifications\n")
	sb.WriteString("/devices - List known devices\n")
	sb.WriteString("/system\\_info - Show connection details\n")
	sb.WriteString("/test\\_alarm - Trigger a device alarm test\n")
	return sb.String()
}

// systemInfoMessage reports broker and topic configuration along with the
// current device count.
func (b *Bot) systemInfoMessage() string {
	var sb strings.Builder
	sb.WriteString("*🖥 System Information*\n\n")
	sb.WriteString(fmt.Sprintf("▸ Broker: `%s:%d`\n", b.cfg.MQTT.Broker.Host, b.cfg.MQTT.Broker.Port))
	sb.WriteString(fmt.Sprintf("▸ Sensor topic: `%s`\n", b.cfg.MQTT.Topics.Sensor))
	sb.WriteString(fmt.Sprintf("▸ Control topic: `%s`\n", b.cfg.MQTT.Topics.Control))
	sb.WriteString(fmt.Sprintf("▸ Read user: `%s`\n", orAnonymous(b.cfg.MQTT.ReadAuth.Username)))
	sb.WriteString(fmt.Sprintf("▸ Write user: `%s`\n", orAnonymous(b.cfg.MQTT.WriteAuth.Username)))
	sb.WriteString(fmt.Sprintf("▸ Devices seen: `%d`\n", b.state.DeviceCount()))
	return sb.String()
}

// toggleMessage reports the new notification state.
func toggleMessage(enabled bool) string {
	if enabled {
		return "🔔 Alarm notifications enabled"
	}
	return "🔕 Alarm notifications disabled"
}

func orAnonymous(username string) string {
	if username == "" {
		return "anonymous"
	}
	return username
}
