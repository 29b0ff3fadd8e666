package bot

import (
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/arlenmoss/emberwatch/internal/monitor"
)

// Inline keyboard callback identifiers. Callback buttons route to the same
// gated handlers as the slash commands.
const (
	btnStatus     = "status"
	btnDevices    = "devices"
	btnUpdate     = "update"
	btnSystemInfo = "system_info"
)

// registerHandlers wires the public commands directly and everything else
// through the allow-list group.
func (b *Bot) registerHandlers() {
	b.tb.Handle("/start", b.handleWelcome)
	b.tb.Handle("/help", b.handleWelcome)

	gated := b.tb.Group()
	gated.Use(b.requireAuthorized)

	gated.Handle("/status", b.handleStatus)
	gated.Handle("/update", b.handleUpdate)
	gated.Handle("/toggle_alerts", b.handleToggleAlerts)
	gated.Handle("/devices", b.handleDevices)
	gated.Handle("/system_info", b.handleSystemInfo)
	gated.Handle("/test_alarm", b.handleTestAlarm)

	gated.Handle(&tele.Btn{Unique: btnStatus}, b.handleStatus)
	gated.Handle(&tele.Btn{Unique: btnDevices}, b.handleDevices)
	gated.Handle(&tele.Btn{Unique: btnUpdate}, b.handleUpdate)
	gated.Handle(&tele.Btn{Unique: btnSystemInfo}, b.handleSystemInfo)
}

// handleWelcome serves /start and /help for any user. The inline keyboard
// shortcuts still pass through the capability check when pressed.
func (b *Bot) handleWelcome(c tele.Context) error {
	menu := &tele.ReplyMarkup{}
	rowStatus := menu.Row(
		menu.Data("📊 Status", btnStatus),
		menu.Data("📟 Devices", btnDevices),
	)
	rowOps := menu.Row(
		menu.Data("🔄 Update", btnUpdate),
		menu.Data("ℹ️ System Info", btnSystemInfo),
	)
	menu.Inline(rowStatus, rowOps)

	return c.Send(b.welcomeMessage(), menu, tele.ModeMarkdown)
}

// handleStatus replies with the current status overview snapshot.
func (b *Bot) handleStatus(c tele.Context) error {
	if err := b.ackCallback(c); err != nil {
		return err
	}
	return c.Send(monitor.FormatStatus(b.state.Snapshot()), tele.ModeMarkdown)
}

// handleUpdate publishes the refresh command, waits a short window for
// devices to report, then re-displays the status.
func (b *Bot) handleUpdate(c tele.Context) error {
	if err := b.ackCallback(c); err != nil {
		return err
	}
	if err := b.relay.Send(monitor.CommandUpdate); err != nil {
		b.logger.Error("update command publish failed", "error", err)
		return c.Send("Command failed to send, please check MQTT connection")
	}
	if err := c.Send("System update command sent, fetching latest data..."); err != nil {
		return err
	}
	time.Sleep(b.updateDelay)
	return c.Send(monitor.FormatStatus(b.state.Snapshot()), tele.ModeMarkdown)
}

// handleToggleAlerts flips the global notification switch.
func (b *Bot) handleToggleAlerts(c tele.Context) error {
	enabled := b.state.ToggleNotifications()
	b.logger.Info("alert notifications toggled", "enabled", enabled)
	return c.Send(toggleMessage(enabled))
}

// handleDevices lists every device that has ever reported.
func (b *Bot) handleDevices(c tele.Context) error {
	if err := b.ackCallback(c); err != nil {
		return err
	}
	listing := monitor.FormatDevices(b.state.Snapshot())
	if listing == "" {
		return c.Send("No devices have reported yet")
	}
	return c.Send(listing, tele.ModeMarkdown)
}

// handleSystemInfo echoes broker connection details. The content is
// sensitive, which is why the handler sits behind the allow-list.
func (b *Bot) handleSystemInfo(c tele.Context) error {
	if err := b.ackCallback(c); err != nil {
		return err
	}
	return c.Send(b.systemInfoMessage(), tele.ModeMarkdown)
}

// handleTestAlarm publishes the alarm simulation command.
func (b *Bot) handleTestAlarm(c tele.Context) error {
	if err := b.relay.Send(monitor.CommandTestAlarm); err != nil {
		b.logger.Error("test alarm publish failed", "error", err)
		return c.Send("Command failed to send, please check MQTT connection")
	}
	return c.Send("Test alarm command sent to devices")
}

// ackCallback answers the callback query so the client stops showing the
// loading spinner. No-op for plain messages.
func (b *Bot) ackCallback(c tele.Context) error {
	if c.Callback() == nil {
		return nil
	}
	return c.Respond()
}
