// Package bot implements the Telegram command surface of the fire-monitoring
// bridge.
//
// The bot long-polls the Telegram API and dispatches two classes of commands:
//
//   - Public: /start and /help, which any user may invoke. The reply carries
//     an inline keyboard whose buttons route to gated handlers.
//   - Gated: /status, /update, /toggle_alerts, /devices, /system_info and
//     /test_alarm, which pass through a single allow-list middleware before
//     reaching their handlers. Unauthorized invocations receive a fixed
//     denial and cause no state change.
//
// The Bot also implements monitor.Sender, so the alert dispatcher delivers
// alarm notifications through the same Telegram session.
//
// Authorization is a static allow-list of Telegram user IDs loaded from
// configuration at startup. There is no role hierarchy and no runtime
// mutation of the list.
package bot
