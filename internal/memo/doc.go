// Package memo implements the Telegram reminder bot.
//
// A reminder is collected over a two-question conversation: the bot first
// asks for a date (offering a one-tap keyboard of the next few days), then
// for the reminder text. The finished memo is published to the reminder
// topic as a single line:
//
//	YYYY/MM/DD:content
//
// with the date always zero-padded, so downstream consumers can parse the
// prefix with a fixed layout.
//
// Conversation state lives in Flow, which is transport-agnostic and owns a
// per-user session registry behind a mutex. Bot is the thin Telegram layer:
// it routes commands and plain text into the flow and renders the flow's
// Result back into messages and keyboards. Publishing uses a short-lived
// write-scoped broker connection per memo; the bot holds no persistent MQTT
// session.
package memo
