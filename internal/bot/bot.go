package bot

import (
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/arlenmoss/emberwatch/internal/infrastructure/config"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/logging"
	"github.com/arlenmoss/emberwatch/internal/monitor"
)

// defaultUpdateDelay is how long /update waits for devices to publish fresh
// readings before re-displaying the status. There is no confirmation channel;
// the delay is a best-effort window.
const defaultUpdateDelay = time.Second

// deniedMessage is the fixed reply for unauthorized invocations of gated commands.
const deniedMessage = "⛔ Unauthorized Access\n\nYou don't have system operation privileges"

// CommandRelay sends control tokens to the devices.
// Implemented by monitor.Relay; tests use a recording fake.
type CommandRelay interface {
	Send(command string) error
}

// Bot is the Telegram command surface of the fire-monitoring bridge.
//
// It exposes the public /start and /help commands and the gated operator
// commands, all dispatched through a single allow-list middleware. The Bot
// also implements monitor.Sender so the alert dispatcher can deliver through
// the same connection.
type Bot struct {
	tb         *tele.Bot
	cfg        *config.Config
	state      *monitor.State
	relay      CommandRelay
	logger     *logging.Logger
	authorized map[int64]struct{}

	// updateDelay is injectable for tests.
	updateDelay time.Duration
}

// New creates the bot and registers all handlers.
//
// Parameters:
//   - cfg: Full configuration (the /system_info command echoes parts of it)
//   - state: Shared status snapshot owner
//   - relay: Control command relay
//   - logger: Structured logger
//
// Returns:
//   - *Bot: Bot ready for Start()
//   - error: If the Telegram session cannot be established
func New(cfg *config.Config, state *monitor.State, relay CommandRelay, logger *logging.Logger) (*Bot, error) {
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &tele.LongPoller{Timeout: time.Duration(cfg.Telegram.PollTimeout) * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	b := &Bot{
		tb:          tb,
		cfg:         cfg,
		state:       state,
		relay:       relay,
		logger:      logger,
		authorized:  allowList(cfg.Telegram.AuthorizedUsers),
		updateDelay: defaultUpdateDelay,
	}

	b.registerHandlers()
	return b, nil
}

// Start begins long-polling for updates. It blocks until Stop is called.
func (b *Bot) Start() {
	b.logger.Info("telegram bot polling started")
	b.tb.Start()
}

// Stop terminates the polling loop.
func (b *Bot) Stop() {
	b.tb.Stop()
	b.logger.Info("telegram bot stopped")
}

// Send delivers one message to one recipient, implementing monitor.Sender.
func (b *Bot) Send(userID int64, message string) error {
	_, err := b.tb.Send(tele.ChatID(userID), message, tele.ModeMarkdown)
	return err
}

// isAuthorized reports whether the user is on the allow-list.
func (b *Bot) isAuthorized(userID int64) bool {
	_, ok := b.authorized[userID]
	return ok
}

// requireAuthorized is the single capability check wrapping every gated
// handler. Unauthorized invocations get a fixed denial and no state change.
func (b *Bot) requireAuthorized(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil || !b.isAuthorized(sender.ID) {
			b.logger.Warn("unauthorized command rejected",
				"user_id", senderID(sender),
			)
			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: deniedMessage})
			}
			return c.Reply(deniedMessage)
		}
		return next(c)
	}
}

// allowList converts the configured ID slice to a set.
func allowList(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func senderID(u *tele.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
