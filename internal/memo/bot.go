package memo

import (
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/arlenmoss/emberwatch/internal/infrastructure/config"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/logging"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/mqtt"
)

// clientID identifies the reminder bot's short-lived publish connections.
const clientID = "emberwatch-memobot"

// publishFunc matches mqtt.PublishOnce, injectable for tests.
type publishFunc func(cfg config.MQTTConfig, auth config.MQTTAuthConfig, clientID, topic string, payload []byte, qos byte) error

// Bot is the Telegram reminder bot. Every handler sits behind the
// allow-list; the bot has no public surface.
type Bot struct {
	tb      *tele.Bot
	cfg     *config.Config
	flow    *Flow
	logger  *logging.Logger
	allowed map[int64]struct{}
	publish publishFunc
}

// New creates the reminder bot and registers its handlers.
func New(cfg *config.Config, logger *logging.Logger) (*Bot, error) {
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
		tb:      tb,
		cfg:     cfg,
		flow:    NewFlow(),
		logger:  logger,
		allowed: make(map[int64]struct{}, len(cfg.Telegram.AuthorizedUsers)),
		publish: mqtt.PublishOnce,
	}
	for _, id := range cfg.Telegram.AuthorizedUsers {
		b.allowed[id] = struct{}{}
	}

	b.registerHandlers()
	return b, nil
}

// Start begins long-polling. It blocks until Stop is called.
func (b *Bot) Start() {
	b.logger.Info("reminder bot polling started")
	b.tb.Start()
}

// Stop terminates the polling loop.
func (b *Bot) Stop() {
	b.tb.Stop()
	b.logger.Info("reminder bot stopped")
}

func (b *Bot) registerHandlers() {
	gated := b.tb.Group()
	gated.Use(b.requireAuthorized)

	gated.Handle("/start", b.handleBegin)
	gated.Handle("/memo", b.handleBegin)
	gated.Handle("/cancel", b.handleCancel)
	gated.Handle(tele.OnText, b.handleText)
}

func (b *Bot) requireAuthorized(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}
		if _, ok := b.allowed[sender.ID]; !ok {
			b.logger.Warn("unauthorized message ignored", "user_id", sender.ID)
			return c.Reply("⛔ You are not permitted to use this bot")
		}
		return next(c)
	}
}

func (b *Bot) handleBegin(c tele.Context) error {
	return b.render(c, b.flow.Begin(c.Sender().ID))
}

func (b *Bot) handleCancel(c tele.Context) error {
	return b.render(c, b.flow.Cancel(c.Sender().ID))
}

func (b *Bot) handleText(c tele.Context) error {
	res := b.flow.Input(c.Sender().ID, c.Text())

	if res.Payload != "" {
		if err := b.deliver(res.Payload); err != nil {
			b.logger.Error("memo publish failed", "error", err)
			return c.Send("Saving the reminder failed, please try again later")
		}
	}
	return b.render(c, res)
}

// deliver publishes one memo line over a short-lived write-scoped connection.
func (b *Bot) deliver(payload string) error {
	return b.publish(
		b.cfg.MQTT,
		b.cfg.MQTT.WriteAuth,
		clientID,
		b.cfg.MQTT.Topics.Reminder,
		[]byte(payload),
		byte(b.cfg.MQTT.QoS),
	)
}

// render translates a flow Result into Telegram send options.
func (b *Bot) render(c tele.Context, res Result) error {
	switch {
	case len(res.QuickDates) > 0:
		return c.Send(res.Reply, quickDateKeyboard(res.QuickDates))
	case res.RemoveKeyboard:
		return c.Send(res.Reply, &tele.ReplyMarkup{RemoveKeyboard: true})
	default:
		return c.Send(res.Reply)
	}
}

// quickDateKeyboard lays the suggestions out two per row.
func quickDateKeyboard(dates []string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}

	rows := make([]tele.Row, 0, (len(dates)+1)/2)
	for i := 0; i < len(dates); i += 2 {
		end := i + 2
		if end > len(dates) {
			end = len(dates)
		}
		row := make(tele.Row, 0, 2)
		for _, d := range dates[i:end] {
			row = append(row, menu.Text(d))
		}
		rows = append(rows, row)
	}
	menu.Reply(rows...)
	return menu
}
