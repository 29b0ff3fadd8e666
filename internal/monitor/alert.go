package monitor

// Sender delivers one message to one chat recipient.
// Implemented by the Telegram bot; tests use a recording fake.
type Sender interface {
	Send(userID int64, message string) error
}

// Dispatcher fans an alert out to every entry in the recipient allow-list.
//
// Delivery is best effort: each recipient gets exactly one attempt per
// alarm-positive update, a failed recipient is logged and skipped, and there
// is no retry or queueing.
type Dispatcher struct {
	sender     Sender
	recipients []int64
	logger     Logger
}

// NewDispatcher creates a Dispatcher for the given static recipient list.
func NewDispatcher(sender Sender, recipients []int64) *Dispatcher {
	return &Dispatcher{
		sender:     sender,
		recipients: recipients,
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the dispatcher.
func (d *Dispatcher) SetLogger(logger Logger) {
	d.logger = logger
}

// Dispatch formats the alert once and attempts delivery to every recipient.
// One recipient's failure (blocked chat, network error) does not prevent
// delivery to the others.
func (d *Dispatcher) Dispatch(alert Alert) {
	message := FormatAlert(alert)

	for _, userID := range d.recipients {
		if err := d.sender.Send(userID, message); err != nil {
			d.logger.Error("failed to deliver alert",
				"user_id", userID,
				"error", err,
			)
			continue
		}
		d.logger.Debug("alert delivered", "user_id", userID)
	}
}
