package memo

import (
	"fmt"
	"sync"
	"time"
)

// step tracks where a user is in the two-question memo conversation.
type step int

const (
	stepIdle step = iota
	stepAwaitDate
	stepAwaitContent
)

// conversation is the per-user state of an in-progress memo.
type conversation struct {
	step step
	date string // normalized YYYY/MM/DD once the date step completes
}

// Result tells the transport layer what to do after a flow transition.
// The flow itself never touches Telegram or MQTT.
type Result struct {
	// Reply is the text to send back to the user.
	Reply string
	// QuickDates, when non-empty, are date suggestions to offer as a
	// one-tap keyboard alongside the reply.
	QuickDates []string
	// RemoveKeyboard indicates the suggestion keyboard should be cleared.
	RemoveKeyboard bool
	// Payload, when non-empty, is a complete memo line to publish.
	Payload string
	// Done indicates the conversation has finished or been cancelled.
	Done bool
}

// Flow owns every user's conversation state. All transitions go through the
// mutex; there is no other access path.
type Flow struct {
	mu       sync.Mutex
	sessions map[int64]*conversation

	// now is injectable for tests.
	now func() time.Time
}

// NewFlow creates an empty conversation registry.
func NewFlow() *Flow {
	return &Flow{
		sessions: make(map[int64]*conversation),
		now:      time.Now,
	}
}

// Begin starts (or restarts) a memo conversation for the user and prompts
// for a date.
func (f *Flow) Begin(userID int64) Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sessions[userID] = &conversation{step: stepAwaitDate}
	return Result{
		Reply:      "📅 Which day is the reminder for? Pick one below or type month/day, e.g. 6/5",
		QuickDates: QuickDates(f.now()),
	}
}

// Cancel discards any in-progress conversation.
func (f *Flow) Cancel(userID int64) Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, active := f.sessions[userID]; !active {
		return Result{Reply: "Nothing to cancel", Done: true}
	}
	delete(f.sessions, userID)
	return Result{Reply: "Memo cancelled", RemoveKeyboard: true, Done: true}
}

// Input routes a plain text message by the user's current step. Text from
// users with no active conversation yields a usage hint.
func (f *Flow) Input(userID int64, text string) Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	conv, active := f.sessions[userID]
	if !active {
		return Result{Reply: "Send /memo to start a new reminder", Done: true}
	}

	switch conv.step {
	case stepAwaitDate:
		return f.acceptDate(conv, text)
	case stepAwaitContent:
		return f.acceptContent(userID, conv, text)
	default:
		delete(f.sessions, userID)
		return Result{Reply: "Send /memo to start a new reminder", Done: true}
	}
}

// Active reports whether the user has a conversation in progress.
func (f *Flow) Active(userID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, active := f.sessions[userID]
	return active
}

func (f *Flow) acceptDate(conv *conversation, text string) Result {
	date, err := NormalizeDate(f.now(), text)
	if err != nil {
		return Result{Reply: fmt.Sprintf("That doesn't look like a date (%v). Type month/day, e.g. 6/5", err)}
	}
	conv.date = date
	conv.step = stepAwaitContent
	return Result{
		Reply:          fmt.Sprintf("✏️ Noted %s. What should I remind you about?", date),
		RemoveKeyboard: true,
	}
}

func (f *Flow) acceptContent(userID int64, conv *conversation, text string) Result {
	payload, err := FormatMemo(conv.date, text)
	if err != nil {
		return Result{Reply: "The reminder text cannot be empty, please type it again"}
	}
	delete(f.sessions, userID)
	return Result{
		Reply:   fmt.Sprintf("✅ Reminder saved for %s", conv.date),
		Payload: payload,
		Done:    true,
	}
}
