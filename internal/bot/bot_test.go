package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/arlenmoss/emberwatch/internal/infrastructure/config"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/logging"
	"github.com/arlenmoss/emberwatch/internal/monitor"
)

// fakeRelay records sent commands without touching a broker.
type fakeRelay struct {
	sent []string
	err  error
}

func (f *fakeRelay) Send(command string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, command)
	return nil
}

// testBot builds a Bot without a Telegram session. Handlers that only touch
// state, relay and message builders are exercisable this way.
func testBot(t *testing.T, authorized ...int64) (*Bot, *fakeRelay) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Telegram.AuthorizedUsers = authorized
	cfg.MQTT.Broker.Host = "broker.local"
	cfg.MQTT.Broker.Port = 1883
	cfg.MQTT.ReadAuth.Username = "reader"
	cfg.MQTT.WriteAuth.Username = "writer"
	cfg.MQTT.Topics.Sensor = "emberwatch/sensor/data"
	cfg.MQTT.Topics.Control = "emberwatch/sensor/control"

	relay := &fakeRelay{}
	b := &Bot{
		cfg:         cfg,
		state:       monitor.NewState(),
		relay:       relay,
		logger:      logging.Default(),
		authorized:  allowList(cfg.Telegram.AuthorizedUsers),
		updateDelay: time.Millisecond,
	}
	return b, relay
}

func TestIsAuthorized(t *testing.T) {
	b, _ := testBot(t, 100, 200)

	tests := []struct {
		name   string
		userID int64
		want   bool
	}{
		{"listed user", 100, true},
		{"second listed user", 200, true},
		{"unlisted user", 300, false},
		{"zero id", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.isAuthorized(tt.userID); got != tt.want {
				t.Errorf("isAuthorized(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}

func TestIsAuthorized_EmptyAllowList(t *testing.T) {
	b, _ := testBot(t)

	if b.isAuthorized(1) {
		t.Error("empty allow-list must deny every user")
	}
}

func TestWelcomeMessage(t *testing.T) {
	b, _ := testBot(t)

	msg := b.welcomeMessage()
	for _, want := range []string{"/status", "/update", "/devices", "/test\\_alarm", "Fire Monitoring System"} {
		if !strings.Contains(msg, want) {
			t.Errorf("welcome message missing %q:\n%s", want, msg)
		}
	}
}

func TestSystemInfoMessage(t *testing.T) {
	b, _ := testBot(t)

	msg := b.systemInfoMessage()
	for _, want := range []string{
		"`broker.local:1883`",
		"`emberwatch/sensor/data`",
		"`emberwatch/sensor/control`",
		"`reader`",
		"`writer`",
		"Devices seen: `0`",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("system info missing %q:\n%s", want, msg)
		}
	}
}

func TestSystemInfoMessage_AnonymousCredentials(t *testing.T) {
	b, _ := testBot(t)
	b.cfg.MQTT.ReadAuth.Username = ""
	b.cfg.MQTT.WriteAuth.Username = ""

	msg := b.systemInfoMessage()
	if !strings.Contains(msg, "`anonymous`") {
		t.Errorf("expected anonymous placeholder for empty credentials:\n%s", msg)
	}
}

func TestToggleMessage(t *testing.T) {
	if got := toggleMessage(true); !strings.Contains(got, "enabled") {
		t.Errorf("toggleMessage(true) = %q", got)
	}
	if got := toggleMessage(false); !strings.Contains(got, "disabled") {
		t.Errorf("toggleMessage(false) = %q", got)
	}
}

func TestBotImplementsSender(t *testing.T) {
	var _ monitor.Sender = (*Bot)(nil)
}
