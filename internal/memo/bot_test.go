package memo

import (
	"testing"

	"github.com/arlenmoss/emberwatch/internal/infrastructure/config"
	"github.com/arlenmoss/emberwatch/internal/infrastructure/logging"
)

func TestDeliver_UsesWriteCredentialsAndReminderTopic(t *testing.T) {
	cfg := &config.Config{}
	cfg.MQTT.ReadAuth = config.MQTTAuthConfig{Username: "reader", Password: "rpw"}
	cfg.MQTT.WriteAuth = config.MQTTAuthConfig{Username: "writer", Password: "wpw"}
	cfg.MQTT.Topics.Reminder = "emberwatch/memo"
	cfg.MQTT.QoS = 1

	var (
		gotAuth    config.MQTTAuthConfig
		gotTopic   string
		gotPayload string
		gotQoS     byte
	)
	b := &Bot{
		cfg:    cfg,
		logger: logging.Default(),
		publish: func(_ config.MQTTConfig, auth config.MQTTAuthConfig, _ string, topic string, payload []byte, qos byte) error {
			gotAuth = auth
			gotTopic = topic
			gotPayload = string(payload)
			gotQoS = qos
			return nil
		},
	}

	if err := b.deliver("2025/06/05:buy milk"); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if gotAuth.Username != "writer" {
		t.Errorf("published with %q credentials, want write pair", gotAuth.Username)
	}
	if gotTopic != "emberwatch/memo" {
		t.Errorf("topic = %q", gotTopic)
	}
	if gotPayload != "2025/06/05:buy milk" {
		t.Errorf("payload = %q", gotPayload)
	}
	if gotQoS != 1 {
		t.Errorf("qos = %d", gotQoS)
	}
}

func TestQuickDateKeyboard_TwoPerRow(t *testing.T) {
	menu := quickDateKeyboard([]string{"8/30", "8/31", "9/1"})

	if got := len(menu.ReplyKeyboard); got != 2 {
		t.Fatalf("rows = %d, want 2", got)
	}
	if got := len(menu.ReplyKeyboard[0]); got != 2 {
		t.Errorf("first row buttons = %d, want 2", got)
	}
	if got := len(menu.ReplyKeyboard[1]); got != 1 {
		t.Errorf("second row buttons = %d, want 1", got)
	}
	if menu.ReplyKeyboard[0][0].Text != "8/30" {
		t.Errorf("first button = %q", menu.ReplyKeyboard[0][0].Text)
	}
}
