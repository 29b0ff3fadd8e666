// Package mqtt provides MQTT client connectivity for the emberwatch daemons.
//
// This package manages:
//   - Persistent read-scoped connection with auto-reconnect (sensor ingest)
//   - Short-lived write-scoped publishes (control commands, reminders)
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The broker decouples the monitoring bridge from the devices:
//
//	Device → sensor topic → firebot → Telegram recipients
//	Telegram operator → firebot → control topic → device
//
// Credential separation is structural: Connect always authenticates with the
// read-scoped pair, PublishOnce takes its pair explicitly. The two never
// share a connection.
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to sensor readings
//	err = client.Subscribe(cfg.MQTT.Topics.Sensor, 1,
//	    func(topic string, payload []byte) error {
//	        return ingestor.Handle(topic, payload)
//	    })
//
//	// Send a control command with the write-scoped pair
//	err = mqtt.PublishOnce(cfg.MQTT, cfg.MQTT.WriteAuth,
//	    "firebot-relay", cfg.MQTT.Topics.Control, []byte("UPDATE"), 1)
package mqtt
