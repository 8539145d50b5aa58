package mqtt

import (
	"context"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ojiudezue/frigate-config-builder/internal/errors"
)

const (
	probeClientID          = "frigate-config-builder"
	probeConnectTimeout    = 10 * time.Second
	probeDisconnectQuiesce = 250 // milliseconds, paho API takes a plain uint
)

// Probe connects to the broker once and disconnects, verifying that the
// resolved settings actually reach a broker before they are baked into a
// generated document.
func Probe(ctx context.Context, broker BrokerSettings) error {
	opts := pahomqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", broker.Host, broker.Port)).
		SetClientID(probeClientID).
		SetConnectTimeout(probeConnectTimeout).
		SetAutoReconnect(false)
	if broker.Username != "" {
		opts.SetUsername(broker.Username)
		opts.SetPassword(broker.Password)
	}

	client := pahomqtt.NewClient(opts)
	token := client.Connect()

	select {
	case <-ctx.Done():
		client.Disconnect(probeDisconnectQuiesce)
		return errors.New(ctx.Err()).
			Component("mqtt").
			Category(errors.CategoryMQTTConn).
			Context("broker", broker.Host).
			Build()
	case <-token.Done():
	}

	if err := token.Error(); err != nil {
		return errors.New(err).
			Component("mqtt").
			Category(errors.CategoryMQTTConn).
			Context("broker", broker.Host).
			Context("port", broker.Port).
			Build()
	}

	client.Disconnect(probeDisconnectQuiesce)
	logger.Info("broker probe succeeded", "host", broker.Host, "port", broker.Port)
	return nil
}
