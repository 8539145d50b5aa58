// Package mqtt resolves the message-broker connection settings that go into
// the generated document, and can probe a broker to verify them.
package mqtt

import (
	"log/slog"

	"github.com/ojiudezue/frigate-config-builder/internal/conf"
	"github.com/ojiudezue/frigate-config-builder/internal/directory"
	"github.com/ojiudezue/frigate-config-builder/internal/logging"
)

// mqttDomain is the host integration that stores broker settings.
const mqttDomain = "mqtt"

// DefaultPort is the standard unencrypted MQTT port.
const DefaultPort = 1883

// Package-level logger for broker resolution events.
var logger *slog.Logger = logging.ForService("mqtt")

// BrokerSettings is the resolved broker connection used by the connection
// section of the generated document. The password is an opaque secret and is
// never logged.
type BrokerSettings struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Resolve produces broker settings from configuration. When auto-detection is
// enabled it reads the host's mqtt integration entry; manual settings are the
// fallback either way.
func Resolve(svc directory.Service, s *conf.Settings) BrokerSettings {
	if s.MQTT.Auto && svc != nil {
		if entries := svc.Entries(mqttDomain); len(entries) > 0 {
			entry := entries[0]
			resolved := BrokerSettings{
				Host:     entry.String("broker", "localhost"),
				Port:     entry.Int("port", DefaultPort),
				Username: entry.String("username", ""),
				Password: entry.String("password", ""),
			}
			logger.Debug("auto-detected broker settings",
				"host", resolved.Host, "port", resolved.Port)
			return resolved
		}
		logger.Warn("broker auto-detect enabled but no mqtt integration found, using manual settings")
	}

	return BrokerSettings{
		Host:     s.MQTT.Host,
		Port:     s.MQTT.Port,
		Username: s.MQTT.Username,
		Password: s.MQTT.Password,
	}
}
