// Package directory abstracts the host platform's entity, device and area
// registries behind a single read-only query interface. Adapters receive a
// Service at construction so they are unit-testable without a live host.
package directory

import (
	"context"
)

// Entity is a registered entity of one host integration.
type Entity struct {
	ID          string // full entity id, e.g. "camera.front_door_high_resolution_channel"
	Integration string // owning integration, e.g. "unifiprotect"
	Domain      string // entity domain, e.g. "camera"
	DeviceID    string // owning device, empty for device-less entities
	AreaID      string // directly assigned area, empty to inherit from device
	EntryID     string // config entry the entity belongs to
	Disabled    bool   // administratively disabled
}

// State is the current runtime state of an entity.
type State struct {
	State      string         // e.g. "idle", "streaming", "unavailable"
	Attributes map[string]any // friendly_name, width, height, fps, ...
}

// Available reports whether the state represents a live entity.
func (s State) Available() bool {
	return s.State != "" && s.State != "unavailable" && s.State != "unknown"
}

// Attr returns a string attribute, or def when absent or not a string.
func (s State) Attr(key, def string) string {
	if v, ok := s.Attributes[key].(string); ok && v != "" {
		return v
	}
	return def
}

// IntAttr returns an integer attribute, or def when absent. Host registries
// deliver numbers as either int or float64 depending on the transport.
func (s State) IntAttr(key string, def int) int {
	switch v := s.Attributes[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Device is a registered physical device.
type Device struct {
	ID         string
	Name       string // integration-supplied name
	NameByUser string // user override, preferred when set
	AreaID     string
}

// DisplayName returns the user-assigned name when present.
func (d Device) DisplayName() string {
	if d.NameByUser != "" {
		return d.NameByUser
	}
	return d.Name
}

// Area is a physical location grouping devices and entities.
type Area struct {
	ID   string
	Name string
}

// IntegrationEntry is one configured instance of an integration, carrying its
// stored configuration including credentials. Credentials are opaque secrets
// and must never be logged in plaintext.
type IntegrationEntry struct {
	ID          string
	Integration string
	Title       string
	Data        map[string]any // stored config: host, username, password, port, stream_source, ...
	Options     map[string]any // user options layered over Data
}

// Value returns an entry value, preferring Options over Data.
func (e IntegrationEntry) Value(key string) (any, bool) {
	if v, ok := e.Options[key]; ok && v != nil {
		return v, true
	}
	if v, ok := e.Data[key]; ok && v != nil {
		return v, true
	}
	return nil, false
}

// String returns a string entry value, or def when absent.
func (e IntegrationEntry) String(key, def string) string {
	if v, ok := e.Value(key); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}

// Int returns an integer entry value, or def when absent.
func (e IntegrationEntry) Int(key string, def int) int {
	v, ok := e.Value(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// DeviceConn is runtime connection data for one device, read from an
// integration's already-loaded state. It lets adapters resolve endpoints
// without network calls.
type DeviceConn struct {
	Integration string
	Name        string
	Host        string
	Username    string
	Password    string
	Port        int
}

// Service is the read-only host directory consumed by discovery adapters.
// Implementations must be safe for concurrent readers; adapters never write
// back to host state.
type Service interface {
	// HasIntegration reports whether the integration has at least one
	// configured instance.
	HasIntegration(integration string) bool

	// Entities lists all registered entities belonging to an integration.
	Entities(integration string) []Entity

	// State returns the current state of an entity.
	State(entityID string) (State, bool)

	// StreamSource resolves the stream endpoint for a camera entity. This is
	// the only directory call that may hit the network.
	StreamSource(ctx context.Context, entityID string) (string, error)

	// Device returns a registered device by id.
	Device(deviceID string) (Device, bool)

	// Area returns a registered area by id.
	Area(areaID string) (Area, bool)

	// Entries lists the configured instances of an integration together with
	// their stored credentials.
	Entries(integration string) []IntegrationEntry

	// RuntimeConnections returns already-loaded connection data for an
	// integration's devices, when the integration exposes it.
	RuntimeConnections(integration string) []DeviceConn
}

// AreaName resolves the area of an entity, preferring the entity's own area
// assignment and falling back to its device's area.
func AreaName(svc Service, entity Entity) string {
	if entity.AreaID != "" {
		if area, ok := svc.Area(entity.AreaID); ok {
			return area.Name
		}
	}
	if entity.DeviceID != "" {
		if device, ok := svc.Device(entity.DeviceID); ok && device.AreaID != "" {
			if area, ok := svc.Area(device.AreaID); ok {
				return area.Name
			}
		}
	}
	return ""
}
