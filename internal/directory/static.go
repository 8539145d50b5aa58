package directory

import (
	"context"
	"fmt"
)

// Static is an in-memory Service implementation. It backs unit tests and any
// deployment where the host inventory is declared in configuration instead of
// queried live.
type Static struct {
	EntityList    []Entity
	States        map[string]State
	StreamSources map[string]string
	StreamErrors  map[string]error
	Devices       map[string]Device
	Areas         map[string]Area
	EntryList     []IntegrationEntry
	Runtime       []DeviceConn
}

var _ Service = (*Static)(nil)

// HasIntegration reports whether any entity, entry or runtime connection
// references the integration.
func (s *Static) HasIntegration(integration string) bool {
	for i := range s.EntryList {
		if s.EntryList[i].Integration == integration {
			return true
		}
	}
	for i := range s.EntityList {
		if s.EntityList[i].Integration == integration {
			return true
		}
	}
	for i := range s.Runtime {
		if s.Runtime[i].Integration == integration {
			return true
		}
	}
	return false
}

func (s *Static) Entities(integration string) []Entity {
	var out []Entity
	for i := range s.EntityList {
		if s.EntityList[i].Integration == integration {
			out = append(out, s.EntityList[i])
		}
	}
	return out
}

func (s *Static) State(entityID string) (State, bool) {
	st, ok := s.States[entityID]
	return st, ok
}

func (s *Static) StreamSource(_ context.Context, entityID string) (string, error) {
	if err, ok := s.StreamErrors[entityID]; ok {
		return "", err
	}
	if src, ok := s.StreamSources[entityID]; ok {
		return src, nil
	}
	return "", fmt.Errorf("no stream source for entity %s", entityID)
}

func (s *Static) Device(deviceID string) (Device, bool) {
	d, ok := s.Devices[deviceID]
	return d, ok
}

func (s *Static) Area(areaID string) (Area, bool) {
	a, ok := s.Areas[areaID]
	return a, ok
}

func (s *Static) Entries(integration string) []IntegrationEntry {
	var out []IntegrationEntry
	for i := range s.EntryList {
		if s.EntryList[i].Integration == integration {
			out = append(out, s.EntryList[i])
		}
	}
	return out
}

func (s *Static) RuntimeConnections(integration string) []DeviceConn {
	var out []DeviceConn
	for i := range s.Runtime {
		if s.Runtime[i].Integration == integration {
			out = append(out, s.Runtime[i])
		}
	}
	return out
}
