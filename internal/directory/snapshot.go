package directory

import (
	"encoding/json"
	"os"

	"github.com/ojiudezue/frigate-config-builder/internal/errors"
)

// snapshot is the on-disk JSON shape of a directory export. Stream sources
// are included because a file snapshot cannot resolve them live.
type snapshot struct {
	Entities      []Entity           `json:"entities"`
	States        map[string]State   `json:"states"`
	StreamSources map[string]string  `json:"stream_sources"`
	Devices       []Device           `json:"devices"`
	Areas         []Area             `json:"areas"`
	Entries       []IntegrationEntry `json:"entries"`
	Runtime       []DeviceConn       `json:"runtime_connections"`
}

// LoadSnapshot reads a directory export file and returns it as a Service.
// Snapshots are how standalone runs see the host inventory; inside a live
// host the Service is backed by the running registries instead.
func LoadSnapshot(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("directory").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, errors.New(err).
			Component("directory").
			Category(errors.CategorySerialization).
			Context("path", path).
			Build()
	}

	static := &Static{
		EntityList:    snap.Entities,
		States:        snap.States,
		StreamSources: snap.StreamSources,
		Devices:       make(map[string]Device, len(snap.Devices)),
		Areas:         make(map[string]Area, len(snap.Areas)),
		EntryList:     snap.Entries,
		Runtime:       snap.Runtime,
	}
	for _, d := range snap.Devices {
		static.Devices[d.ID] = d
	}
	for _, a := range snap.Areas {
		static.Areas[a.ID] = a
	}
	return static, nil
}
