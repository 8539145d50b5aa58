package discovery

import (
	"context"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/directory"
)

const genericDomain = "generic"

// GenericAdapter discovers standalone RTSP cameras the user typed directly
// into the host platform. The stream URL lives in the stored config entry, so
// discovery is a pure synchronous transform with no runtime lookups.
type GenericAdapter struct {
	svc directory.Service
}

func NewGenericAdapter(svc directory.Service) *GenericAdapter {
	return &GenericAdapter{svc: svc}
}

func (a *GenericAdapter) Source() string { return genericDomain }

func (a *GenericAdapter) Available() bool { return a.svc.HasIntegration(genericDomain) }

func (a *GenericAdapter) Discover(_ context.Context) ([]camera.Camera, error) {
	var cameras []camera.Camera
	for _, entry := range a.svc.Entries(genericDomain) {
		if cam, ok := a.buildCamera(entry); ok {
			cameras = append(cameras, cam)
		}
	}
	return cameras, nil
}

func (a *GenericAdapter) buildCamera(entry directory.IntegrationEntry) (camera.Camera, bool) {
	streamURL := entry.String("stream_source", "")
	if streamURL == "" {
		logger.Debug("generic camera entry has no stream source, skipping",
			"entry", entry.ID, "title", entry.Title)
		return camera.Camera{}, false
	}

	username := entry.String("username", "")
	password := entry.String("password", "")
	recordURL := camera.WithCredentials(streamURL, username, password)

	friendly := entry.Title
	if friendly == "" {
		friendly = "Generic Camera"
	}
	camName := camera.NormalizeName(friendly)

	area := ""
	available := true
	if entity := a.entityForEntry(entry.ID); entity != nil {
		area = directory.AreaName(a.svc, *entity)
		state, ok := a.svc.State(entity.ID)
		available = ok && state.Available()
	}

	cam := camera.Camera{
		ID:           genericDomain + "_" + camName,
		Name:         camName,
		FriendlyName: friendly,
		Source:       genericDomain,
		RecordURL:    recordURL,
		Area:         area,
		Available:    available,
	}
	cam.ApplyDefaults()
	return cam, true
}

func (a *GenericAdapter) entityForEntry(entryID string) *directory.Entity {
	for _, entity := range a.svc.Entities(genericDomain) {
		if entity.EntryID == entryID && entity.Domain == "camera" && !entity.Disabled {
			e := entity
			return &e
		}
	}
	return nil
}
