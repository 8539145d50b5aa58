package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
	"github.com/ojiudezue/frigate-config-builder/internal/directory"
)

const reolinkDomain = "reolink"

var lensPattern = regexp.MustCompile(`_lens_(\d+)`)

// reolinkStreams holds one device's camera entities split by stream tier.
// Clear is the high-res stream used for recording, fluent the low-res stream
// used for detection.
type reolinkStreams struct {
	clear  []directory.Entity
	fluent []directory.Entity
}

// ReolinkAdapter discovers Reolink cameras. Clear (high-res) entities are
// disabled by default on many firmwares, so a camera must not be dropped just
// because its clear entity is administratively disabled: when the live entity
// path cannot resolve a stream the adapter reconstructs a best-guess endpoint
// from the integration's stored host credentials instead.
//
// Multi-lens devices (TrackMix-style, lens_0 wide plus lens_1 PTZ) split into
// one record per lens with a lens-role suffix in id and display name.
type ReolinkAdapter struct {
	svc      directory.Service
	settings *conf.Settings
}

func NewReolinkAdapter(svc directory.Service, settings *conf.Settings) *ReolinkAdapter {
	return &ReolinkAdapter{svc: svc, settings: settings}
}

func (a *ReolinkAdapter) Source() string { return reolinkDomain }

func (a *ReolinkAdapter) Available() bool { return a.svc.HasIntegration(reolinkDomain) }

func (a *ReolinkAdapter) Discover(ctx context.Context) ([]camera.Camera, error) {
	devices := a.groupByDevice()
	logger.Debug("grouped reolink devices", "devices", len(devices))

	var cameras []camera.Camera
	for deviceID, streams := range devices {
		device, ok := a.svc.Device(deviceID)
		if !ok {
			continue
		}

		deviceName := device.DisplayName()
		if deviceName == "" {
			deviceName = "Reolink Camera"
		}

		area := ""
		if device.AreaID != "" {
			if entry, ok := a.svc.Area(device.AreaID); ok {
				area = entry.Name
			}
		}

		for i := range streams.clear {
			cam, ok := a.buildCamera(ctx, deviceName, area, streams.clear[i], streams.fluent)
			if !ok {
				continue
			}
			cameras = append(cameras, cam)
		}
	}
	return cameras, nil
}

// groupByDevice buckets camera entities per device. Disabled clear entities
// are kept: the URL-reconstruction fallback can still serve them.
func (a *ReolinkAdapter) groupByDevice() map[string]*reolinkStreams {
	devices := make(map[string]*reolinkStreams)

	for _, entity := range a.svc.Entities(reolinkDomain) {
		if entity.Domain != "camera" || entity.DeviceID == "" {
			continue
		}
		if strings.Contains(strings.ToLower(entity.ID), "snapshot") {
			continue
		}

		streams := devices[entity.DeviceID]
		if streams == nil {
			streams = &reolinkStreams{}
			devices[entity.DeviceID] = streams
		}

		id := strings.ToLower(entity.ID)
		switch {
		case strings.Contains(id, "_fluent_") || strings.HasSuffix(id, "_fluent"):
			if !entity.Disabled {
				streams.fluent = append(streams.fluent, entity)
			}
		default:
			// Clear streams and single-stream older models record.
			streams.clear = append(streams.clear, entity)
		}
	}
	return devices
}

func (a *ReolinkAdapter) buildCamera(ctx context.Context, deviceName, area string, clear directory.Entity, fluent []directory.Entity) (camera.Camera, bool) {
	lens, multiLens := lensNumber(clear.ID)

	friendly := deviceName
	camName := camera.NormalizeName(deviceName)
	if multiLens {
		suffix := lensSuffix(lens)
		friendly = fmt.Sprintf("%s (%s)", deviceName, strings.ToUpper(suffix))
		camName = camera.NormalizeName(deviceName + "_" + suffix)
	}

	recordURL := a.resolveStream(ctx, clear, "main")
	if recordURL == "" {
		logger.Warn("could not resolve reolink record stream, skipping camera",
			"entity", clear.ID)
		return camera.Camera{}, false
	}

	detectURL := ""
	if match := matchingFluent(clear, fluent); match != nil {
		detectURL = a.resolveStream(ctx, *match, "sub")
	}

	available := false
	if state, ok := a.svc.State(clear.ID); ok {
		available = state.Available()
	}

	cam := camera.Camera{
		ID:           reolinkDomain + "_" + camName,
		Name:         camName,
		FriendlyName: friendly,
		Source:       reolinkDomain,
		RecordURL:    recordURL,
		DetectURL:    detectURL,
		Area:         area,
		Available:    available,
	}
	cam.ApplyDefaults()
	return cam, true
}

// resolveStream degrades through an ordered strategy list: the live entity
// capability call first, then a URL reconstructed from the stored host
// credentials of the entity's config entry.
func (a *ReolinkAdapter) resolveStream(ctx context.Context, entity directory.Entity, tier string) string {
	if !entity.Disabled {
		if url, err := a.svc.StreamSource(ctx, entity.ID); err == nil && url != "" {
			return url
		} else if err != nil {
			logger.Debug("reolink stream source call failed, trying reconstruction",
				"entity", entity.ID, "error", err)
		}
	}
	return a.reconstructURL(entity, tier)
}

// reconstructURL builds the documented Reolink RTSP path from stored entry
// credentials, applying any per-host override.
func (a *ReolinkAdapter) reconstructURL(entity directory.Entity, tier string) string {
	for _, entry := range a.svc.Entries(reolinkDomain) {
		if entity.EntryID != "" && entry.ID != entity.EntryID {
			continue
		}
		host := entry.String("host", "")
		if host == "" {
			continue
		}

		username := entry.String("username", "admin")
		password := entry.String("password", "")
		if override, ok := a.settings.Cameras.CredentialOverrides[host]; ok {
			username, password = override.Username, override.Password
		}

		auth := camera.EncodeCredential(username) + ":" + camera.EncodeCredential(password)
		port := entry.Int("port", dahuaDefaultRTSPPort)
		return fmt.Sprintf("rtsp://%s@%s:%d/h264Preview_01_%s", auth, host, port, tier)
	}
	return ""
}

func lensNumber(entityID string) (int, bool) {
	m := lensPattern.FindStringSubmatch(strings.ToLower(entityID))
	if m == nil {
		return 0, false
	}
	n := 0
	for _, r := range m[1] {
		n = n*10 + int(r-'0')
	}
	return n, true
}

// lensSuffix maps lens numbers to their role: lens 0 is the wide-angle lens,
// lens 1 the PTZ/telephoto lens.
func lensSuffix(lens int) string {
	switch lens {
	case 0:
		return "wide"
	case 1:
		return "ptz"
	default:
		return fmt.Sprintf("lens%d", lens)
	}
}

// matchingFluent pairs a clear entity with the fluent entity of the same lens.
func matchingFluent(clear directory.Entity, fluent []directory.Entity) *directory.Entity {
	clearLens, clearMulti := lensNumber(clear.ID)

	for i := range fluent {
		fluentLens, fluentMulti := lensNumber(fluent[i].ID)
		if clearMulti == fluentMulti && clearLens == fluentLens {
			return &fluent[i]
		}
	}

	// Single-lens device with exactly one fluent stream.
	if len(fluent) == 1 && !clearMulti {
		return &fluent[0]
	}
	return nil
}
