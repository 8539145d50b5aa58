package discovery

import (
	"context"
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/directory"
)

const protectDomain = "unifiprotect"

// Package cameras on doorbell devices deliver a small fixed-size frame.
const (
	packageWidth  = 400
	packageHeight = 300
)

var protectChannelPattern = regexp.MustCompile(`^camera\.(.+?)_(high|medium|low)_resolution_channel$`)

// protectChannels holds the per-resolution entities of one physical camera.
type protectChannels struct {
	high   *directory.Entity
	medium *directory.Entity
	low    *directory.Entity
	pkgCam *directory.Entity
}

// ProtectAdapter discovers UniFi-Protect-style NVR cameras. A single physical
// camera exposes several named sub-streams as separate entities:
//
//	camera.{name}_high_resolution_channel   (record quality)
//	camera.{name}_medium_resolution_channel
//	camera.{name}_low_resolution_channel    (detect quality)
//	camera.{name}_package_camera            (doorbell package stream)
//
// The adapter groups the raw entities by device key, emits one primary record
// per device (high for recording, low for detection, high again when low is
// absent) and a secondary record for any package stream.
type ProtectAdapter struct {
	svc      directory.Service
	urlCache *gocache.Cache
}

// NewProtectAdapter returns a Protect adapter. Stream-URL lookups may hit the
// network, so resolved URLs are cached for a few minutes.
func NewProtectAdapter(svc directory.Service) *ProtectAdapter {
	return &ProtectAdapter{
		svc:      svc,
		urlCache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (a *ProtectAdapter) Source() string { return protectDomain }

func (a *ProtectAdapter) Available() bool { return a.svc.HasIntegration(protectDomain) }

func (a *ProtectAdapter) Discover(ctx context.Context) ([]camera.Camera, error) {
	groups := a.groupChannels()
	logger.Debug("grouped protect camera channels", "devices", len(groups))

	var cameras []camera.Camera
	for name, channels := range groups {
		if cam, ok := a.buildCamera(ctx, name, channels); ok {
			cameras = append(cameras, cam)
		}
		if channels.pkgCam != nil {
			if cam, ok := a.buildPackageCamera(ctx, name, *channels.pkgCam); ok {
				cameras = append(cameras, cam)
			}
		}
	}
	return cameras, nil
}

// groupChannels buckets raw per-stream entities by shared device key.
func (a *ProtectAdapter) groupChannels() map[string]*protectChannels {
	groups := make(map[string]*protectChannels)

	for _, entity := range a.svc.Entities(protectDomain) {
		if entity.Domain != "camera" || entity.Disabled {
			continue
		}
		// Insecure channel variants duplicate the secure ones.
		if strings.Contains(entity.ID, "_insecure") {
			continue
		}

		var name, role string
		if m := protectChannelPattern.FindStringSubmatch(entity.ID); m != nil {
			name, role = m[1], m[2]
		} else if strings.HasSuffix(entity.ID, "_package_camera") {
			name = strings.TrimSuffix(strings.TrimPrefix(entity.ID, "camera."), "_package_camera")
			role = "package"
		} else {
			continue
		}

		group := groups[name]
		if group == nil {
			group = &protectChannels{}
			groups[name] = group
		}
		e := entity
		switch role {
		case "high":
			group.high = &e
		case "medium":
			group.medium = &e
		case "low":
			group.low = &e
		case "package":
			group.pkgCam = &e
		}
	}
	return groups
}

func (a *ProtectAdapter) buildCamera(ctx context.Context, name string, channels *protectChannels) (camera.Camera, bool) {
	if channels.high == nil {
		logger.Debug("protect camera has no high-res channel, skipping", "camera", name)
		return camera.Camera{}, false
	}

	recordURL, err := a.streamSource(ctx, channels.high.ID)
	if err != nil {
		logger.Warn("could not resolve protect record stream, skipping camera",
			"camera", name, "entity", channels.high.ID, "error", err)
		return camera.Camera{}, false
	}

	// Detect role uses the low-res channel; fall back to the record stream.
	detectEntity := channels.high
	detectURL := recordURL
	if channels.low != nil {
		if lowURL, err := a.streamSource(ctx, channels.low.ID); err == nil {
			detectEntity = channels.low
			detectURL = lowURL
		} else {
			logger.Debug("no low-res stream, detect falls back to high-res",
				"camera", name, "error", err)
		}
	}

	state, _ := a.svc.State(channels.high.ID)
	friendly := state.Attr("friendly_name", titleCase(name))
	friendly = trimChannelSuffix(friendly)

	// Detect dimensions come from the exact stream assigned the detect role.
	// Mismatched dimensions force re-encoding downstream, so never rescale.
	detectState, _ := a.svc.State(detectEntity.ID)
	width := detectState.IntAttr("width", camera.DefaultWidth)
	height := detectState.IntAttr("height", camera.DefaultHeight)
	fps := detectState.IntAttr("fps", camera.DefaultFPS)

	cam := camera.Camera{
		ID:           "unifi_" + name,
		Name:         name,
		FriendlyName: friendly,
		Source:       protectDomain,
		RecordURL:    formatSecureRTSP(recordURL),
		DetectURL:    formatSecureRTSP(detectURL),
		Width:        width,
		Height:       height,
		FPS:          fps,
		Area:         directory.AreaName(a.svc, *channels.high),
		Available:    state.Available(),
	}
	cam.ApplyDefaults()
	return cam, true
}

func (a *ProtectAdapter) buildPackageCamera(ctx context.Context, name string, entity directory.Entity) (camera.Camera, bool) {
	streamURL, err := a.streamSource(ctx, entity.ID)
	if err != nil {
		logger.Warn("could not resolve package stream, skipping",
			"camera", name, "entity", entity.ID, "error", err)
		return camera.Camera{}, false
	}

	state, _ := a.svc.State(entity.ID)
	friendly := state.Attr("friendly_name", titleCase(name)+" Package")
	friendly = strings.Replace(friendly, " package camera", " Package", 1)

	pkgName := name + "_package"
	cam := camera.Camera{
		ID:           "unifi_" + pkgName,
		Name:         pkgName,
		FriendlyName: friendly,
		Source:       protectDomain,
		RecordURL:    formatSecureRTSP(streamURL),
		Width:        packageWidth,
		Height:       packageHeight,
		Area:         directory.AreaName(a.svc, entity),
		Available:    state.Available(),
	}
	cam.ApplyDefaults()
	return cam, true
}

// streamSource resolves a stream URL through the directory service, caching
// results so repeated passes avoid redundant endpoint calls.
func (a *ProtectAdapter) streamSource(ctx context.Context, entityID string) (string, error) {
	if cached, ok := a.urlCache.Get(entityID); ok {
		return cached.(string), nil
	}
	url, err := a.svc.StreamSource(ctx, entityID)
	if err != nil {
		return "", err
	}
	a.urlCache.SetDefault(entityID, url)
	return url, nil
}

// formatSecureRTSP appends the enableSrtp marker secure Protect streams need.
func formatSecureRTSP(url string) string {
	if strings.Contains(url, "rtsps://") && !strings.Contains(url, "?enableSrtp") {
		return url + "?enableSrtp"
	}
	return url
}

func trimChannelSuffix(friendly string) string {
	friendly = strings.TrimSuffix(friendly, " High resolution channel")
	friendly = strings.TrimSuffix(friendly, " high resolution channel")
	return friendly
}
