package discovery

import (
	"context"
	"fmt"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
	"github.com/ojiudezue/frigate-config-builder/internal/directory"
)

// Amcrest and Dahua cameras are built by the same manufacturer and share the
// RTSP dialect, API protocol and main/sub stream split, so one adapter covers
// both integrations under a single source tag.
var dahuaFamilyDomains = []string{"amcrest", "dahua"}

const dahuaFamilySource = "amcrest"

const dahuaDefaultRTSPPort = 554

// DahuaFamilyAdapter discovers Amcrest and Dahua cameras with a two-tier
// strategy: first a fast, direct read of the integration's already-loaded
// runtime connections (no network calls), then a fallback that reconstructs
// the same connection parameters from stored integration entries for any host
// the fast path missed. Both paths converge on an identical record shape.
type DahuaFamilyAdapter struct {
	svc      directory.Service
	settings *conf.Settings
}

func NewDahuaFamilyAdapter(svc directory.Service, settings *conf.Settings) *DahuaFamilyAdapter {
	return &DahuaFamilyAdapter{svc: svc, settings: settings}
}

func (a *DahuaFamilyAdapter) Source() string { return dahuaFamilySource }

func (a *DahuaFamilyAdapter) Available() bool {
	for _, domain := range dahuaFamilyDomains {
		if a.svc.HasIntegration(domain) {
			return true
		}
	}
	return false
}

func (a *DahuaFamilyAdapter) Discover(_ context.Context) ([]camera.Camera, error) {
	var cameras []camera.Camera
	processedHosts := make(map[string]struct{})

	// Fast path: runtime connection data.
	for _, domain := range dahuaFamilyDomains {
		for _, conn := range a.svc.RuntimeConnections(domain) {
			if conn.Host == "" {
				continue
			}
			if _, done := processedHosts[conn.Host]; done {
				continue
			}
			cameras = append(cameras, a.buildCamera(domain, conn))
			processedHosts[conn.Host] = struct{}{}
		}
	}

	// Fallback: reconstruct connections from stored integration entries.
	for _, domain := range dahuaFamilyDomains {
		for _, entry := range a.svc.Entries(domain) {
			host := entry.String("host", "")
			if host == "" {
				logger.Warn("integration entry missing host, skipping",
					"integration", domain, "entry", entry.ID)
				continue
			}
			if _, done := processedHosts[host]; done {
				continue
			}
			conn := directory.DeviceConn{
				Integration: domain,
				Name:        entry.String("name", host),
				Host:        host,
				Username:    entry.String("username", "admin"),
				Password:    entry.String("password", ""),
				Port:        entry.Int("port", dahuaDefaultRTSPPort),
			}
			cameras = append(cameras, a.buildCamera(domain, conn))
			processedHosts[host] = struct{}{}
		}
	}

	return cameras, nil
}

// buildCamera produces the single record shape both discovery tiers share.
func (a *DahuaFamilyAdapter) buildCamera(domain string, conn directory.DeviceConn) camera.Camera {
	username, password := conn.Username, conn.Password
	if username == "" {
		username = "admin"
	}
	if override, ok := a.settings.Cameras.CredentialOverrides[conn.Host]; ok {
		username, password = override.Username, override.Password
	}

	port := conn.Port
	if port == 0 {
		port = dahuaDefaultRTSPPort
	}

	name := conn.Name
	if name == "" {
		name = conn.Host
	}
	camName := camera.NormalizeName(name)

	// Main stream (subtype=0) records, sub stream (subtype=1) detects.
	auth := camera.EncodeCredential(username) + ":" + camera.EncodeCredential(password)
	base := fmt.Sprintf("rtsp://%s@%s:%d/cam/realmonitor?channel=1", auth, conn.Host, port)

	cam := camera.Camera{
		ID:           dahuaFamilySource + "_" + camName,
		Name:         camName,
		FriendlyName: name,
		Source:       dahuaFamilySource,
		RecordURL:    base + "&subtype=0",
		DetectURL:    base + "&subtype=1",
		Area:         a.areaFor(domain),
		Available:    a.availabilityFor(domain),
	}
	cam.ApplyDefaults()
	return cam
}

// areaFor finds an area through any registered entity of the integration.
func (a *DahuaFamilyAdapter) areaFor(domain string) string {
	for _, entity := range a.svc.Entities(domain) {
		if area := directory.AreaName(a.svc, entity); area != "" {
			return area
		}
	}
	return ""
}

// availabilityFor checks entity states; defaults to available when the
// integration exposes no camera entity to inspect.
func (a *DahuaFamilyAdapter) availabilityFor(domain string) bool {
	for _, entity := range a.svc.Entities(domain) {
		if entity.Domain != "camera" || entity.Disabled {
			continue
		}
		if state, ok := a.svc.State(entity.ID); ok {
			return state.Available()
		}
	}
	return true
}
