// Package camera defines the canonical discovered-camera record exchanged
// between discovery and generation.
package camera

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Default detect-stream dimensions used when the native resolution is unknown.
const (
	DefaultWidth  = 640
	DefaultHeight = 360
	DefaultFPS    = 5
)

// Camera is a camera discovered from the host platform or declared manually.
// A record is built once per discovery pass by exactly one adapter and is
// immutable afterwards, except for IsNew which the caller computes by diffing
// against the previous pass.
type Camera struct {
	ID           string // unique key, namespaced by source: "unifi_garage_a"
	Name         string // engine-safe camera name: "garage_a"
	FriendlyName string // display name: "Garage A"
	Source       string // integration tag the record came from

	RecordURL   string // high-res stream for recording
	DetectURL   string // low-res stream for detection, defaults to RecordURL
	LiveViewURL string // live view stream, derived from RecordURL by default

	Width  int // detect stream width
	Height int // detect stream height
	FPS    int // detect stream fps

	Area      string // grouping hint (physical location)
	Available bool   // liveness at discovery time
	IsNew     bool   // not present in the previous pass; set by the caller
}

// ApplyDefaults fills the optional fields of a record in place. DetectURL
// falls back to RecordURL. LiveViewURL is derived from RecordURL by swapping
// the secure rtsps scheme marker for rtspx and stripping the query string,
// which yields a URL the live-view proxy accepts without extra adapter code.
func (c *Camera) ApplyDefaults() {
	if c.DetectURL == "" {
		c.DetectURL = c.RecordURL
	}
	if c.LiveViewURL == "" {
		c.LiveViewURL = DeriveLiveViewURL(c.RecordURL)
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}
}

// DeriveLiveViewURL converts a recording URL into a live-view URL.
func DeriveLiveViewURL(recordURL string) string {
	liveView := strings.Replace(recordURL, "rtsps://", "rtspx://", 1)
	if idx := strings.Index(liveView, "?"); idx >= 0 {
		liveView = liveView[:idx]
	}
	return liveView
}

var nonNameChars = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeName converts a friendly name to an engine-safe camera name:
// lowercase, runs of anything outside [a-z0-9] collapse to a single
// underscore, leading and trailing underscores are stripped. The function is
// idempotent.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = nonNameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// EncodeCredential percent-encodes a username or password for embedding in a
// stream URL, so the URL stays valid even when the secret contains reserved
// characters like '@' or '^'. Every byte outside the unreserved set is
// escaped, which makes the encoding reversible with url.PathUnescape.
func EncodeCredential(secret string) string {
	const upperhex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(secret); i++ {
		c := secret[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

// WithCredentials rebuilds rawURL with the given credentials embedded in the
// authority part, percent-encoded. An empty username returns rawURL unchanged.
func WithCredentials(rawURL, username, password string) string {
	if username == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return rawURL
	}

	auth := EncodeCredential(username) + ":" + EncodeCredential(password)
	host := parsed.Hostname()
	if port := parsed.Port(); port != "" {
		host += ":" + port
	}

	rebuilt := parsed.Scheme + "://" + auth + "@" + host + parsed.Path
	if parsed.RawQuery != "" {
		rebuilt += "?" + parsed.RawQuery
	}
	return rebuilt
}

// MarkNew sets IsNew on every record whose id was absent from previousIDs.
// An empty previous set marks nothing, so the very first pass does not flag
// the whole catalog.
func MarkNew(cameras []Camera, previousIDs map[string]struct{}) {
	if len(previousIDs) == 0 {
		return
	}
	for i := range cameras {
		if _, ok := previousIDs[cameras[i].ID]; !ok {
			cameras[i].IsNew = true
		}
	}
}

// IDSet returns the set of record ids in the catalog.
func IDSet(cameras []Camera) map[string]struct{} {
	ids := make(map[string]struct{}, len(cameras))
	for i := range cameras {
		ids[cameras[i].ID] = struct{}{}
	}
	return ids
}

// SortByFriendlyName orders a catalog by case-insensitive display name for
// deterministic downstream consumption.
func SortByFriendlyName(cameras []Camera) {
	sort.SliceStable(cameras, func(i, j int) bool {
		return strings.ToLower(cameras[i].FriendlyName) < strings.ToLower(cameras[j].FriendlyName)
	})
}
