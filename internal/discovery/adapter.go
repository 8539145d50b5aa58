// Package discovery turns host integrations into a deduplicated camera catalog.
// One adapter exists per integration family; the coordinator fans out over all
// of them concurrently and merges their results.
package discovery

import (
	"context"
	"strings"
	"unicode"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/logging"
)

// Package-level logger for discovery events.
var logger = logging.ForService("discovery")

// Adapter converts one integration's state into camera records.
//
// Discover must not let internal faults escape in normal operation: a camera
// whose endpoint cannot be resolved is skipped with a logged reason, and only
// whole-adapter failures surface as an error.
type Adapter interface {
	// Source returns the integration tag stamped on every record the adapter
	// produces.
	Source() string

	// Available reports whether the underlying integration is configured on
	// the host at all.
	Available() bool

	// Discover produces zero or more camera records.
	Discover(ctx context.Context) ([]camera.Camera, error)
}

// titleCase upper-cases the first letter of each underscore- or
// space-separated word, for display names derived from entity ids.
func titleCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
