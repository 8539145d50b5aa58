package generator

import (
	"sort"

	"github.com/ojiudezue/frigate-config-builder/internal/camera"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
)

// ungroupedBucket collects cameras without an area when auto-grouping is on.
const ungroupedBucket = "Ungrouped"

const groupIcon = "LuCamera"

// BuildGroups derives camera groups from the catalog's areas and overlays the
// user's manual groups. One group per distinct non-empty area, alphabetically
// ordered; manual groups win on name collision.
func BuildGroups(catalog []camera.Camera, s *conf.Settings) *Map {
	groups := NewMap()

	if s.Groups.FromAreas {
		areaCameras := make(map[string][]string)
		for i := range catalog {
			area := catalog[i].Area
			if area == "" {
				area = ungroupedBucket
			}
			areaCameras[area] = append(areaCameras[area], catalog[i].Name)
		}

		areaNames := make([]string, 0, len(areaCameras))
		for name := range areaCameras {
			areaNames = append(areaNames, name)
		}
		sort.Strings(areaNames)

		for idx, name := range areaNames {
			groups.Set(name, NewMap().
				Set("order", idx+1).
				Set("icon", groupIcon).
				Set("cameras", areaCameras[name]))
		}
	}

	// Manual groups overlay the derived ones and take precedence on collision.
	manualNames := make([]string, 0, len(s.Groups.Manual))
	for name := range s.Groups.Manual {
		manualNames = append(manualNames, name)
	}
	sort.Strings(manualNames)

	for _, name := range manualNames {
		groups.Set(name, NewMap().
			Set("order", groups.Len()+1).
			Set("icon", groupIcon).
			Set("cameras", s.Groups.Manual[name]))
	}

	return groups
}
