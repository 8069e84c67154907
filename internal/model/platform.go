package model

import (
	"fmt"
	"strings"
)

// Platform names a target ecosystem a built-in rule applies to.
type Platform string

const (
	PlatformSpring Platform = "spring"
	PlatformNode   Platform = "node"
	PlatformDotnet Platform = "dotnet"
	PlatformDjango Platform = "django"

	// PlatformAll marks a rule as applicable regardless of the active profile.
	PlatformAll Platform = "all"
)

// Profile is a named subset of platforms controlling which built-in rules
// are active for a scan.
type Profile struct {
	Name      string
	Platforms map[Platform]bool
}

// Includes reports whether a rule targeting the given platforms is active
// under this profile. Rules targeting PlatformAll always pass.
func (p Profile) Includes(platforms []Platform) bool {
	for _, pl := range platforms {
		if pl == PlatformAll || p.Platforms[pl] {
			return true
		}
	}
	return false
}

// ParseProfile resolves a user-supplied profile name. Unknown names are an
// input error, rejected before scanning starts.
func ParseProfile(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return Profile{
			Name: "all",
			Platforms: map[Platform]bool{
				PlatformSpring: true,
				PlatformNode:   true,
				PlatformDotnet: true,
				PlatformDjango: true,
			},
		}, nil
	case "spring":
		return Profile{Name: "spring", Platforms: map[Platform]bool{PlatformSpring: true}}, nil
	case "node":
		return Profile{Name: "node", Platforms: map[Platform]bool{PlatformNode: true}}, nil
	case "dotnet":
		return Profile{Name: "dotnet", Platforms: map[Platform]bool{PlatformDotnet: true}}, nil
	case "django":
		return Profile{Name: "django", Platforms: map[Platform]bool{PlatformDjango: true}}, nil
	}
	return Profile{}, fmt.Errorf("unknown profile %q (expected spring, node, dotnet, django, or all)", name)
}
