package model

import "strings"

// NamedTrimProfile is a saved set of moulding dimensions.
type NamedTrimProfile struct {
	Name      string      `json:"name"`
	Profile   TrimProfile `json:"profile"`
	IsBuiltIn bool        `json:"is_built_in"`
}

// BuiltInTrimProfiles returns the profiles that ship with the application.
func BuiltInTrimProfiles() []NamedTrimProfile {
	return []NamedTrimProfile{
		{Name: "Standard", Profile: DefaultTrimProfile(), IsBuiltIn: true},
	}
}

// FindTrimProfile looks a profile up by name, ignoring case.
func FindTrimProfile(profiles []NamedTrimProfile, name string) (NamedTrimProfile, bool) {
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return NamedTrimProfile{}, false
}
