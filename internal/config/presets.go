package config

import "sort"

var Presets = map[string]SweepConfig{
	"quick":    {MinExp: 1, MaxExp: 4, Points: 12},
	"standard": {MinExp: 1, MaxExp: 5, Points: 20},
	"deep":     {MinExp: 2, MaxExp: 6, Points: 25},
}

func GetPreset(name string) *SweepConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
