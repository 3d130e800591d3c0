package stats

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	_ "embed"

	"gopkg.in/yaml.v3"
)

var ErrUnknownPreset = errors.New("unknown configuration preset")

// Config is the closed set of toggles that change which plays count toward
// which metrics. Two configs with equal fields always produce the same
// Hash, so they always share cache entries.
type Config struct {
	IncludeQBKneelsRushing     bool `yaml:"include_qb_kneels_rushing" json:"include_qb_kneels_rushing"`
	IncludeQBKneelsSuccessRate bool `yaml:"include_qb_kneels_success_rate" json:"include_qb_kneels_success_rate"`
	IncludeQBSpikesCompletion  bool `yaml:"include_qb_spikes_completion" json:"include_qb_spikes_completion"`
	IncludeQBSpikesSuccessRate bool `yaml:"include_qb_spikes_success_rate" json:"include_qb_spikes_success_rate"`
}

// fields returns the canonical name → value view of the config. Hashing
// walks this map in sorted key order, so neither construction order nor
// struct layout can ever influence the hash.
func (c Config) fields() map[string]bool {
	return map[string]bool{
		"include_qb_kneels_rushing":      c.IncludeQBKneelsRushing,
		"include_qb_kneels_success_rate": c.IncludeQBKneelsSuccessRate,
		"include_qb_spikes_completion":   c.IncludeQBSpikesCompletion,
		"include_qb_spikes_success_rate": c.IncludeQBSpikesSuccessRate,
	}
}

// Hash derives the stable cache-key component for the config.
func (c Config) Hash() string {
	fields := c.fields()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatBool(fields[k]))
		sb.WriteByte('\n')
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:16])
}

//go:embed presets.yaml
var presetsYAML []byte

type preset struct {
	Description string `yaml:"description"`
	Config      `yaml:",inline"`
}

type presetFile struct {
	Presets map[string]preset `yaml:"presets"`
}

var presets = mustLoadPresets()

func mustLoadPresets() map[string]preset {
	var file presetFile
	if err := yaml.Unmarshal(presetsYAML, &file); err != nil {
		panic(fmt.Sprintf("stats: parsing embedded presets: %v", err))
	}
	return file.Presets
}

// Preset returns a named, shipped configuration.
func Preset(name string) (Config, error) {
	p, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p.Config, nil
}

// PresetNames lists the shipped configurations in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
