package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/ritzau/pivot-slicer/pkg/model"
)

// FileName is the optional config file read from the working directory
const FileName = "pivot-slicer.toml"

// EnvPrefix prefixes environment overrides, e.g. PIVOT_SLICER_STYLE_TOPCOUNT=10
const EnvPrefix = "PIVOT_SLICER_"

// Columns maps input headers to data roles. Header matching is case
// insensitive and an empty header leaves the role unbound.
type Columns struct {
	Node            string   `koanf:"node"`
	NodeType        string   `koanf:"nodetype"`
	NodeLinker      string   `koanf:"nodelinker"`
	LinkedNode      string   `koanf:"linkednode"`
	LinkedNodeType  string   `koanf:"linkednodetype"`
	LinkWeight      string   `koanf:"linkweight"`
	FilterKey       string   `koanf:"filterkey"`
	LinkedFilterKey string   `koanf:"linkedfilterkey"`
	Attributes      []string `koanf:"attributes"`
	// Table names the filter target, the input file name when empty
	Table string `koanf:"table"`
}

// Bindings returns the header bound to each single-column role
func (c Columns) Bindings() map[model.Role]string {
	bindings := map[model.Role]string{
		model.RoleNode:            c.Node,
		model.RoleNodeType:        c.NodeType,
		model.RoleNodeLinker:      c.NodeLinker,
		model.RoleLinkedNode:      c.LinkedNode,
		model.RoleLinkedNodeType:  c.LinkedNodeType,
		model.RoleLinkWeight:      c.LinkWeight,
		model.RoleFilterKey:       c.FilterKey,
		model.RoleLinkedFilterKey: c.LinkedFilterKey,
	}
	for role, header := range bindings {
		if header == "" {
			delete(bindings, role)
		}
	}
	return bindings
}

// Config holds all configuration for the application
type Config struct {
	Input      string         `koanf:"input"`
	WebMode    bool           `koanf:"web"`
	Port       int            `koanf:"port"`
	Watch      bool           `koanf:"watch"`
	StateFile  string         `koanf:"statefile"`
	Top        int            `koanf:"top"`
	Verbosity  string         `koanf:"verbosity"`
	VerboseCnt int            `koanf:"verbose"`
	JSONLogs   bool           `koanf:"jsonlogs"`
	NoColor    bool           `koanf:"nocolor"`
	DebounceMs int            `koanf:"debouncems"`
	MaxWaitMs  int            `koanf:"maxwaitms"`
	Columns    Columns        `koanf:"columns"`
	Style      model.Settings `koanf:"style"`
}

func defaults() map[string]interface{} {
	style := model.DefaultSettings()
	return map[string]interface{}{
		"input":      "",
		"web":        false,
		"port":       8080,
		"watch":      false,
		"statefile":  "",
		"top":        0,
		"verbosity":  "",
		"verbose":    0,
		"jsonlogs":   false,
		"nocolor":    false,
		"debouncems": 300,
		"maxwaitms":  2000,
		"columns": map[string]interface{}{
			"node":            "node",
			"nodetype":        "type",
			"nodelinker":      "linker",
			"linkednode":      "linked",
			"linkednodetype":  "linked_type",
			"linkweight":      "weight",
			"filterkey":       "filter_key",
			"linkedfilterkey": "linked_filter_key",
			"attributes":      []string{},
			"table":           "",
		},
		"style": map[string]interface{}{
			"enablepinning":        style.EnablePinning,
			"showrelated":          style.ShowRelated,
			"wraptext":             style.WrapText,
			"bookmarkcolor":        style.BookmarkColor,
			"bookmarklightness":    style.BookmarkLightness,
			"barcolor":             style.BarColor,
			"sectioncolor":         style.SectionColor,
			"backgroundcolor":      style.BackgroundColor,
			"fontcolor":            style.FontColor,
			"fontsize":             style.FontSize,
			"barsize":              style.BarSize,
			"topcount":             style.TopCount,
			"maxcount":             style.MaxCount,
			"nodetypelabellength":  style.NodeTypeLabelLength,
			"attributeweightdelta": style.AttributeWeightDelta,
			"nodetype":             style.NodeType,
			"sectionorder":         style.SectionOrder,
		},
	}
}

// Flags registers the command line flags read by Load
func Flags(f *pflag.FlagSet) {
	f.StringP("input", "i", "", "CSV file to load")
	f.Bool("web", false, "Serve the HTTP API instead of printing a report")
	f.Int("port", 8080, "Port for the HTTP API (only used with --web)")
	f.Bool("watch", false, "Reload the input when it changes")
	f.String("statefile", "", "File persisting the chart state between runs")
	f.Int("top", 0, "Items per section in the report (style.topcount when 0)")
	f.String("verbosity", "", "Log level: trace, debug, info, warn, error")
	f.CountP("verbose", "v", "Increase log verbosity (-v debug, -vv trace)")
	f.Bool("jsonlogs", false, "Log JSON instead of the compact console format")
	f.Bool("nocolor", false, "Disable colored report output")
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(makeMapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional)
	// We ignore errors here as the file might not exist
	_ = k.Load(file.Provider(FileName), toml.Parser())

	// 3. Environment Variables
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Top <= 0 {
		cfg.Top = cfg.Style.TopCount
	}

	return &cfg, nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
