package model

// Section ordering policies
const (
	OrderItemValues      = "Item Values"
	OrderItemCounts      = "Item Counts"
	OrderNamesAscending  = "Section Names (A-Z, 0-9)"
	OrderNamesDescending = "Section Names (Z-A, 9-0)"
)

// Settings are the user-facing options of the chart
type Settings struct {
	EnablePinning bool `koanf:"enablepinning" json:"enablePinning"`
	ShowRelated   bool `koanf:"showrelated" json:"showRelated"`
	WrapText      bool `koanf:"wraptext" json:"wrapText"`

	BookmarkColor     string `koanf:"bookmarkcolor" json:"bookmarkColor"`
	BookmarkLightness int    `koanf:"bookmarklightness" json:"bookmarkLightness"`
	BarColor          string `koanf:"barcolor" json:"barColor"`
	SectionColor      string `koanf:"sectioncolor" json:"sectionColor"`
	BackgroundColor   string `koanf:"backgroundcolor" json:"backgroundColor"`
	FontColor         string `koanf:"fontcolor" json:"fontColor"`
	FontSize          int    `koanf:"fontsize" json:"fontSize"`
	BarSize           int    `koanf:"barsize" json:"barSize"`

	TopCount             int     `koanf:"topcount" json:"topCount"`
	MaxCount             int     `koanf:"maxcount" json:"maxCount"`
	NodeTypeLabelLength  int     `koanf:"nodetypelabellength" json:"nodeTypeLabelLength"`
	AttributeWeightDelta float64 `koanf:"attributeweightdelta" json:"attributeWeightDelta"`
	// NodeType overrides the default node type label when set
	NodeType     string `koanf:"nodetype" json:"nodeType"`
	SectionOrder string `koanf:"sectionorder" json:"sectionOrder"`
}

// DefaultSettings returns the settings of a freshly added chart
func DefaultSettings() Settings {
	return Settings{
		EnablePinning:        true,
		ShowRelated:          true,
		BookmarkColor:        "#01B8AA",
		BookmarkLightness:    75,
		BarColor:             "#CCCCCC",
		SectionColor:         "#EFEFEF",
		BackgroundColor:      "#FFFFFF",
		FontColor:            "#111111",
		FontSize:             9,
		BarSize:              40,
		TopCount:             5,
		MaxCount:             100,
		NodeTypeLabelLength:  10,
		AttributeWeightDelta: 0.25,
		SectionOrder:         OrderItemValues,
	}
}

// DefaultType returns the node type used for rows without a NODE_TYPE
func (s Settings) DefaultType() string {
	if s.NodeType != "" {
		return s.NodeType
	}
	return DefaultTypeLabel
}
