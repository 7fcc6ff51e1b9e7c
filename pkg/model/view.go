package model

import "strings"

// DataView is the current way of listing and counting nodes. The zero
// value is not a valid view.
type DataView string

const (
	ViewRankedAttributes   DataView = "RANKED ATTRIBUTES"
	ViewImplicitAttributes DataView = "IMPLICIT ATTRIBUTES"
	ViewExplicitAttributes DataView = "EXPLICIT ATTRIBUTES"
	ViewItems              DataView = "ITEMS"
	ViewLinks              DataView = "LINKS"
	ViewJointLinks         DataView = "JOINT LINKS"
	ViewOutLinks           DataView = "OUT LINKS"
	ViewInLinks            DataView = "IN LINKS"
	ViewJointOutLinks      DataView = "JOINT OUT LINKS"
	ViewJointInLinks       DataView = "JOINT IN LINKS"
)

// AttributesOption is the single view option standing in for all attribute views
const AttributesOption = "ATTRIBUTES"

// IsAttribute returns true for the attribute ranking views
func (v DataView) IsAttribute() bool {
	switch v {
	case ViewRankedAttributes, ViewImplicitAttributes, ViewExplicitAttributes:
		return true
	}
	return false
}

// CountsCooccurrences returns true for the joint views
func (v DataView) CountsCooccurrences() bool {
	switch v {
	case ViewJointLinks, ViewJointOutLinks, ViewJointInLinks:
		return true
	}
	return false
}

// IsOutbound returns true for views following outbound explicit links
func (v DataView) IsOutbound() bool {
	return v == ViewOutLinks || v == ViewJointOutLinks
}

// IsInbound returns true for views following inbound explicit links
func (v DataView) IsInbound() bool {
	return v == ViewInLinks || v == ViewJointInLinks
}

// IsImplicit returns true for views over implicit links
func (v DataView) IsImplicit() bool {
	return v == ViewLinks || v == ViewJointLinks
}

// SupportedViews lists the views available for a data format, in the order
// they are offered
func SupportedViews(format DataFormat, hasAttributes, allowPinning bool) []DataView {
	var views []DataView
	switch format {
	case FormatRankedLabels, FormatRankedValues:
		views = append(views, ViewItems)
	case FormatImplicitLinks:
		views = append(views, ViewLinks)
	case FormatExplicitLinks:
		views = append(views, ViewOutLinks, ViewInLinks)
	}

	if allowPinning {
		switch format {
		case FormatImplicitLinks:
			views = append(views, ViewJointLinks)
		case FormatExplicitLinks:
			views = append(views, ViewJointOutLinks, ViewJointInLinks)
		}
	}

	if hasAttributes {
		switch format {
		case FormatExplicitLinks:
			views = append(views, ViewExplicitAttributes)
		case FormatImplicitLinks:
			views = append(views, ViewImplicitAttributes)
		default:
			views = append(views, ViewRankedAttributes)
		}
	}
	return views
}

// IsSupported reports whether view is one of the supported views
func IsSupported(view DataView, format DataFormat, hasAttributes, allowPinning bool) bool {
	for _, v := range SupportedViews(format, hasAttributes, allowPinning) {
		if v == view {
			return true
		}
	}
	return false
}

// ViewOptions lists the user-facing view options. The attribute views are
// collapsed into a single AttributesOption.
func ViewOptions(format DataFormat, hasAttributes, allowPinning bool) []string {
	var options []string
	for _, v := range SupportedViews(format, hasAttributes, allowPinning) {
		if hasAttributes && strings.Contains(string(v), AttributesOption) {
			continue
		}
		options = append(options, string(v))
	}
	if hasAttributes {
		options = append(options, AttributesOption)
	}
	return options
}

// ViewForOption maps a view option back to a concrete view for the format
func ViewForOption(format DataFormat, option string) DataView {
	if option != AttributesOption {
		return DataView(option)
	}
	switch format {
	case FormatImplicitLinks:
		return ViewImplicitAttributes
	case FormatExplicitLinks:
		return ViewExplicitAttributes
	default:
		return ViewRankedAttributes
	}
}

// DefaultView picks the most informative starting view for a format
func DefaultView(format DataFormat, hasAttributes bool) DataView {
	switch {
	case format == FormatRankedLabels && hasAttributes:
		return ViewRankedAttributes
	case format == FormatRankedValues:
		return ViewRankedAttributes
	case format == FormatImplicitLinks:
		return ViewJointLinks
	case format == FormatExplicitLinks:
		return ViewOutLinks
	default:
		return ViewItems
	}
}
