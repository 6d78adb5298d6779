package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the detail pane is hidden.
	LayoutCompactWidth = 100

	// ListPanePercent is the share of the width given to the record list.
	ListPanePercent = 55
)

// Vertical chrome.
const (
	// HeaderLines covers the header and command bar.
	HeaderLines = 2

	// BannerLines is the height of the bordered error banner.
	BannerLines = 3
)

// Form sizing.
const (
	FormBoxWidth     = 60
	FormLabelWidth   = 14
	FormInputWidth   = 36
	DetailLabelWidth = 16
)
