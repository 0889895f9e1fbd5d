// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Remote Catalog API - these keys locate the upstream index and its relay proxy.
const (
	APIBaseURL      = "api.base_url"
	APIProxy        = "api.proxy"
	APIProxyEnabled = "api.proxy_enabled"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing     = "tui.item_spacing"
	TUIShowURLs        = "tui.show_urls"
	TUIReverseEpisodes = "tui.reverse_episodes"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
