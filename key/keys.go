// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Native Engine - these keys select and parameterize the playback engine backend.
const (
	EngineBackend = "engine.backend"
	EngineArgs    = "engine.args"
	EngineMPVPath = "engine.mpv_path"
)

// Media Player Controller - these keys tune the controller wrapped around the engine.
const (
	PlayerVoutWaitPeriod  = "player.vout_wait_period"
	PlayerStandardOptions = "player.standard_options"
	PlayerVolume          = "player.volume"
)

// Snapshots - these keys govern where frame captures are written.
const (
	SnapshotDir = "snapshot.dir"
)

// History Tracking - these keys configure the persistence of recently played media.
const (
	HistorySave  = "history.save"
	HistoryLimit = "history.limit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
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
