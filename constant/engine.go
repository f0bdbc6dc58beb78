package constant

// Engine backend identifiers accepted by the engine.backend setting.
const (
	BackendMPVIPC = "mpv-ipc"
	BackendLibMPV = "libmpv"
)

// SnapshotPrefix starts every default snapshot file name.
const SnapshotPrefix = App + "-snapshot-"
