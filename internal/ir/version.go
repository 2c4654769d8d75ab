package ir

// Version constants for the snapshot schema and the preprocessing core.
const (
	// IRVersion is the snapshot schema version.
	IRVersion = "1"

	// CoreVersion is the version of the preprocessing core.
	CoreVersion = "0.1.0"
)
