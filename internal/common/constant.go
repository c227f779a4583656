package common

// Metadata keys the client stores its opaque blobs under.
const (
	ProfileKey  = "profile"
	SettingsKey = "settings"
)

// EventFortuneRevealed is the analytics event sent on a fresh reveal.
const EventFortuneRevealed = "fortune_revealed"

// ClientIDHeaderName carries the anonymous install id on every RPC.
const ClientIDHeaderName = "x-client-id"

// ClientIDKey is the metadata key the install id is persisted under.
const ClientIDKey = "client_id"
