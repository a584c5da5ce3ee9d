package preferences

import "encoding/json"

// StorageKey mirrors the key the web client keeps its settings under. The
// server persists the blob in a file of the same name so a device restore
// round-trips exactly.
const StorageKey = "shoresquad_prefs"

// Blob is the opaque settings document. The client owns the shape; the
// server never inspects fields, it only stores and returns what it was
// last given.
type Blob = json.RawMessage

// Empty is what a first-time caller gets back: an empty object, not null,
// so the client can spread it without a guard.
var Empty = Blob(`{}`)
