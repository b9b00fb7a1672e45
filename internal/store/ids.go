package store

import "github.com/google/uuid"

// The original system derived ids from wall-clock millis, which collide
// under rapid creation. UUIDs close that gap; the human-facing sequential
// numbers (OS-, F-, COT-) stay counters guarded by the store mutex.
var newIDFn = uuid.NewString
