package tracker

import (
	"time"

	"github.com/AutumnThyme/PumpkinSnatcher/internal/model"
)

// Snapshot is the dataset fetched at startup plus when it was fetched.
// It is built once and injected into every handler; nothing mutates it
// after construction.
type Snapshot struct {
	Data      model.Dataset
	FetchedAt time.Time
}
