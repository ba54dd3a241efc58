package session

import "github.com/mithrel/foliate/pkg/api"

// Snapshot is everything a presenter needs to render the session. It is
// a value copy; presenters never reach into controller state.
type Snapshot struct {
	Catalog  []api.CatalogEntry
	ActiveID string
	Content  string
	Settings api.Settings
	// Dirty reports whether the buffer has edits not yet durable.
	Dirty bool
	// StorageErr is an actionable message when durability lags (for
	// example a full store); empty when all writes have landed.
	StorageErr string
}
