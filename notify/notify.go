// Package notify delivers per-table change notifications to the catalog
// store. Events carry no payload beyond "something on this table changed";
// consumers re-read, they never patch.
package notify

// Tables the storefront subscribes to.
const (
	TableProducts     = "products"
	TableCollections  = "collections"
	TableSiteSettings = "site_settings"
)

// WatchedTables returns the tables in subscription order.
func WatchedTables() []string {
	return []string{TableProducts, TableCollections, TableSiteSettings}
}

// Event indicates that a table was mutated (insert, update or delete).
type Event struct {
	Table string
}

// Listener is one change-notification transport. Events starts delivery
// and returns the event stream; the stream is closed on Close or when the
// context ends.
type Listener interface {
	Events() <-chan Event
	Close() error
}
