//go:build sqlite

package storage

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

// DefaultStoreKind is the backend used when no explicit choice is made.
func DefaultStoreKind() string {
	return "sqlite"
}
