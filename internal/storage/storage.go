// Package storage defines the durable local key-value store the storefront
// persists client state to. It is the Go counterpart of a browser's
// localStorage: synchronous, small, scoped to one machine.
package storage

// Storage is a flat key-value store. Get reports ok=false for an absent key
// rather than an error so callers can treat "never persisted" as a normal
// state.
type Storage interface {
	Get(key string) (data []byte, ok bool, err error)
	Put(key string, data []byte) error
	Delete(key string) error
}
