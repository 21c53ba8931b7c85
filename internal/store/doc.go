// Package store defines the persistence interfaces for lessons and upvotes,
// the sentinel errors every implementation returns, and the transaction
// helper shared by the SQL implementations.
package store
