// Package store defines the persistence interfaces for accounts and the
// book catalog, the errors every implementation reports, and the
// transaction helper services use to group writes.
package store
