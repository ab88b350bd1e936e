// Package service holds the account and catalog use cases. Services
// validate input with the domain rules, group multi-statement writes in a
// transaction, and return sentinel errors the API layer maps to HTTP
// status codes.
package service
