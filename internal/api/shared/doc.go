// Package shared contains the request decoding, validation, response
// writing and request-context helpers used by the api handlers and the
// middleware.
package shared
