// Package api handles incoming HTTP requests, request validation and
// response formatting. It acts as an adapter between HTTP clients and the
// account and book services, translating service errors into status codes
// and client-safe messages.
package api
