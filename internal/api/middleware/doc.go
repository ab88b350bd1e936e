// Package middleware provides the HTTP middleware mounted by the router:
// per-request trace IDs with a request-scoped logger, and the JWT gate in
// front of the protected routes.
package middleware
