// Package server provides the HTTP surface for the analytics sync pipeline and answer service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Endpoints
//
//   - POST /tasks/sync : triggers a full sync run. Always answers 200 with a
//     plain-text job summary; per-artist failures live in the summary and the
//     logs, not the status code. The sync job is a background concern and its
//     HTTP caller is typically a scheduler.
//   - POST /v1/answers : the query RPC. Requires a bearer token; the request
//     carries {artistId, prompt} and the response is a JSON envelope with
//     either the generated answer or a typed error code.
//   - GET /v1/artists/search : authenticated proxy to the provider artist
//     catalog, used by onboarding to resolve external ids.
//
// # Error Codes
//
// Answer-path failures map onto wire codes: unauthenticated, invalid-argument,
// permission-denied, not-found, internal. The mapping lives in [errorCode] so
// handlers never invent codes inline.
//
// # Authentication
//
// Callers authenticate with an opaque API token issued at onboarding,
// presented as "Authorization: Bearer <token>". [AuthMiddleware] resolves the
// token to a user and stores it on the request context; handlers read it back
// with [CallerFrom].
package server
