// Package api is the REST client for the fitlog backend.
//
// # Overview
//
// A single Client carries the shared authenticated-request contract:
//   - the current token (from a TokenSource) goes out as
//     "Authorization: Bearer <token>"; with no token the header is omitted
//     and the server decides;
//   - writes are JSON with "Content-Type: application/json";
//   - every response body is decoded and handed back unchanged.
//
// Resource[T] implements Index/Show/Create/Update/Delete plus the nested
// comment endpoints for each kind; Auth covers login, signup and password
// change; Profiles adds photo upload.
//
// # Error Handling
//
// Failures are returned as *Error with a Kind. errors.Is matches the kind's
// sentinel: ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrInvalid,
// ErrUnavailable, ErrDecode, ErrCanceled. Only ErrUnavailable is temporary.
package api
