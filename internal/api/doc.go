// Package api provides the HTTP handlers for the review scheduling API.
//
// Handlers translate between the HTTP surface and the service layer. They
// decode and validate request payloads, extract the authenticated user from
// the request context, call the appropriate service, and map service errors
// to sanitized HTTP responses.
package api
