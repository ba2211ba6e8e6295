// Package http provides HTTP handlers and middleware for the executive
// scheduler API.
//
// The router exposes the following endpoints:
//   - POST /login: issues a session token. Body: {"email","password"}. Response:
//     {"token","expires_at","user"} with the token also surfaced via the
//     `X-Session-Token` header and a `session_token` cookie.
//   - POST /logout: revokes the current session token extracted from the
//     Authorization header or session cookie. Returns 204 No Content and
//     clears the cookie.
//   - POST /users, GET /users, GET /users/me, GET /users/me/schedule: account
//     registration, role-filtered listing, the caller's own profile, and the
//     caller's combined day schedule. Payloads are defined in user_handler.go.
//   - GET /availability/slots, GET /availability/common-slots,
//     POST /availability/block: free-interval search for one executive, the
//     common-slot intersection for a meeting party (a 404 response carries the
//     escalation recorded for the secretary), and secretary-driven calendar
//     blocking. Payloads are defined in availability_handler.go.
//   - POST /meetings, GET /meetings/schedule, GET/PUT/DELETE /meetings/{id}:
//     conflict-checked meeting scheduling, per-day listings, and creator-only
//     reschedule and cancellation exchanging the `meetingDTO` payload defined
//     in meeting_handler.go.
//   - POST /leaves, GET/PUT/DELETE /leaves/{id} and POST /engagements,
//     PUT/DELETE /engagements/{id}: personal leave and external engagement
//     periods, managed by their owner or the secretary. Payloads are defined
//     in period_handler.go.
//   - GET /escalations, DELETE /escalations/{id}: the secretary's queue of
//     failed common-slot searches. Payloads are defined in
//     escalation_handler.go.
//   - POST /secretary/emails: secretary broadcast mail to a set of executives.
//   - GET /statistics/executive-time, GET /statistics/projects,
//     GET /statistics/executive-fraction: meeting-load reports over a date
//     range. Payloads are defined in statistics_handler.go.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
