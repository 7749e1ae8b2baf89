// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the plan, user and generation
// services.
//
// Error responses share one shape, {"error": ..., "trace_id": ...}, and never
// carry raw error text; details are logged after redaction. Task generation
// failures additionally report their user-facing category.
package api
