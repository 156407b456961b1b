// Package diag defines the diagnostic model shared by the parser driver and
// the CLI.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings about a
//     comment body: fatal parse errors, trailing unparsed text, I/O failures.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not perform any IO. Pretty and JSON rendering lives in
// internal/diagfmt; FormatShort is kept here because tests and the
// "check --format short" command share it.
//
// # Data model
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans, e.g. the attribute keyword whose
//     arguments failed to parse.
package diag
