// Package redact rewrites delimited key-value log messages, obscuring the
// values of named sensitive fields before a line reaches any sink.
//
// Matching contract:
//   - A value run starts after "field=" and stops at the first following
//     separator, never spanning other key-value pairs.
//   - Every occurrence of a listed field is rewritten; fields absent from the
//     message leave it unchanged.
//   - The full field list is applied against the progressively rewritten
//     message, so each field matches independently of redactions already
//     applied for other fields.
//
// Patterns are compiled once at construction time (Redactor) for repeated use
// on the logging hot path; Fields is the one-shot convenience form.
package redact
