// Package models defines the core domain models for the intake API.
//
// The sole entity is Application: one applicant submission, identified by a
// generated UUID. Request and response payload types live here too so the
// service and HTTP layers share a single wire definition.
//
// Field names on the wire are snake_case; optional text fields use the empty
// string to mean "not provided" and are omitted from JSON when empty.
package models
