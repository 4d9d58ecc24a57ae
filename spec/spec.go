// Package spec embeds the OpenAPI document for the Bike Logbook API.
// The handler package serves it at /openapi.yaml, and internal/handler/gen
// is generated from it.
package spec

import _ "embed"

// OpenAPI holds the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
