// Package appidentityassets ships the app identity inside the binary so it
// runs from any directory.
package appidentityassets

import _ "embed"

// YAML is the app.yaml consumed by internal/appid when no .fulmen/app.yaml
// is found next to the binary.
//
//go:embed app.yaml
var YAML []byte
