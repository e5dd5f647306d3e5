// Package docs bundles the OpenAPI description of the HTTP API.
package docs

import _ "embed"

//go:embed airplanes.swagger.json
var AirplanesSwagger []byte
