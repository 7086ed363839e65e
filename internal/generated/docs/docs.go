// Package docs registers the API document with swag so echo-swagger can
// serve it under /swagger/.
package docs

import (
	"encoding/json"
	"fmt"
	"sync"

	"scantrack/internal/generated/servers"

	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Title:            "scantrack",
	Description:      "Scan driven order lifecycle tracker.",
	InfoInstanceName: "swagger",
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register renders the embedded OpenAPI document as JSON and registers it.
// Later calls return the result of the first one.
func Register() error {
	registerOnce.Do(func() {
		doc, err := servers.GetSwagger()
		if err != nil {
			registerErr = err
			return
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			registerErr = fmt.Errorf("render api document: %w", err)
			return
		}
		SwaggerInfo.SwaggerTemplate = string(raw)
		swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
	})
	return registerErr
}
