// Package docs publica el documento Swagger de la API.
//
// swagger.json se regenera desde las anotaciones de los handlers; no editar a mano.
package docs

//go:generate swag init -g cmd/api/main.go -d ../ -o . --outputTypes json

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var SwaggerJSON []byte

// SwaggerInfo metadatos registrados en swag; el cuerpo es swagger.json.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "Inventario Ledger API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(SwaggerJSON),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
