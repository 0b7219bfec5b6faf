package http

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// Docs sirve la UI en /docs y el documento en /docs/swagger.json. spec es el swagger.json embebido.
func Docs(app *fiber.App, spec []byte) {
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "./docs/swagger.json",
		FileContent: spec,
		Path:        "docs",
		Title:       "Inventario Ledger API",
	}))
}
