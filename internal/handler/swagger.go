package handler

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/haldorr/pennywise-backend/docs"
)

// RegisterSwagger mounts the interactive API documentation at /swagger/*.
func RegisterSwagger(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
