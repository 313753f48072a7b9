package main

import (
	"meetsync/core/logger"
	"meetsync/core/server"

	_ "meetsync/docs" // Swagger docs
)

// @title MeetSync API
// @version 1.0
// @description Meeting time recommendation API: extracts participant availability from free text and ranks common slots by preference

// @contact.name API Support
// @contact.email support@meetsync.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Fatal("run server error", err)
	}
}
