package main

import (
	"os"

	"group-scheduler/core/logger"
	"group-scheduler/core/server"
)

// @title Group Scheduler API
// @version 1.0
// @description Groups, events, shared availability calendars and event discussion.

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("Main:Run", "error", err)
		os.Exit(1)
	}
}
