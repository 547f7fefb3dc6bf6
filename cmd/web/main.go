package main

import (
	"careassoc_backend/internal/app"
	"careassoc_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("server exited", "error", err)
	}
}
