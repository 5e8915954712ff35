package main

import (
	"os"

	"github.com/aligator/fatinspect/internal/logger"
)

func main() {
	// Errors before the flags are parsed still need a logger.
	if _, err := logger.Init("error"); err != nil {
		os.Exit(1)
	}

	if err := createRootCommand().Execute(); err != nil {
		logger.Logger().Error(err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
