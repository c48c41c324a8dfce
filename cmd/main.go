package main

import (
	"errors"
	"io/fs"

	"github.com/farellandr/airport/internal/server"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Fatal("Error loading .env file")
	}

	if err := server.Start(); err != nil {
		logrus.WithError(err).Fatal("Server failed to start")
	}
}
