package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env file is not an error
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
