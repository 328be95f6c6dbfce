package main

import (
	"github.com/joho/godotenv"

	"mspwatch/internal/cli"
)

func main() {
	// Credentials commonly live in a local .env; absence is fine.
	_ = godotenv.Load()

	cli.Execute()
}
