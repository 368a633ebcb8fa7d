package main

import (
	"github.com/joho/godotenv"
	"ila/internal/cli"
)

func main() {
	// Hosted embedding providers read their API key from the environment;
	// a .env file in the working directory is the easiest place for it.
	_ = godotenv.Load()

	cli.Execute()
}
