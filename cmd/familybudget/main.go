package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/olex-green/family-budget/internal/commands"
)

func main() {
	// Optional .env for GEMINI_API_KEY and BUDGET_* overrides.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
