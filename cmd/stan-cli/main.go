package main

import (
	"stan-api/cmd/stan-cli/commands"
	"stan-api/internal/serviceutil"

	"github.com/joho/godotenv"
)

func main() {
	// .env.local overrides .env, both are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	commands.ExecuteContext(serviceutil.SignalContext())
}
