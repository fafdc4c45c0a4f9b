package main

import (
	"os"

	"github.com/shantanugsharp/chatbot-be/internal/adapters/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.DefaultAppFactory).Execute(); err != nil {
		os.Exit(1)
	}
}
