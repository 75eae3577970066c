package main

import (
	"os"

	"github.com/akshay-rawal/Quiz-Game/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
