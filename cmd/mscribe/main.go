package main

import (
	"fmt"
	"os"

	"meeting-scribe/cmd/mscribe/cmd"
	"meeting-scribe/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
