package main

import (
	"os"

	"github.com/klemjul/menta/cmd"
	"github.com/klemjul/menta/internal/app"
)

func main() {
	app := app.NewDefaultApp()
	if err := cmd.RootCommand(app).Execute(); err != nil {
		os.Exit(1)
	}
}
