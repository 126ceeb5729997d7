package cmd

import (
	"github.com/abhisek/wisein/internal/app"
	"github.com/spf13/cobra"
)

// runApp builds dependencies and launches the chat TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, envOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Service: e.svc,
		Events:  e.store.EventRepo(),
		Status:  e.status(),
	})
}
