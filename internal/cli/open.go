package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/foliate/internal/render"
	"github.com/mithrel/foliate/internal/session"
	"github.com/mithrel/foliate/internal/tui"
)

// runSession is the default action: start the controller over the
// durable store and hand the terminal to the interactive session.
func runSession(cmd *cobra.Command, args []string) error {
	app := getApp(cmd)

	ctrl := session.New(app.Docs, app.Settings, app.KV, session.Options{
		DebounceWindow: time.Duration(app.Cfg.GetInt("autosave.debounce_ms")) * time.Millisecond,
		Logger:         app.Log,
	})
	if err := ctrl.Start(cmd.Context()); err != nil {
		return err
	}
	defer func() { _ = ctrl.Close(cmd.Context()) }()

	rend := render.New(app.Cfg.GetInt("render.width"))
	return tui.Run(cmd.Context(), ctrl, rend)
}
