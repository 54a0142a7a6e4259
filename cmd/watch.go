package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/skillmesh/internal/model"
	"github.com/papapumpkin/skillmesh/internal/telemetry"
)

var watchCmd = &cobra.Command{
	Use:   "watch [model]",
	Short: "Re-validate a relationship model every time it changes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	path := a.modelPath(args)
	if err := a.validate(path); err != nil {
		a.printer.Error(err.Error())
	}

	w, err := model.NewWatcher(path)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.printer.Info("watching " + w.File + " (ctrl-c to stop)")
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			a.printer.ModelReloaded(path)
			_ = a.events.Record(telemetry.KindModelReloaded, "", map[string]any{"model": path, "ok": change.Err == nil})
			if change.Err != nil {
				a.printer.Error(change.Err.Error())
				continue
			}
			if err := a.report(path, change.Model); err != nil {
				a.log.Debug("model still invalid", "err", err)
			}
		}
	}
}
