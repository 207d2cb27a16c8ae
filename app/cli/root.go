// Package cli wires configuration, storage and the mission service into
// the icando command tree.
package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"icando-go/app/config"
	"icando-go/app/services"
	"icando-go/app/store"
)

type app struct {
	cfgFile string
	cfg     *config.Config
	log     *logrus.Logger
	store   store.Store
	svc     *services.MissionService
}

// NewRootCmd builds the icando command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "icando",
		Short:         "A hierarchical to-do list",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./icando.yaml)")

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newMoveCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newImportCmd(a))
	return rootCmd
}

// Execute runs the command tree.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) init(ctx context.Context) error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = config.NewLogger(cfg)

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	a.store = st
	a.svc = services.NewMissionService(st, a.log)
	return a.svc.Load(ctx)
}

func (a *app) close(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	return a.store.Close(ctx)
}
