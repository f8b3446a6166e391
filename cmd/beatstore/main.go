package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dame6k/beatstore/config"
	"github.com/dame6k/beatstore/internal/adminapi"
	"github.com/dame6k/beatstore/internal/app"
	"github.com/dame6k/beatstore/internal/webserver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	version = "develop"

	configFile string
	profileID  string
)

var rootCmd = &cobra.Command{
	Use:          "beatstore",
	Short:        "Beat storefront server",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront API",
	RunE:  runServe,
}

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Drop and recreate the audit tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := setup()
		if err != nil {
			return err
		}
		defer application.Release()
		application.InitDb()
		fmt.Fprintln(cmd.OutOrStdout(), "database initialised")
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog of a profile as CSV to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := setup()
		if err != nil {
			return err
		}
		defer application.Release()
		p, err := application.ProfileCache().Page(profileID)
		if err != nil {
			return err
		}
		return p.Catalog.ExportCSV(cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config yaml file")
	exportCmd.Flags().StringVar(&profileID, "profile", "", "profile id to export")
	_ = exportCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(serveCmd, initdbCmd, exportCmd, versionCmd)
}

func setup() (*app.Application, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		application.Release()
		return nil, err
	}
	return application, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	application, err := setup()
	if err != nil {
		return err
	}
	defer application.Release()

	webserver.Init(application)
	adminapi.Init()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(webserver.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		zap.S().Info("storefront api shutting down")
		return webserver.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
