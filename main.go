package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kimhaegyeong/reading-tracker/config"
	"github.com/kimhaegyeong/reading-tracker/log"
	"github.com/kimhaegyeong/reading-tracker/server"
	"github.com/kimhaegyeong/reading-tracker/store"
	"github.com/kimhaegyeong/reading-tracker/version"
)

var (
	configFile string
	host       string
	port       int
	data       string

	rootCmd = &cobra.Command{
		Use:     "reading-tracker",
		Short:   "Reading tracker keeps your books, sessions, quotes and notes in one place",
		Version: version.GetCurrentVersion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			s, err := store.GetInstance(ctx)
			if err != nil {
				log.Error("Error initializing store", zap.Error(err))
				return err
			}
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return err
			}

			srv := server.NewServer(ctx, s)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil {
					log.Error("Server error", zap.Error(err))
					return err
				}
			case sig := <-sigCh:
				log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
				srv.Shutdown(ctx)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "address to listen on")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "port to listen on")
	rootCmd.PersistentFlags().StringVar(&data, "data", "", "directory to store data in")

	cobra.OnInitialize(func() {
		if _, err := config.GetConfig(); err != nil {
			panic(err)
		}
		if configFile != "" {
			if _, err := config.ParseFile(configFile); err != nil {
				panic(err)
			}
		}
		// Flags win over the config file.
		if host != "" {
			config.Opts.Host = host
		}
		if port != 0 {
			config.Opts.Port = port
		}
		if data != "" {
			config.Opts.Data = data
			config.Opts.DSN = filepath.Join(data, "reading_tracker.db")
		}

		log.Logger = log.NewLogger()
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	if log.Logger != nil {
		log.Logger.Sync()
	}
}
