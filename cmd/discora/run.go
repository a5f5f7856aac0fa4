package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/keshon/discora/internal/status"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Register commands and connect to the gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, bot, err := loadBot()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if cfg.StatusAddr != "" {
			go func() {
				h := status.NewRouter(bot.Commands(), bot.Events())
				if err := status.Run(ctx, cfg.StatusAddr, h); err != nil {
					log.Printf("[ERR] Status server exited: %v", err)
				}
			}()
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- bot.Run(ctx)
			close(errCh)
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sig)

		select {
		case s := <-sig:
			log.Printf("[INFO] Received signal %s, shutting down...", s)
			cancel()
			<-errCh
		case err := <-errCh:
			cancel()
			if err != nil {
				log.Println("[ERR] Discord bot error:", err)
				return err
			}
		}

		log.Println("[INFO] Discord bot exited cleanly")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
