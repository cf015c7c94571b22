package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sdkview/internal/render"
	"github.com/ziadkadry99/sdkview/internal/server"
	"github.com/ziadkadry99/sdkview/internal/session"
	"github.com/ziadkadry99/sdkview/internal/viewer"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the browser viewer",
	Long:  `Starts the sdkview HTTP server with the SDK browser UI, its JSON API and the live search websocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		src, err := newSource(cfg)
		if err != nil {
			return fmt.Errorf("creating source: %w", err)
		}
		rend, err := render.New()
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		})

		v := viewer.New(src, session.NewStore(rend), viewer.Options{
			Debounce:    time.Duration(cfg.Server.SearchDebounceMS) * time.Millisecond,
			JumpTimeout: time.Duration(cfg.Server.JumpTimeoutMS) * time.Millisecond,
		})
		v.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "sdkview server v%s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Source: %s\n", describeSource(cfg))
		fmt.Fprintf(os.Stderr, "  Open http://localhost:%d/ in your browser\n", cfg.Server.Port)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
