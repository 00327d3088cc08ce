package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tbo-go/internal/dispatch"
	"tbo-go/internal/httpserver"
	"tbo-go/internal/nativemsg"
	"tbo-go/internal/tbo"
)

// serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extension API over local HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("serve")
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := a.Config().Server
		if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
			cfg.ListenAddr = addr
		}

		srv := httpserver.New(cfg, httpserver.Deps{
			Dispatcher: dispatch.NewDispatcher(a.Service(), a.Logger()),
			Store:      a.Service(),
			Clock:      tbo.RealClock{},
			Logger:     a.Logger(),
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()
		fmt.Fprintf(os.Stderr, "Listening on http://%s\n", srv.Addr())

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	},
}

// native command
var nativeCmd = &cobra.Command{
	Use:   "native [ORIGIN]",
	Short: "Run as a browser native messaging host on stdin/stdout",
	Long: "Run as a browser native messaging host on stdin/stdout. The browser passes " +
		"the calling extension's origin as an argument; it is logged and otherwise ignored.",
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("native")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) > 0 {
			a.Logger().Info("native host launched", "origin", args[0])
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		host := nativemsg.NewHost(dispatch.NewDispatcher(a.Service(), a.Logger()), a.Logger())
		return host.Serve(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (default from config)")
}
