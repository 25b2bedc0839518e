package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/piwi3910/trimcut/internal/server"
	"github.com/piwi3910/trimcut/internal/store"
)

type serveFlags struct {
	host      string
	port      int
	noHistory bool
	debug     bool
}

// NewServeCommand creates the "serve" subcommand.
func NewServeCommand() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cut list API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.host, "host", "127.0.0.1", "Address to listen on")
	cmd.Flags().IntVarP(&flags.port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "Disable run history endpoints")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Run gin in debug mode")

	return cmd
}

func runServe(ctx context.Context, flags *serveFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var st *store.Store
	if !flags.noHistory {
		path := historyPath(cfg)
		VerboseLog("Opening history %s", path)
		st, err = store.New(path)
		if err != nil {
			return WrapCLIError(ExitIOError, "failed to open history", err)
		}
		defer st.Close()
	}

	port := cfg.ServerPort
	if flags.port != 0 {
		port = flags.port
	}
	addr := fmt.Sprintf("%s:%d", flags.host, port)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.Version = Version
	srv := server.NewServer(cfg, st, flags.debug)
	if err := srv.Run(ctx, addr); err != nil {
		return WrapCLIError(ExitGeneralError, "server failed", err)
	}
	return nil
}
