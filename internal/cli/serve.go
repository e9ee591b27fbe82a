package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordwall/pkg/errors"
	"github.com/matzehuels/wordwall/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the word list and wall over HTTP",
		Long: `Serve the word list and wall over HTTP.

Open /wall.svg in a browser, or scan /qr.png with a phone. The JSON API
under /api edits the same store the other commands use.`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			c.bindFlags(cmd.Flags(), map[string]string{
				"addr":       keyServerAddr,
				"public-url": keyServerURL,
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg := c.settings()
			if cfg.Server.PublicURL != "" {
				if err := errors.ValidatePublicURL(cfg.Server.PublicURL); err != nil {
					return err
				}
			}
			opts := cfg.pipelineOptions()
			opts.Logger = logger

			srv := server.New(store, runner, server.Options{
				Addr:       cfg.Server.Addr,
				PublicURL:  cfg.Server.PublicURL,
				Pipeline:   opts,
				Translator: c.newTranslator(ctx),
				Logger:     logger,
			})

			printSuccess("Serving %d words", store.Len())
			printKeyValue("Wall", StyleLink.Render("http://"+cfg.Server.Addr+"/wall.svg"))
			printKeyValue("QR code", StyleLink.Render("http://"+cfg.Server.Addr+"/qr.png"))
			printNewline()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().String("addr", server.DefaultAddr, "listen address")
	cmd.Flags().String("public-url", "", "base URL encoded in the QR code (default: request host)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
