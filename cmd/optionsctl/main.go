// Command optionsctl drives the option admin API from a terminal: it mints
// development tokens and lists, adds, edits and deletes a shop's options
// through the same gateway the admin UI uses.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"productoptions/adminui"
	"productoptions/configs"
	"productoptions/pkg/uioption"
	"productoptions/utils"
)

type globals struct {
	cfg    *configs.Config
	logger *slog.Logger
	server string
	token  string
	shop   string
}

func main() {
	cmd := createRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func createRootCommand() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:          "optionsctl",
		Short:        "Manage shop product options over the admin API",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			g.cfg = configs.LoadConfig()
			g.logger = configs.NewLogger(g.cfg)
			if g.server == "" {
				g.server = "http://localhost:" + g.cfg.Port
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&g.server, "server", "", "API base URL (default http://localhost:$PORT)")
	root.PersistentFlags().StringVar(&g.token, "token", os.Getenv("OPTIONS_TOKEN"), "bearer token; minted from --shop when empty")
	root.PersistentFlags().StringVar(&g.shop, "shop", os.Getenv("SEED_SHOP"), "shop domain used to mint a token")

	root.AddCommand(tokenCommand(g), listCommand(g), addCommand(g), editCommand(g), deleteCommand(g))
	return root
}

func tokenCommand(g *globals) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a development JWT for --shop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ttl <= 0 {
				ttl = g.cfg.JWTTTL
			}
			tok, err := g.mint(ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default JWT_TTL)")
	return cmd
}

func listCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the shop's options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw, store, err := g.gateway()
			if err != nil {
				return err
			}
			if _, err := gw.Refresh(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd, store.Options())
		},
	}
}

func addCommand(g *globals) *cobra.Command {
	var values []string
	var optionType string
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create an option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := g.gateway()
			if err != nil {
				return err
			}
			opt, err := gw.AddOption(cmd.Context(), args[0], values, optionType)
			if err != nil {
				return err
			}
			return printJSON(cmd, opt)
		},
	}
	cmd.Flags().StringSliceVar(&values, "values", nil, "comma separated values")
	cmd.Flags().StringVar(&optionType, "type", "", "text, number, image or color")
	return cmd
}

func editCommand(g *globals) *cobra.Command {
	var name, optionType string
	var values []string
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Rename an option and replace its values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, store, err := g.gateway()
			if err != nil {
				return err
			}
			if _, err := gw.Refresh(cmd.Context()); err != nil {
				return err
			}
			current, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("option %s not found", args[0])
			}
			if name == "" {
				name = current.Name
			}
			if !cmd.Flags().Changed("values") {
				values = uioption.ValueNames(current)
			}
			opt, err := gw.EditOption(cmd.Context(), args[0], name, values, optionType)
			if err != nil {
				return err
			}
			return printJSON(cmd, opt)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name (default keeps the current one)")
	cmd.Flags().StringSliceVar(&values, "values", nil, "comma separated values")
	cmd.Flags().StringVar(&optionType, "type", "", "option type; must match the stored type")
	return cmd
}

func deleteCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete options",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := g.gateway()
			if err != nil {
				return err
			}
			n, err := gw.DeleteOptions(cmd.Context(), args...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d option(s)\n", n)
			return nil
		},
	}
}

func (g *globals) mint(ttl time.Duration) (string, error) {
	if strings.TrimSpace(g.shop) == "" {
		return "", fmt.Errorf("--shop is required to mint a token")
	}
	return utils.GenerateToken(g.shop, g.cfg.JWTSecret, ttl)
}

func (g *globals) gateway() (*adminui.Gateway, *adminui.Store, error) {
	tok := g.token
	if tok == "" {
		var err error
		if tok, err = g.mint(time.Hour); err != nil {
			return nil, nil, err
		}
	}
	store := adminui.NewStore(g.logger)
	notes := adminui.NotifierFunc(func(n adminui.Notification) {
		if n.Level == adminui.LevelError {
			g.logger.Error(n.Message)
			return
		}
		g.logger.Info(n.Message)
	})
	gw := adminui.NewGateway(g.server, tok, store, adminui.WithLogger(g.logger), adminui.WithNotifier(notes))
	return gw, store, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
