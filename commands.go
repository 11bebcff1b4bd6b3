package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jmfantin2/botdocs/internal/models"
	"github.com/jmfantin2/botdocs/internal/server"
	"github.com/jmfantin2/botdocs/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio or streamable HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, blobs, logger, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer blobs.Close()
		defer func() { _ = logger.Sync() }()

		srv := server.New(store, session.New())

		switch cfg.Transport {
		case "stdio":
			logger.Info("botdocs MCP server starting (stdio)", zap.String("backend", cfg.Backend))
			if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("stdio server: %w", err)
			}
			return nil
		case "http":
			if cfg.BearerToken == "" {
				logger.Warn("no bearer token configured; /mcp is open")
			}
			return server.ServeHTTP(ctx, srv, store, server.HTTPOptions{
				Addr:        cfg.HTTPAddr,
				BearerToken: cfg.BearerToken,
				Logger:      logger,
			})
		default:
			return fmt.Errorf("unknown transport %q (use stdio or http)", cfg.Transport)
		}
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog and print matches as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("search query is required")
		}
		store, blobs, _, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer blobs.Close()
		return printJSON(cmd.OutOrStdout(), store.SearchAll(query))
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the organization > chatbot > workflow hierarchy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, blobs, _, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer blobs.Close()
		printTree(cmd.OutOrStdout(), store.Tree())
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, blobs, _, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer blobs.Close()
		return printJSON(cmd.OutOrStdout(), store.Stats())
	},
}

func init() {
	serveCmd.Flags().StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport mode: stdio or http")
	serveCmd.Flags().StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address (only used with --transport http)")

	rootCmd.AddCommand(serveCmd, searchCmd, treeCmd, statsCmd)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTree(w io.Writer, orgs []models.OrgNode) {
	if len(orgs) == 0 {
		fmt.Fprintln(w, "(empty catalog)")
		return
	}
	for _, org := range orgs {
		fmt.Fprintf(w, "%s  [%s]\n", org.Name, org.ID)
		for _, bot := range org.Chatbots {
			fmt.Fprintf(w, "  %s  [%s]\n", bot.Name, bot.ID)
			for _, wf := range bot.Workflows {
				name := wf.Name
				if wf.Emoji != "" {
					name = wf.Emoji + " " + name
				}
				fmt.Fprintf(w, "    %s  [%s]\n", name, wf.ID)
			}
		}
	}
}
