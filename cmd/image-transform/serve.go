package main

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-transform/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transforms as MCP tools over stdin/stdout (one JSON-RPC message per line)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.New(Version).Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
