package cmd

import (
	"fmt"

	"github.com/simonvc/networth/internal/networth"
	"github.com/simonvc/networth/internal/server"
	"github.com/simonvc/networth/internal/web"
	"github.com/spf13/cobra"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser dashboard, the JSON API and the snapshot schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("networth dashboard: http://%s\n", displayAddr(cfg.Server.Listen))
		return runServer(cmd, true)
	},
}

func init() {
	webCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.listen)")
	rootCmd.AddCommand(webCmd)
}

func newDashboard(api *server.Server, svc *networth.Service) *web.Server {
	return web.NewServer(api, svc, cfg.Server.Refresh, logger)
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
