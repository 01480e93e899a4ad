package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"pet-companion/internal/domain/pets"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "pet-companion"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type serveFlags struct {
	configPath string
	addr       string
	logLevel   string
}

func rootCmd() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Pet companion care service",
		Long: `Backend del companion de mascotas virtuales.

Mantiene las stats de la mascota activa de cada dispositivo (decay periódico,
acciones de cuidado, mood) y las persiste con debounce.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), f)
		},
	}

	cmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&f.addr, "addr", "", "HTTP listen address (pisa http.addr y PORT)")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), f)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "catalog",
		Short: "Print the built-in pet catalog",
		Run: func(cmd *cobra.Command, args []string) {
			printCatalog(cmd.OutOrStdout())
		},
	})

	return cmd
}

func printCatalog(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tGLYPH\tTRAIT\tDESCRIPTION")
	for _, p := range pets.Builtins() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Glyph, p.Trait, strings.TrimSpace(p.Description))
	}
	_ = tw.Flush()
}
