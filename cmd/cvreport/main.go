// Command cvreport generates a CV analysis report PDF from an analysis
// record JSON file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talentika/cvreport"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cvreport",
		Short: "Generate CV analysis report PDFs",
	}
	root.AddCommand(generateCmd())
	return root
}

func generateCmd() *cobra.Command {
	var (
		in      string
		out     string
		name    string
		role    string
		fontDir string
		logo    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render an analysis record to a PDF report",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("reading record: %w", err)
			}

			pages, warnings, err := cvreport.FromJSON(data).
				Candidate(name).
				Role(role).
				FontDir(fontDir).
				Logo(logo).
				ToFile(out)
			if err != nil {
				return err
			}

			for _, w := range warnings {
				slog.Warn("report degraded", "code", w.Code, "detail", w.Message)
			}
			fmt.Printf("wrote %s (%d pages)\n", out, pages)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "analysis record JSON file")
	cmd.Flags().StringVar(&out, "out", "report.pdf", "output PDF path")
	cmd.Flags().StringVar(&name, "name", "", "candidate display name")
	cmd.Flags().StringVar(&role, "role", "", "target role label")
	cmd.Flags().StringVar(&fontDir, "fonts", "fonts", "directory with the Poppins TTF files")
	cmd.Flags().StringVar(&logo, "logo", "assets/logo.png", "header logo PNG")
	cmd.MarkFlagRequired("in")
	return cmd
}
