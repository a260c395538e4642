package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/use-agent/clubfeed/catalog"
	"github.com/use-agent/clubfeed/scraper"
)

var pdfsOpts struct {
	page    string
	term    string
	out     string
	rps     float64
	timeout time.Duration
}

func init() {
	f := pdfsCmd.Flags()
	f.StringVar(&pdfsOpts.page, "page", catalog.DefaultPageURL, "The page listing the degree plans.")
	f.StringVar(&pdfsOpts.term, "term", catalog.DefaultTerm, "Keep only links whose title contains this text.")
	f.StringVar(&pdfsOpts.out, "out", defaultPDFDir(), "The directory to save PDFs into.")
	f.Float64Var(&pdfsOpts.rps, "rps", 1, "Downloads per second.")
	f.DurationVar(&pdfsOpts.timeout, "timeout", 15*time.Second, "How long to wait for the page to list its PDFs.")
	rootCmd.AddCommand(pdfsCmd)
}

func defaultPDFDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pdfs_engineering"
	}
	return filepath.Join(home, "Desktop", "pdfs_engineering")
}

var pdfsCmd = &cobra.Command{
	Use:   "pdfs [--term 2025-2026] [--out <dir>]",
	Short: "Downloads the degree-plan PDFs for one academic year.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		sc, err := scraper.New(cfg.Browser)
		if err != nil {
			return err
		}
		links, err := catalog.Find(ctx, sc, pdfsOpts.page, pdfsOpts.term, pdfsOpts.timeout)
		sc.Close()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, l := range links {
			fmt.Fprintln(out, l.URL)
		}
		fmt.Fprintf(out, "\nTotal PDFs found: %d\n", len(links))

		t1 := time.Now()
		d := catalog.NewDownloader(catalog.NewClient(time.Minute), pdfsOpts.out, pdfsOpts.rps)
		sum, err := d.Download(ctx, links)
		if err != nil {
			return err
		}

		for _, r := range sum.Results {
			switch {
			case !r.Saved():
				fmt.Fprintf(out, "Failed to download: %s (%s)\n", catalog.FileName(r.URL), r.Error)
			case !r.Valid:
				fmt.Fprintf(out, "Downloaded (not a valid PDF): %s\n", r.File)
			default:
				fmt.Fprintf(out, "Downloaded: %s (%d pages)\n", r.File, r.Pages)
			}
		}
		fmt.Fprintf(out, "\n%d downloaded, %d failed, %d invalid into %s\n",
			sum.Downloaded, sum.Failed, sum.Invalid, pdfsOpts.out)
		slog.Info("download time", "seconds", time.Since(t1).Seconds())
		return nil
	},
}
