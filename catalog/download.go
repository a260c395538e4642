package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/use-agent/clubfeed/models"
	"golang.org/x/time/rate"
)

// maxPDFSize caps a single download.
const maxPDFSize = 64 << 20

// Result is the outcome of one download.
type Result struct {
	URL    string `json:"url"`
	File   string `json:"file,omitempty"`
	Status int    `json:"status,omitempty"`
	Bytes  int    `json:"bytes,omitempty"`
	Pages  int    `json:"pages,omitempty"`

	// Valid is false when the saved file did not pass PDF validation.
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Saved reports whether the file was written to disk.
func (r Result) Saved() bool { return r.File != "" }

// Summary collects the results of a Download run.
type Summary struct {
	Found      int      `json:"found"`
	Downloaded int      `json:"downloaded"`
	Failed     int      `json:"failed"`
	Invalid    int      `json:"invalid"`
	Results    []Result `json:"results"`
}

// Downloader saves PDFs into a directory one at a time.
type Downloader struct {
	client  *http.Client
	limiter *rate.Limiter
	dir     string
	conf    *model.Configuration
	maxSize int64
}

// NewDownloader creates a Downloader writing into dir. rps paces the
// requests; zero or less means no pacing.
func NewDownloader(client *http.Client, dir string, rps float64) *Downloader {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &Downloader{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		dir:     dir,
		conf:    conf,
		maxSize: maxPDFSize,
	}
}

// Download fetches links in order. A failed link is recorded and skipped.
// Only a missing output directory or a canceled ctx stop the run early.
func (d *Downloader) Download(ctx context.Context, links []Link) (*Summary, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeDownload, "failed to create output directory", err)
	}

	sum := &Summary{Found: len(links), Results: make([]Result, 0, len(links))}
	for _, link := range links {
		if err := d.limiter.Wait(ctx); err != nil {
			return sum, models.NewScrapeError(models.ErrCodeDownload, "download canceled", err)
		}

		res := d.fetch(ctx, link.URL)
		switch {
		case !res.Saved():
			sum.Failed++
			slog.Warn("pdf download failed", "url", res.URL, "status", res.Status, "error", res.Error)
		case !res.Valid:
			sum.Downloaded++
			sum.Invalid++
			slog.Warn("pdf saved but failed validation", "file", res.File, "error", res.Error)
		default:
			sum.Downloaded++
			slog.Info("pdf downloaded", "file", res.File, "bytes", res.Bytes, "pages", res.Pages)
		}
		sum.Results = append(sum.Results, res)
	}
	return sum, nil
}

func (d *Downloader) fetch(ctx context.Context, rawURL string) Result {
	res := Result{URL: rawURL}

	name := FileName(rawURL)
	if name == "" || !filepath.IsLocal(name) || strings.ContainsAny(name, `/\`) {
		res.Error = fmt.Sprintf("unsafe file name %q in URL", name)
		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	req.Header.Set("Accept", "application/pdf,*/*;q=0.8")

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		res.Error = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		return res
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, d.maxSize+1))
	if err != nil {
		res.Error = fmt.Sprintf("read body: %v", err)
		return res
	}
	if int64(len(body)) > d.maxSize {
		res.Error = fmt.Sprintf("exceeds size limit of %d bytes", d.maxSize)
		return res
	}

	path := filepath.Join(d.dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		res.Error = fmt.Sprintf("write file: %v", err)
		return res
	}
	res.File = path
	res.Bytes = len(body)

	pages, err := d.validate(body)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Valid = true
	res.Pages = pages

	slog.Debug("pdf fetched", "url", rawURL, "elapsed", time.Since(start).Round(time.Millisecond))
	return res
}

// validate parses body as a PDF and returns its page count.
func (d *Downloader) validate(body []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(body), d.conf)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu validate: %w", err)
	}
	return ctx.PageCount, nil
}
