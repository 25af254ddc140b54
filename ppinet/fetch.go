package ppinet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// identifierSeparator joins gene symbols in the identifiers form field.
const identifierSeparator = "\r"

// StatusError reports a non-2xx answer from the STRING endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Fetcher queries the STRING network endpoint. It issues exactly one request per
// Fetch and never retries.
type Fetcher struct {
	cfg    FetchConfig
	client *http.Client
	logger *log.Logger
}

// NewFetcher returns a Fetcher for cfg. A nil client gets one whose timeout is taken
// from cfg.TimeoutSeconds; a value of zero or less means DefaultTimeoutSeconds.
func NewFetcher(cfg FetchConfig, client *http.Client, logger *log.Logger) *Fetcher {
	if client == nil {
		seconds := cfg.TimeoutSeconds
		if seconds <= 0 {
			seconds = DefaultTimeoutSeconds
		}
		client = &http.Client{Timeout: time.Duration(seconds) * time.Second}
	}
	return &Fetcher{cfg: cfg, client: client, logger: logger}
}

// Endpoint returns the request URL.
func (f *Fetcher) Endpoint() string {
	return strings.Join([]string{strings.TrimRight(f.cfg.BaseURL, "/"), f.cfg.OutputFormat, f.cfg.Method}, "/")
}

// Form builds the POST form for genes.
func (f *Fetcher) Form(genes []string) url.Values {
	form := url.Values{}
	form.Set("identifiers", strings.Join(genes, identifierSeparator))
	form.Set("species", strconv.Itoa(f.cfg.Species))
	form.Set("caller_identity", f.cfg.CallerIdentity)
	return form
}

// Fetch posts genes to the endpoint and parses the tab-separated answer.
func (f *Fetcher) Fetch(ctx context.Context, genes []string) (InteractionTable, error) {
	if len(genes) == 0 {
		return nil, ErrNoGenes
	}
	endpoint := f.Endpoint()
	body := f.Form(genes).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	f.debugf("POST %s genes=%d species=%d", endpoint, len(genes), f.cfg.Species)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: excerpt(data, 200)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyResponse
	}
	table, err := ParseTSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	f.debugf("received %d interactions", len(table))
	return table, nil
}

func (f *Fetcher) debugf(format string, args ...any) {
	if f.logger != nil {
		f.logger.Debugf(format, args...)
	}
}

func excerpt(data []byte, max int) string {
	text := strings.TrimSpace(string(data))
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
