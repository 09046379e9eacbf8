package devserver

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	apperrors "waitingtodo/internal/infrastructure/errors"
	"waitingtodo/internal/infrastructure/logging"
)

const defaultRequestTimeout = 2 * time.Second

// Page is what the probe learned about the development server
type Page struct {
	URL        string
	StatusCode int
	Title      string
}

// Prober waits for the development server to answer and reads its document title
type Prober struct {
	retry          *apperrors.RetryConfig
	requestTimeout time.Duration
	log            logging.Logger
}

// NewProber creates a prober that tries up to attempts times
func NewProber(logger logging.Logger, attempts int) *Prober {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	retry := apperrors.DefaultRetryConfig()
	retry.MaxAttempts = max(attempts, 1)
	retry.InitialDelay = 250 * time.Millisecond
	retry.MaxDelay = 2 * time.Second

	return &Prober{
		retry:          retry,
		requestTimeout: defaultRequestTimeout,
		log:            logging.With(logger, "component", "devserver"),
	}
}

// Probe fetches serverURL until it answers or the attempts run out
func (p *Prober) Probe(ctx context.Context, serverURL string) (*Page, error) {
	if !isValidServerURL(serverURL) {
		return nil, apperrors.HandleValidationError("dev_server_probe", "url", serverURL, "must be an absolute http(s) URL")
	}

	begin := time.Now()
	var page *Page
	err := apperrors.WithRetryContext(ctx, p.retry, func() error {
		got, err := p.visit(serverURL)
		if err != nil {
			return err
		}
		page = got
		return nil
	}, "dev_server_probe")
	if err != nil {
		return nil, err
	}

	logging.LogOperation(p.log, "dev_server_probe", time.Since(begin), map[string]interface{}{
		"url":    serverURL,
		"status": page.StatusCode,
		"title":  page.Title,
	})
	return page, nil
}

func (p *Prober) visit(serverURL string) (*Page, error) {
	c := colly.NewCollector(colly.AllowURLRevisit())
	c.SetRequestTimeout(p.requestTimeout)

	page := &Page{URL: serverURL}
	var visitErr error

	c.OnResponse(func(r *colly.Response) {
		page.StatusCode = r.StatusCode
	})

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if page.Title == "" {
			page.Title = strings.TrimSpace(e.Text)
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			page.StatusCode = r.StatusCode
		}
		visitErr = err
	})

	if err := c.Visit(serverURL); err != nil && visitErr == nil {
		visitErr = err
	}
	if visitErr != nil {
		return nil, apperrors.NewShellErrorWithContext("dev_server_probe",
			fmt.Errorf("dev server not ready: %w", visitErr),
			apperrors.ErrCodeDevServer,
			map[string]string{"url": serverURL})
	}
	return page, nil
}

func isValidServerURL(serverURL string) bool {
	u, err := url.Parse(serverURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
