// Package reclameaqui provides a read-only client for the public Reclame
// Aqui search and site APIs.
package reclameaqui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultSiteURL    = "https://www.reclameaqui.com.br"
	defaultSearchAPI  = "https://iosearch.reclameaqui.com.br/raichu-io-site-search-v1"
	defaultCompanyAPI = "https://iosite.reclameaqui.com.br/raichu-io-site-v1"
)

// Client defines the Reclame Aqui operations needed to assemble a dossier.
// The four follow-up calls return raw JSON bodies; parsing belongs to the
// normalizer, which owns the schema expectations.
type Client interface {
	// SearchCompanies looks up companies matching a free-form term
	// (company name or CNPJ).
	SearchCompanies(ctx context.Context, term string) (*SearchResponse, error)
	// CompanyProfile fetches the enhanced-account profile by shortname.
	// Companies without that tier answer with an error status here.
	CompanyProfile(ctx context.Context, shortname string) (string, error)
	// MainProblems fetches the all-time top complaint categories.
	MainProblems(ctx context.Context, companyID string) (string, error)
	// Problems6Months fetches the complaint categories of the last six months.
	Problems6Months(ctx context.Context, companyID string) (string, error)
	// IndexEvolution fetches the monthly reputation-index time series.
	IndexEvolution(ctx context.Context, companyID string) (string, error)
}

// SearchResponse is the parsed body of the modern-search API.
type SearchResponse struct {
	Companies []Company `json:"companies"`
}

// Company is one search match.
type Company struct {
	ID          string   `json:"id"`
	CompanyName string   `json:"companyName"`
	FantasyName string   `json:"fantasyName"`
	Shortname   string   `json:"shortname"`
	Status      string   `json:"status"`
	Documents   []string `json:"documents"`
}

// APIError is returned when the upstream responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reclameaqui: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithSiteURL overrides the site base URL used for session priming.
func WithSiteURL(url string) Option {
	return func(c *httpClient) {
		c.siteURL = url
	}
}

// WithSearchAPIURL overrides the search API base URL.
func WithSearchAPIURL(url string) Option {
	return func(c *httpClient) {
		c.searchAPI = url
	}
}

// WithCompanyAPIURL overrides the site (company) API base URL.
func WithCompanyAPIURL(url string) Option {
	return func(c *httpClient) {
		c.companyAPI = url
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithHTTPClient sets a custom *http.Client. The caller is responsible for
// attaching a cookie jar if session reuse matters.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// httpClient implements Client using net/http. The APIs sit behind
// anti-automation protection, so every request carries a browser-imitating
// header set and all calls share one cookie jar: the first request primes the
// session against the site root so challenge cookies persist across calls.
type httpClient struct {
	siteURL    string
	searchAPI  string
	companyAPI string
	http       *http.Client
	primeOnce  sync.Once
}

// NewClient creates a Reclame Aqui client with a fresh cookie-backed session.
func NewClient(opts ...Option) Client {
	jar, _ := cookiejar.New(nil)
	c := &httpClient{
		siteURL:    defaultSiteURL,
		searchAPI:  defaultSearchAPI,
		companyAPI: defaultCompanyAPI,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SearchCompanies(ctx context.Context, term string) (*SearchResponse, error) {
	body, err := c.get(ctx, c.searchAPI+"/companies/modern-search/"+url.PathEscape(term))
	if err != nil {
		return nil, eris.Wrap(err, "reclameaqui: search companies")
	}

	var result SearchResponse
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, eris.Wrap(err, "reclameaqui: unmarshal search response")
	}

	return &result, nil
}

func (c *httpClient) CompanyProfile(ctx context.Context, shortname string) (string, error) {
	return c.get(ctx, c.companyAPI+"/company/shortname/"+url.PathEscape(shortname))
}

func (c *httpClient) MainProblems(ctx context.Context, companyID string) (string, error) {
	return c.get(ctx, c.searchAPI+"/query/companyMainProblems/"+url.PathEscape(companyID))
}

func (c *httpClient) Problems6Months(ctx context.Context, companyID string) (string, error) {
	return c.get(ctx, c.searchAPI+"/query/companyPerformanceProblems6Months/"+url.PathEscape(companyID))
}

func (c *httpClient) IndexEvolution(ctx context.Context, companyID string) (string, error) {
	return c.get(ctx, c.companyAPI+"/company/indexevolution/"+url.PathEscape(companyID))
}

// get performs one GET against an API endpoint, priming the session first.
func (c *httpClient) get(ctx context.Context, reqURL string) (string, error) {
	c.prime(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "reclameaqui: create request")
	}
	setBrowserHeaders(req, c.siteURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "reclameaqui: execute request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "reclameaqui: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return string(body), nil
}

// prime visits the site root once per client so the jar picks up any
// challenge cookies. Best effort: a failed priming request is ignored, the
// API calls may still succeed on their own.
func (c *httpClient) prime(ctx context.Context) {
	c.primeOnce.Do(func() {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.siteURL, nil)
		if err != nil {
			return
		}
		setBrowserHeaders(req, c.siteURL)

		resp, err := c.http.Do(req)
		if err != nil {
			return
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	})
}

func setBrowserHeaders(req *http.Request, origin string) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", origin)
	req.Header.Set("Referer", origin+"/")
}
