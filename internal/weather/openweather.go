package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Config configures the OpenWeatherMap client.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// DefaultConfig returns the production endpoint and timeouts.
func DefaultConfig() Config {
	return Config{
		Endpoint: "https://api.openweathermap.org",
		Timeout:  8 * time.Second,
		CacheTTL: 10 * time.Minute,
	}
}

// OpenWeatherClient implements Provider against the OpenWeatherMap current
// weather API. Successful reports are cached per city for CacheTTL.
type OpenWeatherClient struct {
	cfg   Config
	http  *http.Client
	cache *expirable.LRU[string, Report]
}

// NewOpenWeatherClient creates a client. A zero CacheTTL disables caching.
func NewOpenWeatherClient(cfg Config) *OpenWeatherClient {
	c := &OpenWeatherClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.CacheTTL > 0 {
		c.cache = expirable.NewLRU[string, Report](64, nil, cfg.CacheTTL)
	}
	return c
}

// owmResponse is the subset of /data/2.5/weather the client reads. cod is
// a number on success and a string on most errors.
type owmResponse struct {
	Cod     json.RawMessage `json:"cod"`
	Message string          `json:"message"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

func (c *OpenWeatherClient) Current(ctx context.Context, city string) (*Report, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	if c.cache != nil {
		if r, ok := c.cache.Get(key); ok {
			return &r, nil
		}
	}
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: no api key configured", ErrUnavailable)
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", "metric")
	endpoint := strings.TrimRight(c.cfg.Endpoint, "/") + "/data/2.5/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUnavailable, err)
	}

	var parsed owmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding body: %v", ErrUnavailable, err)
	}
	if code := strings.Trim(string(parsed.Cod), `"`); code != "200" {
		return nil, fmt.Errorf("%w: status %s %s", ErrUnavailable, code, parsed.Message)
	}
	if len(parsed.Weather) == 0 || parsed.Main == nil {
		return nil, fmt.Errorf("%w: incomplete body", ErrUnavailable)
	}

	r := Report{
		City:        city,
		Description: parsed.Weather[0].Description,
		TempC:       parsed.Main.Temp,
	}
	if c.cache != nil {
		c.cache.Add(key, r)
	}
	return &r, nil
}
