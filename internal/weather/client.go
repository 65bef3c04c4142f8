package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DailySample is one daily mean temperature from the archive.
type DailySample struct {
	Date    time.Time
	Celsius float64
}

// Client fetches historical temperatures from an Open-Meteo style archive API.
// The lookup coordinates are fixed configuration, never derived from input data.
type Client struct {
	baseURL   string
	latitude  float64
	longitude float64
	timezone  string
	client    *http.Client
}

// NewClient constructs an archive client.
func NewClient(baseURL string, latitude, longitude float64, timezone string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("weather: empty base url")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		latitude:  latitude,
		longitude: longitude,
		timezone:  timezone,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

type archiveResponse struct {
	Hourly struct {
		Time          []string   `json:"time"`
		Temperature2M []*float64 `json:"temperature_2m"`
	} `json:"hourly"`
	Daily struct {
		Time              []string   `json:"time"`
		Temperature2MMean []*float64 `json:"temperature_2m_mean"`
	} `json:"daily"`
}

// HourlyTemperatures returns one temperature per hour of the given date, indexed
// by hour of day. Hours the archive has no value for are NaN-free: they are
// simply absent from the returned map.
func (c *Client) HourlyTemperatures(ctx context.Context, date time.Time) (map[int]float64, error) {
	resp, err := c.fetch(ctx, url.Values{
		"start_date": {date.Format(dateLayout)},
		"end_date":   {date.Format(dateLayout)},
		"hourly":     {"temperature_2m"},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Hourly.Time) == 0 {
		return nil, errors.New("weather: archive response has no hourly block")
	}

	temps := make(map[int]float64, len(resp.Hourly.Time))
	for i, ts := range resp.Hourly.Time {
		if i >= len(resp.Hourly.Temperature2M) || resp.Hourly.Temperature2M[i] == nil {
			continue
		}
		t, err := time.Parse("2006-01-02T15:04", ts)
		if err != nil {
			return nil, fmt.Errorf("weather: bad hourly timestamp %q: %w", ts, err)
		}
		temps[t.Hour()] = *resp.Hourly.Temperature2M[i]
	}
	return temps, nil
}

// DailyMeanTemperatures returns the daily mean temperature for every archive
// date in [start, end] that has a value.
func (c *Client) DailyMeanTemperatures(ctx context.Context, start, end time.Time) ([]DailySample, error) {
	resp, err := c.fetch(ctx, url.Values{
		"start_date": {start.Format(dateLayout)},
		"end_date":   {end.Format(dateLayout)},
		"daily":      {"temperature_2m_mean"},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Daily.Time) == 0 {
		return nil, errors.New("weather: archive response has no daily block")
	}

	samples := make([]DailySample, 0, len(resp.Daily.Time))
	for i, ds := range resp.Daily.Time {
		if i >= len(resp.Daily.Temperature2MMean) || resp.Daily.Temperature2MMean[i] == nil {
			continue
		}
		d, err := time.Parse(dateLayout, ds)
		if err != nil {
			return nil, fmt.Errorf("weather: bad daily date %q: %w", ds, err)
		}
		samples = append(samples, DailySample{Date: d, Celsius: *resp.Daily.Temperature2MMean[i]})
	}
	return samples, nil
}

func (c *Client) fetch(ctx context.Context, params url.Values) (*archiveResponse, error) {
	params.Set("latitude", fmt.Sprintf("%.4f", c.latitude))
	params.Set("longitude", fmt.Sprintf("%.4f", c.longitude))
	if c.timezone != "" {
		params.Set("timezone", c.timezone)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather: build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather: archive returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("weather: decode response: %w", err)
	}
	return &decoded, nil
}
