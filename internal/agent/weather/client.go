// Package weather looks up current conditions for supplier sites. Failures
// are downgraded to an error marker so a slow or broken weather API can
// never abort a request.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/xeipuuv/gojsonschema"

	stderrors "github.com/jaredmarko/worldly-demo/internal/common/errors"
	"github.com/jaredmarko/worldly-demo/internal/common/httpx"
	"github.com/jaredmarko/worldly-demo/internal/common/logger"
	"github.com/jaredmarko/worldly-demo/internal/common/metrics"
)

// Data is one weather observation, or a failure marker when Err is set.
type Data struct {
	Condition string  `json:"condition,omitempty"`
	Temp      float64 `json:"temp,omitempty"`
	WindSpeed float64 `json:"wind_speed,omitempty"`
	Err       string  `json:"error,omitempty"`
}

// Failed reports whether this observation is a failure marker.
func (d Data) Failed() bool {
	return d.Err != ""
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// responseSchema gates the external payload before decoding; a payload that
// drifts from this shape is treated like any other lookup failure.
const responseSchema = `{
	"type": "object",
	"required": ["weather", "main", "wind"],
	"properties": {
		"weather": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["main"],
				"properties": {"main": {"type": "string"}}
			}
		},
		"main": {
			"type": "object",
			"required": ["temp"],
			"properties": {"temp": {"type": "number"}}
		},
		"wind": {
			"type": "object",
			"required": ["speed"],
			"properties": {"speed": {"type": "number"}}
		}
	}
}`

type Client struct {
	config *Config
	client *httpx.Client
	schema *gojsonschema.Schema
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) (*Client, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	if err != nil {
		return nil, fmt.Errorf("compile weather schema: %w", err)
	}

	return &Client{
		config: config,
		client: httpx.NewClient(config.Timeout),
		schema: schema,
		logger: log.WithFields(map[string]interface{}{"component": "weather"}),
	}, nil
}

// Fetch returns the current conditions at (lat, lon). It never returns an
// error; any failure is folded into the Data marker.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) Data {
	data, err := c.fetch(ctx, lat, lon)
	if err != nil {
		metrics.WeatherLookupFailures.Inc()
		stdErr := stderrors.NewWeatherLookupFailedError(err)
		c.logger.WithError(stdErr).Warn("weather lookup failed", map[string]interface{}{
			"lat": lat,
			"lon": lon,
		})
		return Data{Err: fmt.Sprintf("%s: %s", stdErr.Message, stdErr.Details)}
	}
	return data
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (Data, error) {
	reqURL := fmt.Sprintf("%s?lat=%v&lon=%v&appid=%s&units=metric",
		c.config.BaseURL, lat, lon, url.QueryEscape(c.config.APIKey))

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return Data{}, err
	}

	resp, err := c.client.DoWithContext(ctx, req)
	if err != nil {
		return Data{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Data{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Data{}, err
	}

	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return Data{}, err
	}
	if !result.Valid() {
		return Data{}, fmt.Errorf("unexpected payload: %v", result.Errors())
	}

	var payload struct {
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Data{}, err
	}

	return Data{
		Condition: payload.Weather[0].Main,
		Temp:      payload.Main.Temp,
		WindSpeed: payload.Wind.Speed,
	}, nil
}
