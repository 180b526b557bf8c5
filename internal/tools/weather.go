package tools

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"

	"prospect-pipeline/internal/common/config"
	"prospect-pipeline/internal/common/httpclient"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/common/metrics"
	"prospect-pipeline/internal/common/validation"
)

// WeatherReport is the tool's normalized output regardless of source.
type WeatherReport struct {
	City      string  `json:"city"`
	TempC     float64 `json:"tempC"`
	Condition string  `json:"condition"`
	Humidity  int     `json:"humidity"`
	WindKmh   float64 `json:"windKmh"`
	Source    string  `json:"source"` // "live" or "mock"
}

// WeatherService answers weather queries from the upstream API when a
// key is configured, falling back to deterministic mock data so the
// tool always answers.
type WeatherService struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
	cache   *Cache
	logger  logger.Logger
}

func NewWeatherService(cfg config.ToolsConfig, cache *Cache, log logger.Logger) *WeatherService {
	baseURL := strings.TrimRight(cfg.WeatherBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	return &WeatherService{
		baseURL: baseURL,
		apiKey:  cfg.WeatherAPIKey,
		client:  httpclient.NewClient(cfg.TimeoutDuration()),
		cache:   cache,
		logger:  log.WithFields(map[string]interface{}{"component": "weather"}),
	}
}

// Tool wraps the service as a registry entry.
func (s *WeatherService) Tool() Tool {
	return Tool{
		Name:        "get_weather",
		Description: "Current weather for a city",
		Schema: validation.JSONSchema{
			Type: "object",
			Properties: map[string]validation.Property{
				"city": {Type: "string", Description: "City name, e.g. \"Berlin\""},
			},
			Required: []string{"city"},
		},
		Execute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			city, _ := params["city"].(string)
			return s.GetWeather(ctx, city)
		},
	}
}

func (s *WeatherService) GetWeather(ctx context.Context, city string) (*WeatherReport, error) {
	city = strings.TrimSpace(city)
	cacheKey := "weather:" + strings.ToLower(city)

	var cached WeatherReport
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	if report, err := s.fetchLive(ctx, city); err == nil {
		metrics.ToolInvocations.WithLabelValues("get_weather", "live").Inc()
		s.cache.Set(ctx, cacheKey, report)
		return report, nil
	} else if s.apiKey != "" {
		s.logger.Warn("live weather lookup failed, serving mock", map[string]interface{}{
			"city":  city,
			"error": err.Error(),
		})
	}

	metrics.ToolInvocations.WithLabelValues("get_weather", "mock").Inc()
	report := mockWeather(city)
	s.cache.Set(ctx, cacheKey, report)
	return report, nil
}

type openWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
	} `json:"wind"`
}

func (s *WeatherService) fetchLive(ctx context.Context, city string) (*WeatherReport, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("weather api key not configured")
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("units", "metric")
	params.Set("appid", s.apiKey)

	var resp openWeatherResponse
	if err := s.client.DoJSON(ctx, "GET", s.baseURL+"/weather?"+params.Encode(), nil, nil, &resp); err != nil {
		return nil, err
	}

	condition := "Unknown"
	if len(resp.Weather) > 0 {
		condition = resp.Weather[0].Main
	}

	return &WeatherReport{
		City:      city,
		TempC:     resp.Main.Temp,
		Condition: condition,
		Humidity:  resp.Main.Humidity,
		WindKmh:   resp.Wind.Speed * 3.6,
		Source:    "live",
	}, nil
}

var mockConditions = []string{"Clear", "Clouds", "Rain", "Drizzle", "Mist"}

// mockWeather derives stable fake conditions from the city name so
// repeated calls agree with each other.
func mockWeather(city string) *WeatherReport {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(city)))
	seed := h.Sum32()

	return &WeatherReport{
		City:      city,
		TempC:     float64(int(seed%35)) - 5, // -5..29
		Condition: mockConditions[seed%uint32(len(mockConditions))],
		Humidity:  30 + int(seed%60),
		WindKmh:   float64(seed % 40),
		Source:    "mock",
	}
}
