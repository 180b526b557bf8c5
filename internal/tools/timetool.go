package tools

import (
	"context"
	"strings"
	"time"

	"prospect-pipeline/internal/common/config"
	"prospect-pipeline/internal/common/httpclient"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/common/metrics"
	"prospect-pipeline/internal/common/validation"
)

// TimeResult is the tool output.
type TimeResult struct {
	Timezone  string `json:"timezone"`
	Datetime  string `json:"datetime"`
	UTCOffset string `json:"utcOffset"`
	Source    string `json:"source"` // "live" or "local"
}

// TimeService answers timezone queries from the world time API and
// falls back to the local tz database when the API is unreachable.
type TimeService struct {
	baseURL string
	client  *httpclient.Client
	logger  logger.Logger
}

func NewTimeService(cfg config.ToolsConfig, log logger.Logger) *TimeService {
	baseURL := strings.TrimRight(cfg.TimeBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://worldtimeapi.org/api/timezone"
	}
	return &TimeService{
		baseURL: baseURL,
		client:  httpclient.NewClient(cfg.TimeoutDuration()),
		logger:  log.WithFields(map[string]interface{}{"component": "time"}),
	}
}

func (s *TimeService) Tool() Tool {
	return Tool{
		Name:        "get_time",
		Description: "Current time in an IANA timezone",
		Schema: validation.JSONSchema{
			Type: "object",
			Properties: map[string]validation.Property{
				"timezone": {Type: "string", Description: "IANA timezone, e.g. \"Asia/Kolkata\""},
			},
			Required: []string{"timezone"},
		},
		Execute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			tz, _ := params["timezone"].(string)
			return s.GetTime(ctx, tz)
		},
	}
}

type worldTimeAPIResponse struct {
	Datetime  string `json:"datetime"`
	UTCOffset string `json:"utc_offset"`
	Timezone  string `json:"timezone"`
}

func (s *TimeService) GetTime(ctx context.Context, timezone string) (*TimeResult, error) {
	timezone = strings.TrimSpace(timezone)

	var resp worldTimeAPIResponse
	err := s.client.DoJSON(ctx, "GET", s.baseURL+"/"+timezone, nil, nil, &resp)
	if err == nil && resp.Datetime != "" {
		metrics.ToolInvocations.WithLabelValues("get_time", "live").Inc()
		return &TimeResult{
			Timezone:  resp.Timezone,
			Datetime:  resp.Datetime,
			UTCOffset: resp.UTCOffset,
			Source:    "live",
		}, nil
	}

	if err != nil {
		s.logger.Warn("time api failed, using local tz database", map[string]interface{}{
			"timezone": timezone,
			"error":    err.Error(),
		})
	}

	loc, locErr := time.LoadLocation(timezone)
	if locErr != nil {
		return nil, locErr
	}

	now := time.Now().In(loc)
	metrics.ToolInvocations.WithLabelValues("get_time", "local").Inc()
	return &TimeResult{
		Timezone:  timezone,
		Datetime:  now.Format(time.RFC3339),
		UTCOffset: now.Format("-07:00"),
		Source:    "local",
	}, nil
}
