package tools

import (
	"context"
	"fmt"
	"strings"

	"prospect-pipeline/internal/common/config"
	"prospect-pipeline/internal/common/httpclient"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/common/metrics"
	"prospect-pipeline/internal/common/validation"
)

const (
	minRandomUsers = 1
	maxRandomUsers = 10
)

// RandomUser is one generated profile.
type RandomUser struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Country string `json:"country"`
}

// RandomUserResult is the tool output.
type RandomUserResult struct {
	Users  []RandomUser `json:"users"`
	Source string       `json:"source"` // "live" or "mock"
}

// RandomUserService fetches generated profiles from the public API,
// with a fixed mock roster as fallback.
type RandomUserService struct {
	baseURL string
	client  *httpclient.Client
	logger  logger.Logger
}

func NewRandomUserService(cfg config.ToolsConfig, log logger.Logger) *RandomUserService {
	baseURL := strings.TrimRight(cfg.RandomUserBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://randomuser.me/api"
	}
	return &RandomUserService{
		baseURL: baseURL,
		client:  httpclient.NewClient(cfg.TimeoutDuration()),
		logger:  log.WithFields(map[string]interface{}{"component": "random-user"}),
	}
}

func (s *RandomUserService) Tool() Tool {
	return Tool{
		Name:        "get_random_users",
		Description: "Generate random user profiles",
		Schema: validation.JSONSchema{
			Type: "object",
			Properties: map[string]validation.Property{
				"count": {
					Type:        "integer",
					Description: "Number of profiles, 1 to 10",
					Minimum:     validation.Float(minRandomUsers),
					Maximum:     validation.Float(maxRandomUsers),
				},
			},
		},
		Execute: func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
			count := minRandomUsers
			if raw, ok := params["count"].(float64); ok {
				count = int(raw)
			}
			return s.GetUsers(ctx, count)
		},
	}
}

type randomUserAPIResponse struct {
	Results []struct {
		Name struct {
			First string `json:"first"`
			Last  string `json:"last"`
		} `json:"name"`
		Email    string `json:"email"`
		Location struct {
			Country string `json:"country"`
		} `json:"location"`
	} `json:"results"`
}

// GetUsers returns count profiles, clamping count into the valid range.
func (s *RandomUserService) GetUsers(ctx context.Context, count int) (*RandomUserResult, error) {
	if count < minRandomUsers {
		count = minRandomUsers
	}
	if count > maxRandomUsers {
		count = maxRandomUsers
	}

	var resp randomUserAPIResponse
	err := s.client.DoJSON(ctx, "GET", fmt.Sprintf("%s/?results=%d", s.baseURL, count), nil, nil, &resp)
	if err == nil && len(resp.Results) > 0 {
		metrics.ToolInvocations.WithLabelValues("get_random_users", "live").Inc()
		users := make([]RandomUser, 0, len(resp.Results))
		for _, r := range resp.Results {
			users = append(users, RandomUser{
				Name:    strings.TrimSpace(r.Name.First + " " + r.Name.Last),
				Email:   r.Email,
				Country: r.Location.Country,
			})
		}
		return &RandomUserResult{Users: users, Source: "live"}, nil
	}

	if err != nil {
		s.logger.Warn("random user api failed, serving mock", map[string]interface{}{
			"error": err.Error(),
		})
	}

	metrics.ToolInvocations.WithLabelValues("get_random_users", "mock").Inc()
	return &RandomUserResult{Users: mockUsers(count), Source: "mock"}, nil
}

var mockRoster = []RandomUser{
	{Name: "Asha Patel", Email: "asha.patel@example.com", Country: "India"},
	{Name: "Lars Nielsen", Email: "lars.nielsen@example.com", Country: "Denmark"},
	{Name: "Maya Chen", Email: "maya.chen@example.com", Country: "Singapore"},
	{Name: "Diego Alvarez", Email: "diego.alvarez@example.com", Country: "Mexico"},
	{Name: "Amara Okafor", Email: "amara.okafor@example.com", Country: "Nigeria"},
	{Name: "Elena Petrova", Email: "elena.petrova@example.com", Country: "Bulgaria"},
	{Name: "Tom Becker", Email: "tom.becker@example.com", Country: "Germany"},
	{Name: "Yuki Tanaka", Email: "yuki.tanaka@example.com", Country: "Japan"},
	{Name: "Sarah Quinn", Email: "sarah.quinn@example.com", Country: "Ireland"},
	{Name: "Omar Haddad", Email: "omar.haddad@example.com", Country: "Jordan"},
}

func mockUsers(count int) []RandomUser {
	if count > len(mockRoster) {
		count = len(mockRoster)
	}
	out := make([]RandomUser, count)
	copy(out, mockRoster[:count])
	return out
}
