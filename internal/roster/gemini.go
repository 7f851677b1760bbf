package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/liconlabs/corporate-legends/backend/internal/metrics"
	"github.com/liconlabs/corporate-legends/backend/internal/models"
)

const (
	geminiModel   = "gemini-2.5-flash"
	geminiAPIURL  = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	geminiTimeout = 60 * time.Second
)

const rosterPrompt = `Genera una lista de 40 empleados corporativos para la empresa 'LICON'. ` +
	`Asígnalos a los departamentos: Dirección, Ventas, Marketing, Recursos Humanos, Finanzas, Operaciones, Sistemas, Logística. ` +
	`Incluye una mezcla de rarezas. Roles como 'Director General', 'Gerente Regional', 'Analista Senior', ` +
	`'Desarrollador Full Stack', 'Contador', 'Jefe de Almacén'. Descripciones profesionales pero inspiradoras en Español.`

// GeminiClient generates employee card templates via the Gemini REST API.
// Responses are cached per prompt so a process never pays for the same
// generation twice, and outbound calls are rate limited.
type GeminiClient struct {
	apiKey     string
	httpClient *http.Client
	enabled    bool
	limiter    *rate.Limiter
	cache      *lru.Cache[string, []cardTemplate]
}

// cardTemplate is one generated employee before ids and image refs are
// assigned.
type cardTemplate struct {
	Name        string            `json:"name"`
	Role        string            `json:"role"`
	Department  models.Department `json:"department"`
	Rarity      models.Rarity     `json:"rarity"`
	Description string            `json:"description"`
	Power       int               `json:"power"`
}

// NewGeminiClient reads GEMINI_API_KEY (or GEMINI_API_KEY_FILE) and returns
// a client. With no key the client stays disabled and callers fall back to
// the static roster.
func NewGeminiClient() *GeminiClient {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		if keyPath := os.Getenv("GEMINI_API_KEY_FILE"); keyPath != "" {
			if data, err := os.ReadFile(keyPath); err == nil {
				apiKey = strings.TrimSpace(string(data))
			}
		}
	}

	cache, err := lru.New[string, []cardTemplate](4)
	if err != nil {
		log.Printf("Failed to create roster cache: %v", err)
	}

	c := &GeminiClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: geminiTimeout},
		enabled:    apiKey != "",
		limiter:    rate.NewLimiter(rate.Every(20*time.Second), 2),
		cache:      cache,
	}

	if c.enabled {
		log.Printf("Gemini roster client: enabled (model=%s)", geminiModel)
	} else {
		log.Printf("Gemini roster client: disabled (no GEMINI_API_KEY)")
	}
	return c
}

// IsEnabled returns whether generation is available.
func (c *GeminiClient) IsEnabled() bool {
	return c.enabled
}

// GenerateTemplates asks Gemini for a batch of employee templates.
func (c *GeminiClient) GenerateTemplates(ctx context.Context) ([]cardTemplate, error) {
	if !c.enabled {
		return nil, fmt.Errorf("gemini client not enabled (no GEMINI_API_KEY)")
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(rosterPrompt); ok {
			return cached, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	metrics.GeminiRequestsTotal.Inc()

	req := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: rosterPrompt}}},
		},
		GenerationConfig: geminiGenConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   rosterSchema(),
			Temperature:      0.9,
			MaxOutputTokens:  8192,
		},
	}

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf(geminiAPIURL, geminiModel) + "?key=" + c.apiKey
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.GeminiErrorsTotal.WithLabelValues("network").Inc()
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GeminiErrorsTotal.WithLabelValues("read").Inc()
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.GeminiErrorsTotal.WithLabelValues("api").Inc()
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp geminiAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		metrics.GeminiErrorsTotal.WithLabelValues("parse").Inc()
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}
	if apiResp.Error != nil {
		metrics.GeminiErrorsTotal.WithLabelValues("api").Inc()
		return nil, fmt.Errorf("API error %d: %s", apiResp.Error.Code, apiResp.Error.Message)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		metrics.GeminiErrorsTotal.WithLabelValues("empty").Inc()
		return nil, fmt.Errorf("no response from Gemini")
	}

	var templates []cardTemplate
	if err := json.Unmarshal([]byte(apiResp.Candidates[0].Content.Parts[0].Text), &templates); err != nil {
		metrics.GeminiErrorsTotal.WithLabelValues("parse").Inc()
		return nil, fmt.Errorf("failed to parse generated roster: %w", err)
	}
	if len(templates) == 0 {
		metrics.GeminiErrorsTotal.WithLabelValues("empty").Inc()
		return nil, fmt.Errorf("Gemini returned an empty roster")
	}

	if c.cache != nil {
		c.cache.Add(rosterPrompt, templates)
	}
	return templates, nil
}

// rosterSchema constrains the generation to the closed department and
// rarity enumerations.
func rosterSchema() map[string]interface{} {
	departments := make([]string, 0, 8)
	for _, d := range models.AllDepartments() {
		departments = append(departments, string(d))
	}
	rarities := make([]string, 0, 4)
	for _, r := range models.AllRarities() {
		rarities = append(rarities, string(r))
	}
	return map[string]interface{}{
		"type": "ARRAY",
		"items": map[string]interface{}{
			"type": "OBJECT",
			"properties": map[string]interface{}{
				"name":        map[string]interface{}{"type": "STRING"},
				"role":        map[string]interface{}{"type": "STRING"},
				"department":  map[string]interface{}{"type": "STRING", "enum": departments},
				"rarity":      map[string]interface{}{"type": "STRING", "enum": rarities},
				"description": map[string]interface{}{"type": "STRING"},
				"power":       map[string]interface{}{"type": "NUMBER", "description": "Un número entre 1 y 99"},
			},
			"required": []string{"name", "role", "department", "rarity", "description", "power"},
		},
	}
}

// Gemini API wire types

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenConfig struct {
	ResponseMimeType string                 `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
	Temperature      float64                `json:"temperature"`
	MaxOutputTokens  int                    `json:"maxOutputTokens"`
}

type geminiAPIResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
			Role  string       `json:"role"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
