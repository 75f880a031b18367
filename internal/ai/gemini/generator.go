package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/hh-gateway/internal/domain"
	"github.com/spigell/hh-gateway/internal/logger"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt_match.md
var matchPromptTemplate string

//go:embed prompt_letter.md
var letterPromptTemplate string

const (
	defaultMaxLogLength = 200
	maxPayloadChars     = 4000
)

// Generator turns Gemini completions into match analyses and cover letters.
type Generator struct {
	client    contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewGenerator(client contentGenerator, logger *zap.Logger, maxLogLength int) *Generator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Generator{
		client:    client,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (g *Generator) AnalyzeMatch(ctx context.Context, resume map[string]any, vacancy domain.Vacancy) (*domain.MatchAnalysis, error) {
	raw, err := g.generate(ctx, matchPromptTemplate, resume, vacancy)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Score          int      `json:"score"`
		Strengths      []string `json:"strengths"`
		Gaps           []string `json:"gaps"`
		Recommendation string   `json:"recommendation"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("parse gemini analysis: %w", err)
	}

	return &domain.MatchAnalysis{
		Score:          domain.ClampScore(payload.Score),
		Strengths:      payload.Strengths,
		Gaps:           payload.Gaps,
		Recommendation: payload.Recommendation,
	}, nil
}

func (g *Generator) GenerateCoverLetter(ctx context.Context, resume map[string]any, vacancy domain.Vacancy) (*domain.CoverLetter, error) {
	raw, err := g.generate(ctx, letterPromptTemplate, resume, vacancy)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Content string `json:"content"`
		Score   int    `json:"score"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, fmt.Errorf("parse gemini cover letter: %w", err)
	}

	if strings.TrimSpace(payload.Content) == "" {
		return nil, fmt.Errorf("gemini returned empty cover letter")
	}

	return &domain.CoverLetter{
		Content: payload.Content,
		Score:   domain.ClampScore(payload.Score),
	}, nil
}

func (g *Generator) generate(ctx context.Context, template string, resume map[string]any, vacancy domain.Vacancy) (string, error) {
	resumeJSON, err := marshalTruncated(resume)
	if err != nil {
		return "", fmt.Errorf("marshal resume payload: %w", err)
	}

	vacancyJSON, err := marshalTruncated(vacancy)
	if err != nil {
		return "", fmt.Errorf("marshal vacancy payload: %w", err)
	}

	prompt := strings.ReplaceAll(template, "{{RESUME_JSON}}", resumeJSON)
	prompt = strings.ReplaceAll(prompt, "{{VACANCY_JSON}}", vacancyJSON)

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	g.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, g.maxLogLen)),
	)

	return raw, nil
}

// marshalTruncated keeps prompt payloads bounded. Full resumes and vacancy
// descriptions can run to tens of kilobytes.
func marshalTruncated(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	s := string(data)
	if utf8.RuneCountInString(s) > maxPayloadChars {
		runes := []rune(s)
		s = string(runes[:maxPayloadChars])
	}
	return s, nil
}

// extractJSON strips markdown code fences models like to wrap JSON in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
