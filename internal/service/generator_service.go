package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/QualifAIze/qualifaize-backend-api/internal/config"
	"github.com/QualifAIze/qualifaize-backend-api/internal/model"
)

// Generator is the AI surface the interview flow depends on
type Generator interface {
	SelectSection(ctx context.Context, toc, guidance string, difficulty model.Difficulty) (*model.SectionChoice, error)
	GenerateQuestion(ctx context.Context, sectionContent, guidance string, difficulty model.Difficulty, previousQuestions []string) (*model.GeneratedQuestion, error)
	Review(ctx context.Context, transcript string) (string, error)
}

// GeneratorService produces interview content via an OpenAI-compatible API
// with task-specific models. Failures surface to the caller as
// ErrGeneratorUnavailable; the interview flow never fabricates questions.
type GeneratorService struct {
	config config.AIConfig
	api    *openai.Client
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(cfg config.AIConfig) *GeneratorService {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}
	return &GeneratorService{
		config: cfg,
		api:    openai.NewClientWithConfig(apiConfig),
	}
}

// SelectSection asks the fast model to pick the most suitable document
// section for the next question
func (s *GeneratorService) SelectSection(ctx context.Context, toc, guidance string, difficulty model.Difficulty) (*model.SectionChoice, error) {
	prompt := buildSectionPrompt(toc, guidance, difficulty)

	raw, err := s.complete(ctx, s.config.Models.SectionSelection, sectionSystemPrompt, prompt, true)
	if err != nil {
		return nil, err
	}

	var choice model.SectionChoice
	if err := json.Unmarshal([]byte(raw), &choice); err != nil {
		return nil, fmt.Errorf("parse section choice: %v: %w", err, ErrGeneratorUnavailable)
	}
	if choice.Title == "" {
		return nil, fmt.Errorf("empty section choice: %w", ErrGeneratorUnavailable)
	}
	return &choice, nil
}

// GenerateQuestion asks the question model for a multiple-choice question
// over the given section content
func (s *GeneratorService) GenerateQuestion(ctx context.Context, sectionContent, guidance string, difficulty model.Difficulty, previousQuestions []string) (*model.GeneratedQuestion, error) {
	prompt := buildQuestionPrompt(sectionContent, guidance, difficulty, previousQuestions)

	raw, err := s.complete(ctx, s.config.Models.QuestionGeneration, questionSystemPrompt, prompt, true)
	if err != nil {
		return nil, err
	}

	var gen model.GeneratedQuestion
	if err := json.Unmarshal([]byte(raw), &gen); err != nil {
		return nil, fmt.Errorf("parse generated question: %v: %w", err, ErrGeneratorUnavailable)
	}

	gen.CorrectAnswer = strings.ToUpper(strings.TrimSpace(gen.CorrectAnswer))
	if _, err := model.NormalizeOption(gen.CorrectAnswer); err != nil {
		return nil, fmt.Errorf("generator returned correct answer %q: %w", gen.CorrectAnswer, ErrGeneratorUnavailable)
	}
	if gen.Question == "" || gen.OptionA == "" || gen.OptionB == "" || gen.OptionC == "" || gen.OptionD == "" {
		return nil, fmt.Errorf("generator returned incomplete question: %w", ErrGeneratorUnavailable)
	}
	if _, ok := model.ParseDifficulty(string(gen.Difficulty)); !ok {
		gen.Difficulty = difficulty
	}
	return &gen, nil
}

// Review asks the deep model for a markdown candidate review over a full
// interview transcript
func (s *GeneratorService) Review(ctx context.Context, transcript string) (string, error) {
	raw, err := s.complete(ctx, s.config.Models.Review, reviewSystemPrompt, transcript, false)
	if err != nil {
		return "", err
	}
	return raw, nil
}

func (s *GeneratorService) complete(ctx context.Context, modelName, systemPrompt, userPrompt string, jsonMode bool) (string, error) {
	if !s.config.IsEnabled() {
		return "", fmt.Errorf("no API key configured: %w", ErrGeneratorUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.config.TimeoutMS)*time.Millisecond)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.3,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := s.api.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Warn("AI completion failed", "model", modelName, "error", err)
		return "", fmt.Errorf("AI API call: %v: %w", err, ErrGeneratorUnavailable)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices: %w", ErrGeneratorUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

const sectionSystemPrompt = `You are an interview assistant selecting which part of a technical document the next interview question should cover. Respond with JSON: {"title": "<exact section title from the table of contents>", "explanation": "<one sentence why>"}.`

const questionSystemPrompt = `You are a technical interviewer writing one multiple-choice question grounded strictly in the provided document content. Respond with JSON: {"question": "...", "optionA": "...", "optionB": "...", "optionC": "...", "optionD": "...", "correctAnswer": "A|B|C|D", "difficulty": "EASY|MEDIUM|HARD", "explanation": "<why the correct option is correct>"}.`

const reviewSystemPrompt = `You are a senior technical interviewer. Given a complete interview transcript with per-question results and timing, write a structured markdown review of the candidate: overall assessment, strengths, weaknesses, and a hire-signal summary. Be specific and reference concrete answers.`

func buildSectionPrompt(toc, guidance string, difficulty model.Difficulty) string {
	var sb strings.Builder
	sb.WriteString("Document table of contents:\n")
	sb.WriteString(toc)
	sb.WriteString("\n\nInterview difficulty: ")
	sb.WriteString(string(difficulty))
	sb.WriteString("\n\nCandidate performance so far:\n")
	sb.WriteString(guidance)
	sb.WriteString("\n\nPick the single best section title for the next question.")
	return sb.String()
}

func buildQuestionPrompt(sectionContent, guidance string, difficulty model.Difficulty, previousQuestions []string) string {
	var sb strings.Builder
	sb.WriteString("Section content:\n")
	sb.WriteString(sectionContent)
	sb.WriteString("\n\nInterview difficulty: ")
	sb.WriteString(string(difficulty))
	sb.WriteString("\n\nCandidate performance so far:\n")
	sb.WriteString(guidance)
	if len(previousQuestions) > 0 {
		sb.WriteString("\n\nAlready asked (do not repeat):\n")
		for _, q := range previousQuestions {
			sb.WriteString("- ")
			sb.WriteString(q)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\nWrite one new multiple-choice question. Adjust its difficulty per the performance guidance.")
	return sb.String()
}
