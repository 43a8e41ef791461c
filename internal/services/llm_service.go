package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// maxPostingBytes keeps prompts inside the model's context window.
const maxPostingBytes = 20000

type LLMService struct {
	Client llms.Model
}

// NewLLMService connects to Gemini. apiKey must be set.
func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	if apiKey == "" {
		return nil, ErrLLMUnavailable
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

const jobExtractionPrompt = `
You are a job application assistant. Read the job posting below and extract the
fields needed to track an application to it.

### INSTRUCTIONS:
1. Ignore navigation menus, footers, "similar jobs" lists and advertisements.
2. Output valid JSON only. Do not wrap the output in markdown code blocks.
3. If a field is missing, use an empty string. Do not guess.

### OUTPUT SCHEMA:
{
    "company": "Name of the hiring company",
    "position": "Job title",
    "email": "Recruiter or application contact email, if one is given"
}

### RAW CONTENT:
%s
`

// ExtractJob pulls company, position and contact email out of a posting.
func (s *LLMService) ExtractJob(ctx context.Context, rawHTML string) (*dtos.JobExtraction, error) {
	if len(rawHTML) > maxPostingBytes {
		rawHTML = rawHTML[:maxPostingBytes]
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(jobExtractionPrompt, rawHTML))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	var out dtos.JobExtraction
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &out); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	out.Company = strings.TrimSpace(out.Company)
	out.Position = strings.TrimSpace(out.Position)
	out.Email = strings.TrimSpace(out.Email)
	return &out, nil
}

// stripCodeFence removes a ```json fence that models add despite being told
// not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
