package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"flightdesk/internal/modules/session"
)

// GeminiProvider implements Oracle using Google's Gemini models.
type GeminiProvider struct {
	client    *genai.Client
	jsonModel *genai.GenerativeModel
	chatModel *genai.GenerativeModel
	timeout   time.Duration
}

// NewGeminiProvider initializes a Gemini client. timeout bounds every single call.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Extraction and classification must be repeatable for identical input.
	jsonModel := client.GenerativeModel(modelName)
	jsonModel.ResponseMIMEType = "application/json"
	jsonModel.SetTemperature(0)

	chatModel := client.GenerativeModel(modelName)
	chatModel.SetTemperature(0.4)
	chatModel.SystemInstruction = genai.NewUserContent(genai.Text(assistantInstruction))

	return &GeminiProvider{
		client:    client,
		jsonModel: jsonModel,
		chatModel: chatModel,
		timeout:   timeout,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) ClassifyIntent(ctx context.Context, utterance string) (string, error) {
	var out intentLabel
	if err := p.generateJSON(ctx, intentPrompt(utterance), &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Intent), nil
}

func (p *GeminiProvider) ExtractCriteria(ctx context.Context, utterance string, now time.Time) (session.CriteriaUpdate, error) {
	var out session.CriteriaUpdate
	if err := p.generateJSON(ctx, criteriaPrompt(utterance, now), &out); err != nil {
		return session.CriteriaUpdate{}, err
	}
	return out, nil
}

func (p *GeminiProvider) ExtractPassenger(ctx context.Context, utterance string) (session.PassengerRecord, error) {
	var out session.PassengerRecord
	if err := p.generateJSON(ctx, passengerPrompt(utterance), &out); err != nil {
		return session.PassengerRecord{}, err
	}
	return out, nil
}

func (p *GeminiProvider) ExtractSelection(ctx context.Context, utterance string, options []session.FlightOption) (SelectionHint, error) {
	var out SelectionHint
	if err := p.generateJSON(ctx, selectionPrompt(utterance, options), &out); err != nil {
		return SelectionHint{}, err
	}
	return out, nil
}

func (p *GeminiProvider) CorrectName(ctx context.Context, candidate string, known []string) (string, error) {
	var out nameMatch
	if err := p.generateJSON(ctx, correctionPrompt(candidate, known), &out); err != nil {
		return "", err
	}
	return constrainToKnown(out.Name, known)
}

func (p *GeminiProvider) Answer(ctx context.Context, utterance string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.chatModel.GenerateContent(ctx, genai.Text(utterance))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (p *GeminiProvider) generateJSON(ctx context.Context, prompt string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.jsonModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fmt.Errorf("gemini generation error: %w", err)
	}
	raw := responseText(resp)
	if raw == "" {
		return ErrEmptyResponse
	}

	cleanJSON := cleanJSONString(raw)
	if err := json.Unmarshal([]byte(cleanJSON), out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	return nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// constrainToKnown accepts the model's answer only when it names a known entry.
func constrainToKnown(name string, known []string) (string, error) {
	name = strings.Trim(strings.TrimSpace(name), `"'.`)
	if name == "" {
		return "", ErrNoMatch
	}
	for _, k := range known {
		if strings.EqualFold(k, name) {
			return k, nil
		}
	}
	return "", ErrNoMatch
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
