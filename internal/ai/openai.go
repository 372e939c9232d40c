package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

const analyzeSystemPrompt = `You are a smart contract security expert specializing in Solidity and EVM-compatible blockchains.
Analyze the provided contract code for:
1. Security vulnerabilities
2. Gas optimization opportunities
3. Code quality issues
4. Best practice violations

Format your response as JSON with these sections:
- vulnerabilities: Array of found vulnerabilities with description, severity (critical, high, medium, low), and suggested fix
- gasOptimizations: Array of optimization opportunities with description and code example
- codeQuality: Array of code quality issues with description and improvement suggestion
- bestPractices: Array of best practices that should be implemented
- overallRisk: String assessment from "Very Low" to "Critical"
- improvedCode: Complete improved version of the contract`

const improveSystemPrompt = `You are a smart contract security expert. You will be given a smart contract and feedback/instructions on how to improve it.
Provide the improved version of the code with comments explaining the changes.
Focus on making the contract more secure, efficient, and following best practices.`

const explainSystemPrompt = `You are a smart contract expert who explains complex code in simple terms.
Explain the provided smart contract code in a way that would be understandable to someone with basic programming knowledge but limited blockchain experience.
Focus on explaining the functionality, purpose, and potential risks.`

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	httpc    *http.Client
}

// NewClient builds a client for the given API key and model. An empty
// model falls back to gpt-4o.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = "gpt-4o"
	}
	return &Client{
		endpoint: defaultEndpoint,
		apiKey:   apiKey,
		model:    model,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze audits contract source and parses the model's JSON reply.
func (c *Client) Analyze(ctx context.Context, contractCode, query string) (*Analysis, error) {
	userContent := "Smart Contract Code to analyze:\n\n" + contractCode
	if query != "" {
		userContent += "\n\nSpecific question: " + query
	}
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: analyzeSystemPrompt},
			{Role: "user", Content: userContent},
		},
		Temperature: 0.2,
		MaxTokens:   4000,
	}
	req.ResponseFormat = &struct {
		Type string `json:"type"`
	}{Type: "json_object"}

	content, err := c.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	var analysis Analysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("%w: malformed analysis JSON: %v", ErrUpstream, err)
	}
	return &analysis, nil
}

// Improve rewrites contract source per the given feedback.
func (c *Client) Improve(ctx context.Context, contractCode, feedback string) (string, error) {
	return c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: improveSystemPrompt},
			{Role: "user", Content: "Smart Contract Code:\n\n" + contractCode + "\n\nImprovement requested: " + feedback},
		},
		Temperature: 0.3,
		MaxTokens:   3000,
	})
}

// Explain answers a question about contract source.
func (c *Client) Explain(ctx context.Context, contractCode, query string) (string, error) {
	return c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: explainSystemPrompt},
			{Role: "user", Content: "Smart Contract Code:\n\n" + contractCode + "\n\nSpecific question: " + query},
		},
		Temperature: 0.3,
		MaxTokens:   2000,
	})
}

// complete posts one chat request and returns the first choice's content.
func (c *Client) complete(ctx context.Context, body chatRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		logrus.WithFields(logrus.Fields{"status": resp.StatusCode, "model": c.model}).Error("OpenAI API error")
		return "", fmt.Errorf("%w: %s", ErrUpstream, msg)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}
	return parsed.Choices[0].Message.Content, nil
}

// Verify interface compliance at compile time.
var _ Auditor = (*Client)(nil)
