package ai

import (
	"context"
	"errors"
)

// ErrUpstream wraps every failure from the language-model API.
var ErrUpstream = errors.New("ai upstream failed")

// Analysis is the structured result of a contract audit. The shape is
// produced by the model under a JSON response format; fields the model
// omits stay empty.
type Analysis struct {
	Vulnerabilities  []Finding `json:"vulnerabilities"`
	GasOptimizations []Finding `json:"gasOptimizations"`
	CodeQuality      []Finding `json:"codeQuality"`
	BestPractices    []Finding `json:"bestPractices"`
	OverallRisk      string    `json:"overallRisk"`
	ImprovedCode     string    `json:"improvedCode"`
}

// Finding is a single item in an analysis section.
type Finding struct {
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
	Fix         string `json:"fix,omitempty"`
	Example     string `json:"example,omitempty"`
}

// Auditor analyzes, improves and explains smart-contract source through a
// language-model backend. Purely an external collaborator: no analysis
// logic lives in this repository.
type Auditor interface {
	// Analyze audits contract source, optionally focused by a question.
	Analyze(ctx context.Context, contractCode, query string) (*Analysis, error)

	// Improve rewrites contract source per the given feedback.
	Improve(ctx context.Context, contractCode, feedback string) (string, error)

	// Explain answers a question about contract source in plain terms.
	Explain(ctx context.Context, contractCode, query string) (string, error)
}
