package ai

import "context"

// Stub is a canned-reply Auditor for tests. The Fail flag makes every
// call return ErrUpstream.
type Stub struct {
	Fail bool
}

func (s *Stub) Analyze(_ context.Context, _, _ string) (*Analysis, error) {
	if s.Fail {
		return nil, ErrUpstream
	}
	return &Analysis{
		Vulnerabilities: []Finding{{Description: "reentrancy in withdraw", Severity: "high", Fix: "use checks-effects-interactions"}},
		OverallRisk:     "Medium",
	}, nil
}

func (s *Stub) Improve(_ context.Context, contractCode, _ string) (string, error) {
	if s.Fail {
		return "", ErrUpstream
	}
	return "// improved\n" + contractCode, nil
}

func (s *Stub) Explain(_ context.Context, _, _ string) (string, error) {
	if s.Fail {
		return "", ErrUpstream
	}
	return "This contract transfers tokens.", nil
}

// Verify interface compliance at compile time.
var _ Auditor = (*Stub)(nil)
