package main

import "testing"

func TestBuildSolver(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"mock mode ignores provider config", Config{MockMode: true}, false},
		{"gemini with key", Config{LLMProvider: "gemini", GoogleAPIKey: "k", GeminiModelName: "gemini-2.5-pro-exp-03-25"}, false},
		{"gemini without key", Config{LLMProvider: "gemini"}, true},
		{"openai with token", Config{LLMProvider: "openai", OpenAIToken: "t", OpenAIModel: "gpt-4o"}, false},
		{"openai without token", Config{LLMProvider: "openai"}, true},
		{"unknown provider", Config{LLMProvider: "llama"}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := buildSolver(test.cfg)
			if test.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got solver %T", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s == nil {
				t.Fatal("expected a solver, got nil")
			}
		})
	}
}
