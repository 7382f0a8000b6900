package llm

import "testing"

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		provider string
		apiKey   string
		wantName string
		wantErr  bool
	}{
		{provider: "local", wantName: "local"},
		{provider: "", wantName: "local"},
		{provider: "openai", apiKey: "k", wantName: "openai"},
		{provider: "anthropic", apiKey: "k", wantName: "anthropic"},
		{provider: "claude", apiKey: "k", wantName: "anthropic"},
		{provider: "ollama", wantName: "ollama"},
		{provider: "openai", wantErr: true}, // missing API key
		{provider: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			gen, err := NewGenerator(Config{Provider: tt.provider, APIKey: tt.apiKey})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewGenerator(%q) expected error", tt.provider)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGenerator(%q): %v", tt.provider, err)
			}
			if gen.Name() != tt.wantName {
				t.Errorf("NewGenerator(%q).Name() = %s, want %s", tt.provider, gen.Name(), tt.wantName)
			}
		})
	}
}
