package llm

import (
	"testing"
)

func TestNewOpenAIProvider_RequiresAPIKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{}); err == nil {
		t.Error("Expected an error without an API key")
	}
}

func TestNewOpenAIProvider_WithKey(t *testing.T) {
	provider, err := NewOpenAIProvider(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("Expected 'openai', got '%s'", provider.Name())
	}
}

func TestNewProvider_Factory(t *testing.T) {
	cases := []struct {
		name     string
		config   Config
		wantNil  bool
		wantErr  bool
		provider string
	}{
		{"disabled", Config{Provider: ""}, true, false, ""},
		{"openai", Config{Provider: "openai", APIKey: "k"}, false, false, "openai"},
		{"openai uppercase", Config{Provider: "OpenAI", APIKey: "k"}, false, false, "openai"},
		{"ollama", Config{Provider: "ollama"}, false, false, "ollama"},
		{"openai without key", Config{Provider: "openai"}, false, true, ""},
		{"unknown", Config{Provider: "carrier-pigeon"}, false, true, ""},
	}

	for _, c := range cases {
		provider, err := NewProvider(c.config)
		if c.wantErr {
			if err == nil {
				t.Errorf("%s: expected an error", c.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
			continue
		}
		if c.wantNil {
			if provider != nil {
				t.Errorf("%s: expected nil provider", c.name)
			}
			continue
		}
		if provider == nil {
			t.Errorf("%s: expected a provider", c.name)
			continue
		}
		if provider.Name() != c.provider {
			t.Errorf("%s: expected provider '%s', got '%s'", c.name, c.provider, provider.Name())
		}
	}
}
