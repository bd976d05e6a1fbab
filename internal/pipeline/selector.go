// Package pipeline orchestrates the four generation stages. Each stage walks
// an ordered provider chain and lands on a deterministic local fallback when
// the chain is exhausted, so a request never fails because of a provider.
package pipeline

import (
	"github.com/ignite/campaignforge/internal/provider"
)

// Providers is the full set of constructed clients, configured or not. The
// selector filters and orders them.
type Providers struct {
	OpenAI    provider.ChatClient
	Groq      provider.ChatClient
	Anthropic provider.ChatClient
	Bedrock   provider.ChatClient

	Stability   provider.ImageClient
	HuggingFace provider.ImageClient
	Replicate   provider.ImageClient

	Pexels   provider.SearchClient
	Unsplash provider.SearchClient
	Pixabay  provider.SearchClient
}

// Selector holds the per-stage provider chains, built once at startup.
// Chains contain only available providers in fixed preference order; with
// ForceMock every chain is empty and each stage goes straight to its
// fallback tier.
type Selector struct {
	analysis []provider.ChatClient
	copy     []provider.ChatClient
	prompt   []provider.ChatClient
	image    []provider.ImageClient
	search   []provider.SearchClient

	forceMock bool
}

// NewSelector builds the stage chains from the given clients.
func NewSelector(p Providers, forceMock bool) *Selector {
	s := &Selector{forceMock: forceMock}
	if forceMock {
		return s
	}

	s.analysis = availableChat(p.OpenAI, p.Groq, p.Anthropic, p.Bedrock)
	s.copy = availableChat(p.Groq, p.OpenAI, p.Anthropic, p.Bedrock)
	s.prompt = availableChat(p.Groq, p.OpenAI, p.Anthropic)
	s.image = availableImage(p.Stability, p.HuggingFace, p.Replicate)
	s.search = availableSearch(p.Pexels, p.Unsplash, p.Pixabay)
	return s
}

func (s *Selector) AnalysisChain() []provider.ChatClient { return s.analysis }
func (s *Selector) CopyChain() []provider.ChatClient     { return s.copy }
func (s *Selector) PromptChain() []provider.ChatClient   { return s.prompt }
func (s *Selector) ImageChain() []provider.ImageClient   { return s.image }
func (s *Selector) SearchChain() []provider.SearchClient { return s.search }
func (s *Selector) ForceMock() bool                      { return s.forceMock }

// ProviderStatus is the startup availability snapshot for one provider.
type ProviderStatus struct {
	Configured bool   `json:"configured"`
	Mode       string `json:"mode"`
}

// Availability reports every known provider with its effective mode.
func (s *Selector) Availability(p Providers) map[string]ProviderStatus {
	statuses := make(map[string]ProviderStatus)
	add := func(name string, configured bool) {
		mode := "real"
		if s.forceMock {
			mode = "forced_mock"
		} else if !configured {
			mode = "unavailable"
		}
		statuses[name] = ProviderStatus{Configured: configured, Mode: mode}
	}

	for _, c := range []provider.ChatClient{p.OpenAI, p.Groq, p.Anthropic, p.Bedrock} {
		if c != nil {
			add(c.Name(), c.Available())
		}
	}
	for _, c := range []provider.ImageClient{p.Stability, p.HuggingFace, p.Replicate} {
		if c != nil {
			add(c.Name(), c.Available())
		}
	}
	for _, c := range []provider.SearchClient{p.Pexels, p.Unsplash, p.Pixabay} {
		if c != nil {
			add(c.Name(), c.Available())
		}
	}
	return statuses
}

func availableChat(clients ...provider.ChatClient) []provider.ChatClient {
	var chain []provider.ChatClient
	for _, c := range clients {
		if c != nil && c.Available() {
			chain = append(chain, c)
		}
	}
	return chain
}

func availableImage(clients ...provider.ImageClient) []provider.ImageClient {
	var chain []provider.ImageClient
	for _, c := range clients {
		if c != nil && c.Available() {
			chain = append(chain, c)
		}
	}
	return chain
}

func availableSearch(clients ...provider.SearchClient) []provider.SearchClient {
	var chain []provider.SearchClient
	for _, c := range clients {
		if c != nil && c.Available() {
			chain = append(chain, c)
		}
	}
	return chain
}
