package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/ignite/campaignforge/internal/api"
	"github.com/ignite/campaignforge/internal/config"
	"github.com/ignite/campaignforge/internal/pipeline"
	"github.com/ignite/campaignforge/internal/provider"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("╔════════════════════════════════════════════════════════════╗")
	log.Println("║  CampaignForge Server (cmd/server/main.go)                 ║")
	log.Println("║  AI campaign generation with multi-tier provider fallback  ║")
	log.Println("╚════════════════════════════════════════════════════════════╝")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if port == 0 {
		port = 8080
		cfg.Server.Port = port
	}
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check failed: %v", err)
	}

	providers := pipeline.Providers{
		OpenAI:      provider.NewOpenAI(cfg.OpenAI),
		Groq:        provider.NewGroq(cfg.Groq),
		Anthropic:   provider.NewAnthropic(cfg.Anthropic),
		Bedrock:     provider.NewBedrock(cfg.Bedrock),
		Stability:   provider.NewStability(cfg.Stability),
		HuggingFace: provider.NewHuggingFace(cfg.HuggingFace),
		Replicate:   provider.NewReplicate(cfg.Replicate),
		Pexels:      provider.NewPexels(cfg.Pexels),
		Unsplash:    provider.NewUnsplash(cfg.Unsplash),
		Pixabay:     provider.NewPixabay(cfg.Pixabay),
	}

	selector := pipeline.NewSelector(providers, cfg.Pipeline.ForceMock)
	for name, status := range selector.Availability(providers) {
		log.Printf("[startup] provider %s: configured=%t mode=%s", name, status.Configured, status.Mode)
	}
	if cfg.Pipeline.ForceMock {
		log.Println("[startup] FORCE_MOCK_MODE active, every stage uses local fallbacks")
	}

	p := pipeline.New(selector, cfg.Pipeline)
	server := api.NewServer(cfg.Server, p, selector, providers, cfg.Throttle)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
