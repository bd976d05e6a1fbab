package provider

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/ignite/campaignforge/internal/config"
)

// BedrockClient invokes Anthropic models through AWS Bedrock. It uses the
// default AWS credential chain instead of an API key, so Available reports
// whether the runtime client initialized, not whether credentials are valid.
type BedrockClient struct {
	cfg     config.BedrockConfig
	runtime *bedrockruntime.Client
}

// NewBedrock returns a ChatClient backed by AWS Bedrock. A failure to load
// AWS configuration leaves the client unavailable rather than failing the
// whole server.
func NewBedrock(cfg config.BedrockConfig) *BedrockClient {
	c := &BedrockClient{cfg: cfg}
	if !cfg.Enabled {
		return c
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return c
	}
	c.runtime = bedrockruntime.NewFromConfig(awsCfg)
	return c
}

func (c *BedrockClient) Name() string { return "bedrock" }

func (c *BedrockClient) Available() bool {
	return c.cfg.Enabled && c.runtime != nil && c.cfg.ModelID != ""
}

type bedrockRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
	Temperature      float64            `json:"temperature,omitempty"`
}

type bedrockResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *BedrockClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if !c.Available() {
		return "", notConfigured(c.Name())
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	payload := bedrockRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        maxTokens,
		System:           req.System,
		Messages:         []anthropicMessage{{Role: "user", Content: req.User}},
		Temperature:      req.Temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", invalidResponse(c.Name(), "failed to encode request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	output, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.cfg.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", transportError(c.Name(), err)
	}

	var parsed bedrockResponse
	if err := json.Unmarshal(output.Body, &parsed); err != nil {
		return "", invalidResponse(c.Name(), "failed to decode response", err)
	}

	var text string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return finishChat(c.Name(), text, req)
}
