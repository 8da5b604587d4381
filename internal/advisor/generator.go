package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/zenfit/internal/telemetry/tracing"
)

// HTTPGenerator calls an external text-generation service over HTTP.
// One attempt per call, no retries; the advisor service decides what to
// do when it fails.
type HTTPGenerator struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewHTTPGenerator(
	endpoint, apiKey, model string,
	httpClient *http.Client,
) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func (g *HTTPGenerator) GenerateText(ctx context.Context, prompt string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "advisor.generator.generateText")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	reqBody, err := json.Marshal(generateRequest{
		Model:  g.model,
		Prompt: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	generateUrl := fmt.Sprintf("%s/v1/generate", g.endpoint)
	log.Debugf("calling text generation api: %s", generateUrl)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, generateUrl, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call text generation api: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("text generation api status %d: %s", resp.StatusCode, respBytes)
	}

	var generateResp generateResponse
	if err := json.Unmarshal(respBytes, &generateResp); err != nil {
		return "", fmt.Errorf("unmarshal generate response: %w", err)
	}

	return strings.TrimSpace(generateResp.Text), nil
}
