package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	embeddingBatchSize  = 10
	embeddingBatchDelay = 1 * time.Second
)

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed returns the embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, embeddingModel, text string) ([]float64, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	body, err := json.Marshal(embeddingRequest{Model: embeddingModel, Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding api error %d: %s", resp.StatusCode, string(respBody))
	}

	var er embeddingResponse
	if err := json.Unmarshal(respBody, &er); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(er.Data) == 0 || len(er.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	return er.Data[0].Embedding, nil
}

// EmbedBatch embeds texts in fixed-size batches, calls within a batch in
// parallel and a fixed delay between batches to respect provider rate
// limits. A failed text leaves a nil vector at its index; batch order does
// not affect which texts succeed, only total coverage.
func (c *Client) EmbedBatch(ctx context.Context, embeddingModel string, texts []string) ([][]float64, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	vectors := make([][]float64, len(texts))

	for start := 0; start < len(texts); start += embeddingBatchSize {
		end := start + embeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				vec, err := c.Embed(ctx, embeddingModel, texts[i])
				if err != nil {
					return
				}
				vectors[i] = vec
			}(i)
		}
		wg.Wait()

		if end < len(texts) {
			select {
			case <-ctx.Done():
				return vectors, ctx.Err()
			case <-time.After(embeddingBatchDelay):
			}
		}
	}

	return vectors, nil
}
