package payout

import (
	"context"
	"fmt"
	"net/http"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/domain"
)

type batchRequest struct {
	Outputs []Output `json:"outputs"`
}

type batchResponse struct {
	Results []OutputResult `json:"results"`
}

type httpSubmitter struct {
	url    string
	apiKey string
	client adapter.HTTPClient
	json   adapter.JSON
}

// NewHTTPSubmitter creates a submitter that posts batches to the settlement service.
// A batch is posted once; nothing is retried.
func NewHTTPSubmitter(url, apiKey string, client adapter.HTTPClient, jsonAdapter adapter.JSON) Submitter {
	return &httpSubmitter{
		url:    url,
		apiKey: apiKey,
		client: client,
		json:   jsonAdapter,
	}
}

// SubmitBatch posts the outputs and returns one result per output
func (s *httpSubmitter) SubmitBatch(ctx context.Context, outputs []Output) ([]OutputResult, error) {
	body, err := s.json.Marshal(batchRequest{Outputs: outputs})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payout batch: %w", err)
	}

	headers := map[string]string{}
	if s.apiKey != "" {
		headers["Authorization"] = "Bearer " + s.apiKey
	}

	status, respBody, err := s.client.PostJSON(ctx, s.url, headers, body)
	if err != nil {
		return nil, fmt.Errorf("failed to submit payout batch: %w", err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrPayoutRejected, status, string(respBody))
	}

	var resp batchResponse
	if err := s.json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode payout response: %w", err)
	}

	return resp.Results, nil
}
