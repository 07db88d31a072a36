package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/kms"
)

const maxResponseBytes = 1 << 20

// RelayerClient talks to the decryption authority over HTTP.
type RelayerClient struct {
	baseURL string
	http    *http.Client
}

func NewRelayerClient(baseURL string, hc *http.Client) *RelayerClient {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &RelayerClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (r *RelayerClient) Keys(ctx context.Context) (*kms.KeysResponse, error) {
	var out kms.KeysResponse
	if err := r.do(ctx, http.MethodGet, "/v1/keys", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RelayerClient) UserDecrypt(ctx context.Context, req *kms.UserDecryptRequest) (*kms.UserDecryptResponse, error) {
	var out kms.UserDecryptResponse
	if err := r.do(ctx, http.MethodPost, "/v1/user-decrypt", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RelayerClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		return nil
	case resp.StatusCode == http.StatusForbidden:
		return common.ErrDenied
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrValidation, errorMessage(data))
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s %d", ErrUnavailable, path, resp.StatusCode)
	default:
		return fmt.Errorf("%s: unexpected status %d: %s", path, resp.StatusCode, errorMessage(data))
	}
}

func errorMessage(data []byte) string {
	var e kms.ErrorResponse
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(data))
}
