package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultCloudURL is the public cloud evaluation endpoint.
const DefaultCloudURL = "https://lichess.org/api/cloud-eval"

// Cloud asks a remote evaluation service for its principal variation and
// returns the first move of it.
type Cloud struct {
	baseURL string
	client  *http.Client
}

// NewCloud returns a cloud suggester. A nil client uses http.DefaultClient.
func NewCloud(baseURL string, client *http.Client) *Cloud {
	if baseURL == "" {
		baseURL = DefaultCloudURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Cloud{baseURL: baseURL, client: client}
}

func (c *Cloud) Name() string { return "cloud" }

type cloudEval struct {
	Depth int `json:"depth"`
	PVs   []struct {
		Moves json.RawMessage `json:"moves"`
	} `json:"pvs"`
}

// Suggest performs GET <base>?fen=...&multiPv=1&depth=N.
func (c *Cloud) Suggest(ctx context.Context, req Request) (string, error) {
	q := url.Values{}
	q.Set("fen", req.FEN)
	q.Set("multiPv", "1")
	if req.Depth > 0 {
		q.Set("depth", strconv.Itoa(req.Depth))
	}

	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sep+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("suggest: cloud request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: position not in cloud database", ErrNoMove)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("suggest: cloud returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("suggest: reading cloud response: %w", err)
	}
	var eval cloudEval
	if err := json.Unmarshal(body, &eval); err != nil {
		return "", fmt.Errorf("suggest: decoding cloud response: %w", err)
	}
	if len(eval.PVs) == 0 {
		return "", ErrNoMove
	}
	return firstMove(eval.PVs[0].Moves)
}

// firstMove accepts either "e2e4 e7e5 ..." or ["e2e4", "e7e5", ...].
func firstMove(raw json.RawMessage) (string, error) {
	var line string
	if err := json.Unmarshal(raw, &line); err == nil {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return "", ErrNoMove
		}
		return fields[0], nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return "", fmt.Errorf("suggest: unexpected moves field %s", raw)
	}
	if len(list) == 0 || list[0] == "" {
		return "", ErrNoMove
	}
	return list[0], nil
}

func (c *Cloud) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
