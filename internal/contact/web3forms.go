package contact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

const (
	// Web3FormsURL is the public submit endpoint of the relay.
	Web3FormsURL = "https://api.web3forms.com/submit"

	// FormName tags every relayed message so the inbox can filter on it.
	FormName = "Bintang AI Portfolio"
)

// Web3Forms relays messages to the Web3Forms JSON endpoint.
type Web3Forms struct {
	URL       string
	AccessKey string
	Client    *http.Client
}

func NewWeb3Forms(url, accessKey string, timeout time.Duration) *Web3Forms {
	if url == "" {
		url = Web3FormsURL
	}
	return &Web3Forms{
		URL:       url,
		AccessKey: accessKey,
		Client:    &http.Client{Timeout: timeout},
	}
}

type web3FormsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// payload flattens the message fields together with the access key and form tag.
func (w *Web3Forms) payload(msg Message) map[string]string {
	return map[string]string{
		"name":       msg.Name,
		"email":      msg.Email,
		"subject":    msg.Subject,
		"message":    msg.Body,
		"access_key": w.AccessKey,
		"from_name":  FormName,
	}
}

func (w *Web3Forms) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(w.payload(msg))
	if err != nil {
		return fmt.Errorf("encode relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	var out web3FormsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return &RejectedError{StatusCode: resp.StatusCode}
	}

	ok := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated
	if !ok || !out.Success {
		return &RejectedError{StatusCode: resp.StatusCode, Message: out.Message}
	}
	return nil
}
