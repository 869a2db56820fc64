package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultAPIBaseURL is the production Plisio endpoint.
const DefaultAPIBaseURL = "https://api.plisio.net/api/v1"

// InvoiceRequest describes the deposit invoice to open with the provider.
type InvoiceRequest struct {
	Currency    string
	Amount      string
	OrderNumber string
	OrderName   string
}

// Invoice is the provider's handle for a pending deposit. TxnID is the id
// later echoed back in callbacks.
type Invoice struct {
	TxnID      string `json:"txn_id"`
	InvoiceURL string `json:"invoice_url"`
}

// Client talks to the Plisio REST API.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewClient constructs a provider client. An empty baseURL falls back to
// the production endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

type invoiceEnvelope struct {
	Status string `json:"status"`
	Data   struct {
		Invoice
		Message string `json:"message"`
	} `json:"data"`
}

// CreateInvoice opens a new deposit invoice with the provider.
func (c *Client) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("plisio api key not configured")
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("currency", req.Currency)
	params.Set("amount", req.Amount)
	params.Set("order_number", req.OrderNumber)
	params.Set("order_name", req.OrderName)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/invoices/new?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("plisio request: %w", err)
	}
	defer resp.Body.Close()

	var envelope invoiceEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("plisio response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || envelope.Status != "success" {
		if envelope.Data.Message != "" {
			return nil, fmt.Errorf("plisio: %s", envelope.Data.Message)
		}
		return nil, fmt.Errorf("plisio: unexpected status %d", resp.StatusCode)
	}
	if envelope.Data.TxnID == "" {
		return nil, fmt.Errorf("plisio: invoice response missing txn_id")
	}

	invoice := envelope.Data.Invoice
	return &invoice, nil
}
