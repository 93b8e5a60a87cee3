package midtrans

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rupavo/payments-api/internal/config"
	"github.com/rupavo/payments-api/pkg/errors"
)

type Client struct {
	snapURL    string
	coreURL    string
	serverKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Midtrans Snap client
func NewClient(cfg config.MidtransConfig, logger *zap.Logger) *Client {
	snapURL := strings.TrimSuffix(cfg.SnapURL, "/")
	return &Client{
		snapURL:   snapURL,
		coreURL:   coreAPIURL(snapURL),
		serverKey: cfg.ServerKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// coreAPIURL derives the core API base from a Snap URL. The hosted-checkout
// endpoints live on app.[sandbox.]midtrans.com/snap/v1 while the status API
// lives on api.[sandbox.]midtrans.com.
func coreAPIURL(snapURL string) string {
	url := strings.Replace(snapURL, "app.", "api.", 1)
	return strings.TrimSuffix(url, "/snap/v1")
}

// SnapRequest represents the hosted-checkout transaction creation payload
type SnapRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	ItemDetails        []ItemDetail       `json:"item_details,omitempty"`
	CustomerDetails    *CustomerDetails   `json:"customer_details,omitempty"`
}

type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type ItemDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"billing_address,omitempty"`
}

// SnapResponse represents the gateway's transaction creation response
type SnapResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	// Raw is the unparsed response body, kept for audit storage
	Raw []byte `json:"-"`
}

// CreateSnapTransaction opens a hosted-checkout session with the gateway
// and returns the redirect token and URL
func (c *Client) CreateSnapTransaction(ctx context.Context, snapReq SnapRequest) (*SnapResponse, error) {
	url := c.snapURL + "/transactions"

	jsonData, err := json.Marshal(snapReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.serverKey+":")))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Snap transaction creation failed",
			zap.String("order_id", snapReq.TransactionDetails.OrderID),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &errors.ErrGateway{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var snapResp SnapResponse
	if err := json.Unmarshal(body, &snapResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	snapResp.Raw = body

	return &snapResp, nil
}

// GetTransactionStatus fetches the gateway-side status of a transaction by
// its gateway order ID. Used by back-office tooling, not by the webhook path.
func (c *Client) GetTransactionStatus(ctx context.Context, gatewayOrderID string) (*Notification, []byte, error) {
	url := c.coreURL + "/v2/" + gatewayOrderID + "/status"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.serverKey+":")))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &errors.ErrGateway{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &n, body, nil
}
