package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"harbinger/internal/domain"
)

// Compile-time interface check.
var _ Broker = (*OANDABroker)(nil)

// OANDABroker implements the Broker interface against the OANDA v3 REST API.
// Each method performs exactly one HTTP round-trip; callers own retry policy
// for the idempotent reads, and nothing retries order placement.
type OANDABroker struct {
	host       string
	token      string
	accountID  string
	httpClient *http.Client
}

// NewOANDABroker creates an OANDABroker for the given API host (e.g.
// https://api-fxpractice.oanda.com), bearer token, and account ID.
func NewOANDABroker(host, token, accountID string) *OANDABroker {
	return &OANDABroker{
		host:       host,
		token:      token,
		accountID:  accountID,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Name returns "oanda".
func (b *OANDABroker) Name() string { return "oanda" }

// ---------------------------------------------------------------------------
// Wire types
// ---------------------------------------------------------------------------

type pricingResponse struct {
	Prices []struct {
		Instrument string `json:"instrument"`
		Bids       []struct {
			Price string `json:"price"`
		} `json:"bids"`
		Asks []struct {
			Price string `json:"price"`
		} `json:"asks"`
	} `json:"prices"`
}

type accountSummaryResponse struct {
	Account struct {
		Balance        string `json:"balance"`
		NAV            string `json:"NAV"`
		OpenTradeCount int    `json:"openTradeCount"`
	} `json:"account"`
}

type orderResponse struct {
	OrderFillTransaction *struct {
		OrderID string `json:"orderID"`
		Price   string `json:"price"`
	} `json:"orderFillTransaction"`
	OrderCreateTransaction *struct {
		ID string `json:"id"`
	} `json:"orderCreateTransaction"`
	OrderCancelTransaction *struct {
		Reason string `json:"reason"`
	} `json:"orderCancelTransaction"`
	ErrorMessage string `json:"errorMessage"`
}

// ---------------------------------------------------------------------------
// Broker implementation
// ---------------------------------------------------------------------------

// GetPricing returns the current bid/ask quote for an instrument.
func (b *OANDABroker) GetPricing(ctx context.Context, instrument string) (domain.Pricing, error) {
	path := fmt.Sprintf("/v3/accounts/%s/pricing?instruments=%s", b.accountID, instrument)

	var resp pricingResponse
	if err := b.getJSON(ctx, path, &resp); err != nil {
		return domain.Pricing{}, fmt.Errorf("fetching pricing for %s: %w", instrument, err)
	}
	if len(resp.Prices) == 0 || len(resp.Prices[0].Bids) == 0 || len(resp.Prices[0].Asks) == 0 {
		return domain.Pricing{}, fmt.Errorf("empty pricing response for %s", instrument)
	}

	p := resp.Prices[0]
	bid, err := strconv.ParseFloat(p.Bids[0].Price, 64)
	if err != nil {
		return domain.Pricing{}, fmt.Errorf("parsing bid %q: %w", p.Bids[0].Price, err)
	}
	ask, err := strconv.ParseFloat(p.Asks[0].Price, 64)
	if err != nil {
		return domain.Pricing{}, fmt.Errorf("parsing ask %q: %w", p.Asks[0].Price, err)
	}

	return domain.Pricing{Instrument: instrument, Bid: bid, Ask: ask}, nil
}

// GetAccount returns balance, NAV, and the broker-side open-trade count.
func (b *OANDABroker) GetAccount(ctx context.Context) (domain.AccountSnapshot, error) {
	path := fmt.Sprintf("/v3/accounts/%s/summary", b.accountID)

	var resp accountSummaryResponse
	if err := b.getJSON(ctx, path, &resp); err != nil {
		return domain.AccountSnapshot{}, fmt.Errorf("fetching account summary: %w", err)
	}

	balance, _ := strconv.ParseFloat(resp.Account.Balance, 64)
	nav, _ := strconv.ParseFloat(resp.Account.NAV, 64)

	return domain.AccountSnapshot{
		Balance:        balance,
		NAV:            nav,
		OpenTradeCount: resp.Account.OpenTradeCount,
	}, nil
}

// PlaceMarketOrder submits a FOK market order with GTC take-profit and
// stop-loss attached. Exactly one attempt; a transport error leaves the
// broker-side outcome unknown and is surfaced as an error.
func (b *OANDABroker) PlaceMarketOrder(ctx context.Context, req OrderRequest) (OrderResult, error) {
	digits := domain.PriceDigits(req.Instrument)
	body := map[string]any{
		"order": map[string]any{
			"type":         "MARKET",
			"instrument":   req.Instrument,
			"units":        strconv.Itoa(req.Units),
			"timeInForce":  "FOK",
			"positionFill": "DEFAULT",
			"takeProfitOnFill": map[string]string{
				"price":       formatPrice(req.TakeProfit, digits),
				"timeInForce": "GTC",
			},
			"stopLossOnFill": map[string]string{
				"price":       formatPrice(req.StopLoss, digits),
				"timeInForce": "GTC",
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return OrderResult{}, fmt.Errorf("encoding order: %w", err)
	}

	path := fmt.Sprintf("/v3/accounts/%s/orders", b.accountID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.host+path, bytes.NewReader(payload))
	if err != nil {
		return OrderResult{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+b.token)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return OrderResult{}, fmt.Errorf("placing order: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return OrderResult{}, fmt.Errorf("reading order response: %w", err)
	}

	var resp orderResponse
	// A decode failure on a 2xx body is still an ambiguous outcome.
	if err := json.Unmarshal(respBody, &resp); err != nil && httpResp.StatusCode < 300 {
		return OrderResult{}, fmt.Errorf("decoding order response (status %d): %w", httpResp.StatusCode, err)
	}

	switch {
	case httpResp.StatusCode == http.StatusOK || httpResp.StatusCode == http.StatusCreated:
		res := OrderResult{}
		if resp.OrderFillTransaction != nil {
			res.OrderID = resp.OrderFillTransaction.OrderID
			res.FillPrice, _ = strconv.ParseFloat(resp.OrderFillTransaction.Price, 64)
		} else if resp.OrderCreateTransaction != nil {
			res.OrderID = resp.OrderCreateTransaction.ID
		}
		// A FOK order can be created and immediately cancelled (no fill).
		if resp.OrderCancelTransaction != nil {
			res.Rejected = true
			res.RejectReason = resp.OrderCancelTransaction.Reason
		}
		return res, nil
	case httpResp.StatusCode >= 400 && httpResp.StatusCode < 500:
		reason := resp.ErrorMessage
		if reason == "" {
			reason = truncate(string(respBody), 400)
		}
		return OrderResult{Rejected: true, RejectReason: reason}, nil
	default:
		return OrderResult{}, fmt.Errorf("order POST -> %d: %s", httpResp.StatusCode, truncate(string(respBody), 400))
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers
// ---------------------------------------------------------------------------

// getJSON performs a single authenticated GET and decodes the JSON body.
func (b *OANDABroker) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.host+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+b.token)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<12))
		return fmt.Errorf("GET %s -> %d: %s", path, resp.StatusCode, truncate(string(body), 240))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func formatPrice(p float64, digits int) string {
	return strconv.FormatFloat(p, 'f', digits, 64)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
