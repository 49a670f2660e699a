// Package razorpay is the payment gateway adapter: it creates and reads
// gateway orders and payments over the Razorpay REST API and verifies
// checkout signatures.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/sl"
	"checkout/internal/pkg/tracing"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://api.razorpay.com"
	maxReceiptLen  = 40
	dependency     = "razorpay"
)

var hundred = decimal.NewFromInt(100)

type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

// Gateway implements ports.PaymentGateway.
type Gateway struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

func NewGateway(cfg Config, logger *slog.Logger) *Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.With("component", "razorpay"),
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func (r orderResponse) toPort() ports.GatewayOrder {
	return ports.GatewayOrder{
		ID:       r.ID,
		Amount:   decimal.New(r.Amount, -2),
		Currency: r.Currency,
		Status:   r.Status,
	}
}

type paymentResponse struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder registers amount (in major units) with the gateway. The API
// takes the smallest currency unit, so amounts are sent in paise.
func (g *Gateway) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (ports.GatewayOrder, error) {
	ctx, span := tracing.Tracer().Start(ctx, "razorpay.CreateOrder")
	defer span.End()

	if !amount.IsPositive() {
		return ports.GatewayOrder{}, errs.NewValueIsInvalidError("amount")
	}
	if len(receipt) > maxReceiptLen {
		receipt = receipt[:maxReceiptLen]
	}
	minor := amount.Mul(hundred).Round(0).IntPart()
	span.SetAttributes(attribute.Int64("payment.amount_minor", minor), attribute.String("payment.currency", currency))

	body, err := json.Marshal(createOrderRequest{Amount: minor, Currency: currency, Receipt: receipt})
	if err != nil {
		return ports.GatewayOrder{}, err
	}

	var created orderResponse
	if err = g.call(ctx, span, http.MethodPost, "/v1/orders", body, &created); err != nil {
		return ports.GatewayOrder{}, err
	}
	if created.ID == "" {
		return ports.GatewayOrder{}, errs.NewDependencyUnavailableErrorWithCause(dependency, errors.New("response without order id"))
	}
	return created.toPort(), nil
}

// FetchOrder reads a gateway order back, so callers can compare the amount
// it was created for with what they are about to charge.
func (g *Gateway) FetchOrder(ctx context.Context, gatewayOrderID string) (ports.GatewayOrder, error) {
	ctx, span := tracing.Tracer().Start(ctx, "razorpay.FetchOrder")
	defer span.End()

	if gatewayOrderID == "" {
		return ports.GatewayOrder{}, errs.NewValueIsRequiredError("gatewayOrderId")
	}
	var fetched orderResponse
	if err := g.call(ctx, span, http.MethodGet, "/v1/orders/"+url.PathEscape(gatewayOrderID), nil, &fetched); err != nil {
		return ports.GatewayOrder{}, err
	}
	return fetched.toPort(), nil
}

// FetchPayment reads a payment with its order id and status.
func (g *Gateway) FetchPayment(ctx context.Context, paymentID string) (ports.GatewayPayment, error) {
	ctx, span := tracing.Tracer().Start(ctx, "razorpay.FetchPayment")
	defer span.End()

	if paymentID == "" {
		return ports.GatewayPayment{}, errs.NewValueIsRequiredError("paymentId")
	}
	var fetched paymentResponse
	if err := g.call(ctx, span, http.MethodGet, "/v1/payments/"+url.PathEscape(paymentID), nil, &fetched); err != nil {
		return ports.GatewayPayment{}, err
	}
	return ports.GatewayPayment{
		ID:       fetched.ID,
		OrderID:  fetched.OrderID,
		Amount:   decimal.New(fetched.Amount, -2),
		Currency: fetched.Currency,
		Status:   fetched.Status,
	}, nil
}

// call sends an authenticated request and decodes a 2xx JSON body into out.
func (g *Gateway) call(ctx context.Context, span trace.Span, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(g.cfg.BaseURL, "/")+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.cfg.KeyID, g.cfg.KeySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		g.logger.WarnContext(ctx, "gateway request failed", sl.Traced(ctx), sl.Err(err), slog.String("path", path))
		return errs.NewDependencyUnavailableErrorWithCause(dependency, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errs.NewDependencyUnavailableErrorWithCause(dependency, err)
	}

	if resp.StatusCode/100 != 2 {
		err = statusError(resp.StatusCode, payload)
		span.SetStatus(codes.Error, err.Error())
		g.logger.WarnContext(ctx, "gateway rejected request",
			sl.Traced(ctx), sl.Err(err), slog.Int("status", resp.StatusCode), slog.String("path", path))
		return err
	}

	if err = json.Unmarshal(payload, out); err != nil {
		return errs.NewDependencyUnavailableErrorWithCause(dependency, err)
	}
	return nil
}

func statusError(status int, payload []byte) error {
	var body errorResponse
	_ = json.Unmarshal(payload, &body)
	cause := fmt.Errorf("status %d: %s %s", status, body.Error.Code, body.Error.Description)
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		return errs.NewDependencyUnavailableErrorWithCause(dependency, cause)
	}
	return errs.NewValueIsInvalidErrorWithCause("payment order", cause)
}

// Verify checks the checkout signature: hex HMAC-SHA256 of
// "<order id>|<payment id>" keyed with the API secret.
func (g *Gateway) Verify(_ context.Context, gatewayOrderID, paymentID, signature string) (bool, error) {
	if g.cfg.KeySecret == "" {
		return false, errs.NewDependencyUnavailableErrorWithCause(dependency, errors.New("key secret is not configured"))
	}
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false, nil
	}
	return hmac.Equal(expected, mac(g.cfg.KeySecret, gatewayOrderID, paymentID)), nil
}

// Sign produces the signature the gateway sends for an order and payment.
func Sign(secret, gatewayOrderID, paymentID string) string {
	return hex.EncodeToString(mac(secret, gatewayOrderID, paymentID))
}

func mac(secret, gatewayOrderID, paymentID string) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(gatewayOrderID + "|" + paymentID))
	return h.Sum(nil)
}
