package historyclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"wallet_client/internal/app/port"
	"wallet_client/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// appendPayload is the POST /history wire body. The id is assigned server
// side and therefore never sent.
type appendPayload struct {
	RecipientAddress string `json:"recipientAddress"`
	Amount           string `json:"amount"`
	Timestamp        string `json:"timestamp"`
}

// Client talks to the history API collaborator over REST. It implements
// port.HistoryStore for the wallet process.
type Client struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

var _ port.HistoryStore = (*Client)(nil)

// NewClient creates a history API client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("HistoryClient"),
	}
}

// Append posts the record and returns it with the server-assigned id.
func (c *Client) Append(ctx context.Context, record entity.TransferRecord) (entity.TransferRecord, error) {
	body, err := json.Marshal(appendPayload{
		RecipientAddress: record.RecipientAddress,
		Amount:           record.AmountNative,
		Timestamp:        record.Timestamp,
	})
	if err != nil {
		return entity.TransferRecord{}, fmt.Errorf("failed to marshal history record: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.baseURL + "/history")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := c.do(ctx, req, resp); err != nil {
		return entity.TransferRecord{}, err
	}
	if resp.StatusCode() != fasthttp.StatusCreated {
		c.logger.Error("history API append failed",
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return entity.TransferRecord{}, fmt.Errorf("history API append failed with status %d", resp.StatusCode())
	}

	var stored entity.TransferRecord
	if err := json.Unmarshal(resp.Body(), &stored); err != nil {
		return entity.TransferRecord{}, fmt.Errorf("failed to unmarshal history API response: %w", err)
	}
	return stored, nil
}

// List fetches all records in append order.
func (c *Client) List(ctx context.Context) ([]entity.TransferRecord, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.baseURL + "/history")
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := c.do(ctx, req, resp); err != nil {
		return nil, err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("history API list failed with status %d", resp.StatusCode())
	}

	var records []entity.TransferRecord
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history API response: %w", err)
	}
	return records, nil
}

func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return fmt.Errorf("history API request failed: %w", err)
		}
		return nil
	}
	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		return fmt.Errorf("history API request failed with default timeout: %w", err)
	}
	return nil
}
