package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"holdings/internal/aggregator"
	"holdings/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const DefaultMaxBodyBytes = 4 << 20

var errBodyTooLarge = errors.New("response body too large")

// The wire types use pointers so that a missing field can be told apart
// from a zero value.
type wireHolding struct {
	Symbol   *string  `json:"symbol" validate:"required,min=1"`
	Quantity *float64 `json:"quantity" validate:"required,gte=0"`
	LTP      *float64 `json:"ltp" validate:"required,gte=0"`
	AvgPrice *float64 `json:"avgPrice" validate:"required,gte=0"`
}

type wireData struct {
	UserHolding []wireHolding `json:"userHolding" validate:"required,dive"`
}

type wireResponse struct {
	Data *wireData `json:"data" validate:"required"`
}

type Client struct {
	url          string
	http         *http.Client
	log          *logrus.Logger
	validate     *validator.Validate
	MaxBodyBytes int64
}

func New(url string, httpClient *http.Client, log *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		url:          url,
		http:         httpClient,
		log:          log,
		validate:     validator.New(),
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// Load fetches the holdings once and aggregates them. It never returns nil.
func (c *Client) Load(ctx context.Context) Result {
	holdings, err := c.Fetch(ctx)
	if err != nil {
		var lerr *Error
		if !errors.As(err, &lerr) {
			lerr = &Error{Kind: KindTransport, Err: err}
		}
		c.log.WithField("kind", lerr.Kind.String()).Warnf("holdings fetch failed: %v", lerr.Err)
		return Failure{Err: lerr}
	}
	items, totals := aggregator.Aggregate(holdings)
	c.log.Debugf("loaded %d holdings", len(items))
	return Success{Holdings: items, Totals: totals}
}

// Fetch performs the GET and returns the validated holdings. Errors are *Error.
func (c *Client) Fetch(ctx context.Context) ([]models.Holding, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.MaxBodyBytes+1))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	if int64(len(body)) > c.MaxBodyBytes {
		return nil, &Error{Kind: KindParse, Err: errBodyTooLarge}
	}
	return c.Decode(body)
}

// Decode validates a response body against the expected shape. The whole
// payload is rejected if any holding is malformed.
func (c *Client) Decode(body []byte) ([]models.Holding, error) {
	var w wireResponse
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, &Error{Kind: KindParse, Err: err}
	}
	if err := c.validate.Struct(w); err != nil {
		return nil, &Error{Kind: KindParse, Err: err}
	}
	res := make([]models.Holding, 0, len(w.Data.UserHolding))
	for _, h := range w.Data.UserHolding {
		res = append(res, models.Holding{
			Symbol:   *h.Symbol,
			Quantity: decimal.NewFromFloat(*h.Quantity),
			LTP:      decimal.NewFromFloat(*h.LTP),
			AvgPrice: decimal.NewFromFloat(*h.AvgPrice),
		})
	}
	return res, nil
}
