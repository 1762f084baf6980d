package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/patioshop/storefront/internal/domain/checkout"
)

var _ checkout.Submitter = (*Client)(nil)

type orderItemPayload struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// orderPayload uses the API's wire field names. CouponCode is a pointer so
// an absent coupon is sent as an explicit null.
type orderPayload struct {
	CustomerName    string `json:"customerName"`
	CustomerSurname string `json:"customerSurname"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerEmail   string `json:"customerEmail"`
	DNIOrCUIT       string `json:"dniOrCuit"`

	AddressStreet       string `json:"addressStreet"`
	AddressNumber       string `json:"addressNumber"`
	AddressFloor        string `json:"addressFloor"`
	AddressApartment    string `json:"addressApartment"`
	AddressCity         string `json:"addressCity"`
	AddressNeighborhood string `json:"addressNeighborhood"`
	AddressZipCode      string `json:"addressZipCode"`

	DeliveryMethod string  `json:"deliveryMethod"`
	Branch         string  `json:"branch"`
	Notes          string  `json:"notes"`
	CouponCode     *string `json:"couponCode"`
	PaymentMethod  string  `json:"paymentMethod"`

	Items []orderItemPayload `json:"items"`
}

type orderResponse struct {
	OrderID     int64  `json:"orderId"`
	MPInitPoint string `json:"mpInitPoint"`
}

// CreateOrder posts the assembled order. Each call carries a fresh
// Idempotency-Key so a retried submission cannot create a duplicate order.
func (c *Client) CreateOrder(ctx context.Context, req checkout.OrderRequest) (*checkout.OrderResult, error) {
	payload := orderPayload{
		CustomerName:    req.Name,
		CustomerSurname: req.Surname,
		CustomerPhone:   req.Phone,
		CustomerEmail:   req.Email,
		DNIOrCUIT:       req.TaxID,

		AddressStreet:       req.AddressStreet,
		AddressNumber:       req.AddressNumber,
		AddressFloor:        req.AddressFloor,
		AddressApartment:    req.AddressApartment,
		AddressCity:         req.AddressCity,
		AddressNeighborhood: req.AddressNeighborhood,
		AddressZipCode:      req.AddressZipCode,

		DeliveryMethod: string(req.DeliveryMethod),
		Branch:         req.Branch,
		Notes:          req.Notes,
		PaymentMethod:  string(req.PaymentMethod),
	}
	if req.CouponCode != "" {
		payload.CouponCode = &req.CouponCode
	}
	payload.Items = make([]orderItemPayload, len(req.Items))
	for i, item := range req.Items {
		payload.Items[i] = orderItemPayload{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode order")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/store/orders", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "post order")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Status: resp.StatusCode, URL: "/api/store/orders"}
	}

	var dto orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, errors.Wrap(err, "decode order response")
	}
	return &checkout.OrderResult{
		OrderID:    strconv.FormatInt(dto.OrderID, 10),
		GatewayURL: dto.MPInitPoint,
	}, nil
}
