package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/pkg/api"
)

// PricingServiceName is the fully-qualified name of the PricingService service.
const PricingServiceName = Package + ".PricingService"

// Procedure paths of the PricingService methods.
var (
	PricingServiceGetPricingProcedure      = procedure("PricingService", "GetPricing")
	PricingServiceSetTutorPricingProcedure = procedure("PricingService", "SetTutorPricing")
	PricingServiceQuotePriceProcedure      = procedure("PricingService", "QuotePrice")
)

// PricingServiceHandler exposes the pricing table and per-tutor overrides.
type PricingServiceHandler interface {
	GetPricing(context.Context, *connect.Request[api.GetPricingRequest]) (*connect.Response[api.GetPricingResponse], error)
	SetTutorPricing(context.Context, *connect.Request[api.SetTutorPricingRequest]) (*connect.Response[api.SetTutorPricingResponse], error)
	QuotePrice(context.Context, *connect.Request[api.QuotePriceRequest]) (*connect.Response[api.QuotePriceResponse], error)
}

// NewPricingServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewPricingServiceHandler(svc PricingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	return mount("PricingService", map[string]http.Handler{
		PricingServiceGetPricingProcedure:      connect.NewUnaryHandler(PricingServiceGetPricingProcedure, svc.GetPricing, opt),
		PricingServiceSetTutorPricingProcedure: connect.NewUnaryHandler(PricingServiceSetTutorPricingProcedure, svc.SetTutorPricing, opt),
		PricingServiceQuotePriceProcedure:      connect.NewUnaryHandler(PricingServiceQuotePriceProcedure, svc.QuotePrice, opt),
	})
}

// UnimplementedPricingServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedPricingServiceHandler struct{}

func (UnimplementedPricingServiceHandler) GetPricing(context.Context, *connect.Request[api.GetPricingRequest]) (*connect.Response[api.GetPricingResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.PricingService.GetPricing is not implemented"))
}

func (UnimplementedPricingServiceHandler) SetTutorPricing(context.Context, *connect.Request[api.SetTutorPricingRequest]) (*connect.Response[api.SetTutorPricingResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.PricingService.SetTutorPricing is not implemented"))
}

func (UnimplementedPricingServiceHandler) QuotePrice(context.Context, *connect.Request[api.QuotePriceRequest]) (*connect.Response[api.QuotePriceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.PricingService.QuotePrice is not implemented"))
}

// PricingServiceClient is a client for the PricingService service.
type PricingServiceClient interface {
	GetPricing(context.Context, *connect.Request[api.GetPricingRequest]) (*connect.Response[api.GetPricingResponse], error)
	SetTutorPricing(context.Context, *connect.Request[api.SetTutorPricingRequest]) (*connect.Response[api.SetTutorPricingResponse], error)
	QuotePrice(context.Context, *connect.Request[api.QuotePriceRequest]) (*connect.Response[api.QuotePriceResponse], error)
}

// NewPricingServiceClient constructs a client for the PricingService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewPricingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PricingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &pricingServiceClient{
		getPricing:      connect.NewClient[api.GetPricingRequest, api.GetPricingResponse](httpClient, baseURL+PricingServiceGetPricingProcedure, opts...),
		setTutorPricing: connect.NewClient[api.SetTutorPricingRequest, api.SetTutorPricingResponse](httpClient, baseURL+PricingServiceSetTutorPricingProcedure, opts...),
		quotePrice:      connect.NewClient[api.QuotePriceRequest, api.QuotePriceResponse](httpClient, baseURL+PricingServiceQuotePriceProcedure, opts...),
	}
}

type pricingServiceClient struct {
	getPricing      *connect.Client[api.GetPricingRequest, api.GetPricingResponse]
	setTutorPricing *connect.Client[api.SetTutorPricingRequest, api.SetTutorPricingResponse]
	quotePrice      *connect.Client[api.QuotePriceRequest, api.QuotePriceResponse]
}

func (c *pricingServiceClient) GetPricing(ctx context.Context, req *connect.Request[api.GetPricingRequest]) (*connect.Response[api.GetPricingResponse], error) {
	return c.getPricing.CallUnary(ctx, req)
}

func (c *pricingServiceClient) SetTutorPricing(ctx context.Context, req *connect.Request[api.SetTutorPricingRequest]) (*connect.Response[api.SetTutorPricingResponse], error) {
	return c.setTutorPricing.CallUnary(ctx, req)
}

func (c *pricingServiceClient) QuotePrice(ctx context.Context, req *connect.Request[api.QuotePriceRequest]) (*connect.Response[api.QuotePriceResponse], error) {
	return c.quotePrice.CallUnary(ctx, req)
}
