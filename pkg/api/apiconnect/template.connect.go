package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/pkg/api"
)

// TemplateServiceName is the fully-qualified name of the TemplateService service.
const TemplateServiceName = Package + ".TemplateService"

// Procedure paths of the TemplateService methods.
var (
	TemplateServiceGetTemplatesProcedure        = procedure("TemplateService", "GetTemplates")
	TemplateServiceReplaceTemplatesProcedure    = procedure("TemplateService", "ReplaceTemplates")
	TemplateServiceApplyTemplateProcedure       = procedure("TemplateService", "ApplyTemplate")
	TemplateServiceBeginDaySelectionProcedure   = procedure("TemplateService", "BeginDaySelection")
	TemplateServiceToggleDayProcedure           = procedure("TemplateService", "ToggleDay")
	TemplateServiceConfirmDaySelectionProcedure = procedure("TemplateService", "ConfirmDaySelection")
	TemplateServiceCancelDaySelectionProcedure  = procedure("TemplateService", "CancelDaySelection")
)

// TemplateServiceHandler manages weekday templates and applies them to a month.
type TemplateServiceHandler interface {
	GetTemplates(context.Context, *connect.Request[api.GetTemplatesRequest]) (*connect.Response[api.GetTemplatesResponse], error)
	ReplaceTemplates(context.Context, *connect.Request[api.ReplaceTemplatesRequest]) (*connect.Response[api.ReplaceTemplatesResponse], error)
	ApplyTemplate(context.Context, *connect.Request[api.ApplyTemplateRequest]) (*connect.Response[api.ApplyTemplateResponse], error)
	BeginDaySelection(context.Context, *connect.Request[api.BeginDaySelectionRequest]) (*connect.Response[api.BeginDaySelectionResponse], error)
	ToggleDay(context.Context, *connect.Request[api.ToggleDayRequest]) (*connect.Response[api.ToggleDayResponse], error)
	ConfirmDaySelection(context.Context, *connect.Request[api.ConfirmDaySelectionRequest]) (*connect.Response[api.ConfirmDaySelectionResponse], error)
	CancelDaySelection(context.Context, *connect.Request[api.CancelDaySelectionRequest]) (*connect.Response[api.CancelDaySelectionResponse], error)
}

// NewTemplateServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTemplateServiceHandler(svc TemplateServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	return mount("TemplateService", map[string]http.Handler{
		TemplateServiceGetTemplatesProcedure:        connect.NewUnaryHandler(TemplateServiceGetTemplatesProcedure, svc.GetTemplates, opt),
		TemplateServiceReplaceTemplatesProcedure:    connect.NewUnaryHandler(TemplateServiceReplaceTemplatesProcedure, svc.ReplaceTemplates, opt),
		TemplateServiceApplyTemplateProcedure:       connect.NewUnaryHandler(TemplateServiceApplyTemplateProcedure, svc.ApplyTemplate, opt),
		TemplateServiceBeginDaySelectionProcedure:   connect.NewUnaryHandler(TemplateServiceBeginDaySelectionProcedure, svc.BeginDaySelection, opt),
		TemplateServiceToggleDayProcedure:           connect.NewUnaryHandler(TemplateServiceToggleDayProcedure, svc.ToggleDay, opt),
		TemplateServiceConfirmDaySelectionProcedure: connect.NewUnaryHandler(TemplateServiceConfirmDaySelectionProcedure, svc.ConfirmDaySelection, opt),
		TemplateServiceCancelDaySelectionProcedure:  connect.NewUnaryHandler(TemplateServiceCancelDaySelectionProcedure, svc.CancelDaySelection, opt),
	})
}

// UnimplementedTemplateServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTemplateServiceHandler struct{}

func (UnimplementedTemplateServiceHandler) GetTemplates(context.Context, *connect.Request[api.GetTemplatesRequest]) (*connect.Response[api.GetTemplatesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.TemplateService.GetTemplates is not implemented"))
}

func (UnimplementedTemplateServiceHandler) ReplaceTemplates(context.Context, *connect.Request[api.ReplaceTemplatesRequest]) (*connect.Response[api.ReplaceTemplatesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.TemplateService.ReplaceTemplates is not implemented"))
}

func (UnimplementedTemplateServiceHandler) ApplyTemplate(context.Context, *connect.Request[api.ApplyTemplateRequest]) (*connect.Response[api.ApplyTemplateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.TemplateService.ApplyTemplate is not implemented"))
}

func (UnimplementedTemplateServiceHandler) BeginDaySelection(context.Context, *connect.Request[api.BeginDaySelectionRequest]) (*connect.Response[api.BeginDaySelectionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.TemplateService.BeginDaySelection is not implemented"))
}

func (UnimplementedTemplateServiceHandler) ToggleDay(context.Context, *connect.Request[api.ToggleDayRequest]) (*connect.Response[api.ToggleDayResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.TemplateService.ToggleDay is not implemented"))
}

func (UnimplementedTemplateServiceHandler) ConfirmDaySelection(context.Context, *connect.Request[api.ConfirmDaySelectionRequest]) (*connect.Response[api.ConfirmDaySelectionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.TemplateService.ConfirmDaySelection is not implemented"))
}

func (UnimplementedTemplateServiceHandler) CancelDaySelection(context.Context, *connect.Request[api.CancelDaySelectionRequest]) (*connect.Response[api.CancelDaySelectionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.TemplateService.CancelDaySelection is not implemented"))
}

// TemplateServiceClient is a client for the TemplateService service.
type TemplateServiceClient interface {
	GetTemplates(context.Context, *connect.Request[api.GetTemplatesRequest]) (*connect.Response[api.GetTemplatesResponse], error)
	ReplaceTemplates(context.Context, *connect.Request[api.ReplaceTemplatesRequest]) (*connect.Response[api.ReplaceTemplatesResponse], error)
	ApplyTemplate(context.Context, *connect.Request[api.ApplyTemplateRequest]) (*connect.Response[api.ApplyTemplateResponse], error)
	BeginDaySelection(context.Context, *connect.Request[api.BeginDaySelectionRequest]) (*connect.Response[api.BeginDaySelectionResponse], error)
	ToggleDay(context.Context, *connect.Request[api.ToggleDayRequest]) (*connect.Response[api.ToggleDayResponse], error)
	ConfirmDaySelection(context.Context, *connect.Request[api.ConfirmDaySelectionRequest]) (*connect.Response[api.ConfirmDaySelectionResponse], error)
	CancelDaySelection(context.Context, *connect.Request[api.CancelDaySelectionRequest]) (*connect.Response[api.CancelDaySelectionResponse], error)
}

// NewTemplateServiceClient constructs a client for the TemplateService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewTemplateServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TemplateServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &templateServiceClient{
		getTemplates:        connect.NewClient[api.GetTemplatesRequest, api.GetTemplatesResponse](httpClient, baseURL+TemplateServiceGetTemplatesProcedure, opts...),
		replaceTemplates:    connect.NewClient[api.ReplaceTemplatesRequest, api.ReplaceTemplatesResponse](httpClient, baseURL+TemplateServiceReplaceTemplatesProcedure, opts...),
		applyTemplate:       connect.NewClient[api.ApplyTemplateRequest, api.ApplyTemplateResponse](httpClient, baseURL+TemplateServiceApplyTemplateProcedure, opts...),
		beginDaySelection:   connect.NewClient[api.BeginDaySelectionRequest, api.BeginDaySelectionResponse](httpClient, baseURL+TemplateServiceBeginDaySelectionProcedure, opts...),
		toggleDay:           connect.NewClient[api.ToggleDayRequest, api.ToggleDayResponse](httpClient, baseURL+TemplateServiceToggleDayProcedure, opts...),
		confirmDaySelection: connect.NewClient[api.ConfirmDaySelectionRequest, api.ConfirmDaySelectionResponse](httpClient, baseURL+TemplateServiceConfirmDaySelectionProcedure, opts...),
		cancelDaySelection:  connect.NewClient[api.CancelDaySelectionRequest, api.CancelDaySelectionResponse](httpClient, baseURL+TemplateServiceCancelDaySelectionProcedure, opts...),
	}
}

type templateServiceClient struct {
	getTemplates        *connect.Client[api.GetTemplatesRequest, api.GetTemplatesResponse]
	replaceTemplates    *connect.Client[api.ReplaceTemplatesRequest, api.ReplaceTemplatesResponse]
	applyTemplate       *connect.Client[api.ApplyTemplateRequest, api.ApplyTemplateResponse]
	beginDaySelection   *connect.Client[api.BeginDaySelectionRequest, api.BeginDaySelectionResponse]
	toggleDay           *connect.Client[api.ToggleDayRequest, api.ToggleDayResponse]
	confirmDaySelection *connect.Client[api.ConfirmDaySelectionRequest, api.ConfirmDaySelectionResponse]
	cancelDaySelection  *connect.Client[api.CancelDaySelectionRequest, api.CancelDaySelectionResponse]
}

func (c *templateServiceClient) GetTemplates(ctx context.Context, req *connect.Request[api.GetTemplatesRequest]) (*connect.Response[api.GetTemplatesResponse], error) {
	return c.getTemplates.CallUnary(ctx, req)
}

func (c *templateServiceClient) ReplaceTemplates(ctx context.Context, req *connect.Request[api.ReplaceTemplatesRequest]) (*connect.Response[api.ReplaceTemplatesResponse], error) {
	return c.replaceTemplates.CallUnary(ctx, req)
}

func (c *templateServiceClient) ApplyTemplate(ctx context.Context, req *connect.Request[api.ApplyTemplateRequest]) (*connect.Response[api.ApplyTemplateResponse], error) {
	return c.applyTemplate.CallUnary(ctx, req)
}

func (c *templateServiceClient) BeginDaySelection(ctx context.Context, req *connect.Request[api.BeginDaySelectionRequest]) (*connect.Response[api.BeginDaySelectionResponse], error) {
	return c.beginDaySelection.CallUnary(ctx, req)
}

func (c *templateServiceClient) ToggleDay(ctx context.Context, req *connect.Request[api.ToggleDayRequest]) (*connect.Response[api.ToggleDayResponse], error) {
	return c.toggleDay.CallUnary(ctx, req)
}

func (c *templateServiceClient) ConfirmDaySelection(ctx context.Context, req *connect.Request[api.ConfirmDaySelectionRequest]) (*connect.Response[api.ConfirmDaySelectionResponse], error) {
	return c.confirmDaySelection.CallUnary(ctx, req)
}

func (c *templateServiceClient) CancelDaySelection(ctx context.Context, req *connect.Request[api.CancelDaySelectionRequest]) (*connect.Response[api.CancelDaySelectionResponse], error) {
	return c.cancelDaySelection.CallUnary(ctx, req)
}
