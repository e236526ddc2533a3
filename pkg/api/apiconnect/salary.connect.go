package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/pkg/api"
)

// SalaryServiceName is the fully-qualified name of the SalaryService service.
const SalaryServiceName = Package + ".SalaryService"

// Procedure paths of the SalaryService methods.
var (
	SalaryServiceGetMonthlyReportProcedure = procedure("SalaryService", "GetMonthlyReport")
	SalaryServiceGetSalaryProcedure        = procedure("SalaryService", "GetSalary")
	SalaryServiceSetSalaryProcedure        = procedure("SalaryService", "SetSalary")
)

// SalaryServiceHandler computes monthly reports and stores manual salaries.
type SalaryServiceHandler interface {
	GetMonthlyReport(context.Context, *connect.Request[api.GetMonthlyReportRequest]) (*connect.Response[api.GetMonthlyReportResponse], error)
	GetSalary(context.Context, *connect.Request[api.GetSalaryRequest]) (*connect.Response[api.GetSalaryResponse], error)
	SetSalary(context.Context, *connect.Request[api.SetSalaryRequest]) (*connect.Response[api.SetSalaryResponse], error)
}

// NewSalaryServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSalaryServiceHandler(svc SalaryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	return mount("SalaryService", map[string]http.Handler{
		SalaryServiceGetMonthlyReportProcedure: connect.NewUnaryHandler(SalaryServiceGetMonthlyReportProcedure, svc.GetMonthlyReport, opt),
		SalaryServiceGetSalaryProcedure:        connect.NewUnaryHandler(SalaryServiceGetSalaryProcedure, svc.GetSalary, opt),
		SalaryServiceSetSalaryProcedure:        connect.NewUnaryHandler(SalaryServiceSetSalaryProcedure, svc.SetSalary, opt),
	})
}

// UnimplementedSalaryServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSalaryServiceHandler struct{}

func (UnimplementedSalaryServiceHandler) GetMonthlyReport(context.Context, *connect.Request[api.GetMonthlyReportRequest]) (*connect.Response[api.GetMonthlyReportResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.SalaryService.GetMonthlyReport is not implemented"))
}

func (UnimplementedSalaryServiceHandler) GetSalary(context.Context, *connect.Request[api.GetSalaryRequest]) (*connect.Response[api.GetSalaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.SalaryService.GetSalary is not implemented"))
}

func (UnimplementedSalaryServiceHandler) SetSalary(context.Context, *connect.Request[api.SetSalaryRequest]) (*connect.Response[api.SetSalaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.SalaryService.SetSalary is not implemented"))
}

// SalaryServiceClient is a client for the SalaryService service.
type SalaryServiceClient interface {
	GetMonthlyReport(context.Context, *connect.Request[api.GetMonthlyReportRequest]) (*connect.Response[api.GetMonthlyReportResponse], error)
	GetSalary(context.Context, *connect.Request[api.GetSalaryRequest]) (*connect.Response[api.GetSalaryResponse], error)
	SetSalary(context.Context, *connect.Request[api.SetSalaryRequest]) (*connect.Response[api.SetSalaryResponse], error)
}

// NewSalaryServiceClient constructs a client for the SalaryService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewSalaryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SalaryServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &salaryServiceClient{
		getMonthlyReport: connect.NewClient[api.GetMonthlyReportRequest, api.GetMonthlyReportResponse](httpClient, baseURL+SalaryServiceGetMonthlyReportProcedure, opts...),
		getSalary:        connect.NewClient[api.GetSalaryRequest, api.GetSalaryResponse](httpClient, baseURL+SalaryServiceGetSalaryProcedure, opts...),
		setSalary:        connect.NewClient[api.SetSalaryRequest, api.SetSalaryResponse](httpClient, baseURL+SalaryServiceSetSalaryProcedure, opts...),
	}
}

type salaryServiceClient struct {
	getMonthlyReport *connect.Client[api.GetMonthlyReportRequest, api.GetMonthlyReportResponse]
	getSalary        *connect.Client[api.GetSalaryRequest, api.GetSalaryResponse]
	setSalary        *connect.Client[api.SetSalaryRequest, api.SetSalaryResponse]
}

func (c *salaryServiceClient) GetMonthlyReport(ctx context.Context, req *connect.Request[api.GetMonthlyReportRequest]) (*connect.Response[api.GetMonthlyReportResponse], error) {
	return c.getMonthlyReport.CallUnary(ctx, req)
}

func (c *salaryServiceClient) GetSalary(ctx context.Context, req *connect.Request[api.GetSalaryRequest]) (*connect.Response[api.GetSalaryResponse], error) {
	return c.getSalary.CallUnary(ctx, req)
}

func (c *salaryServiceClient) SetSalary(ctx context.Context, req *connect.Request[api.SetSalaryRequest]) (*connect.Response[api.SetSalaryResponse], error) {
	return c.setSalary.CallUnary(ctx, req)
}
