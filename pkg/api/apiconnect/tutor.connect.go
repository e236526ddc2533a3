package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/pkg/api"
)

// TutorServiceName is the fully-qualified name of the TutorService service.
const TutorServiceName = Package + ".TutorService"

// Procedure paths of the TutorService methods.
var (
	TutorServiceListTutorsProcedure = procedure("TutorService", "ListTutors")
)

// TutorServiceHandler lists tutors for managers.
type TutorServiceHandler interface {
	ListTutors(context.Context, *connect.Request[api.ListTutorsRequest]) (*connect.Response[api.ListTutorsResponse], error)
}

// NewTutorServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTutorServiceHandler(svc TutorServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	return mount("TutorService", map[string]http.Handler{
		TutorServiceListTutorsProcedure: connect.NewUnaryHandler(TutorServiceListTutorsProcedure, svc.ListTutors, opt),
	})
}

// UnimplementedTutorServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTutorServiceHandler struct{}

func (UnimplementedTutorServiceHandler) ListTutors(context.Context, *connect.Request[api.ListTutorsRequest]) (*connect.Response[api.ListTutorsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.TutorService.ListTutors is not implemented"))
}

// TutorServiceClient is a client for the TutorService service.
type TutorServiceClient interface {
	ListTutors(context.Context, *connect.Request[api.ListTutorsRequest]) (*connect.Response[api.ListTutorsResponse], error)
}

// NewTutorServiceClient constructs a client for the TutorService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewTutorServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TutorServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &tutorServiceClient{
		listTutors: connect.NewClient[api.ListTutorsRequest, api.ListTutorsResponse](httpClient, baseURL+TutorServiceListTutorsProcedure, opts...),
	}
}

type tutorServiceClient struct {
	listTutors *connect.Client[api.ListTutorsRequest, api.ListTutorsResponse]
}

func (c *tutorServiceClient) ListTutors(ctx context.Context, req *connect.Request[api.ListTutorsRequest]) (*connect.Response[api.ListTutorsResponse], error) {
	return c.listTutors.CallUnary(ctx, req)
}
