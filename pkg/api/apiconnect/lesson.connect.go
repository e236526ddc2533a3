package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/pkg/api"
)

// LessonServiceName is the fully-qualified name of the LessonService service.
const LessonServiceName = Package + ".LessonService"

// Procedure paths of the LessonService methods.
var (
	LessonServiceGetLessonsProcedure     = procedure("LessonService", "GetLessons")
	LessonServiceReplaceLessonsProcedure = procedure("LessonService", "ReplaceLessons")
	LessonServiceAddLessonProcedure      = procedure("LessonService", "AddLesson")
	LessonServiceDeleteLessonProcedure   = procedure("LessonService", "DeleteLesson")
	LessonServiceClearDayProcedure       = procedure("LessonService", "ClearDay")
	LessonServiceClearMonthProcedure     = procedure("LessonService", "ClearMonth")
	LessonServiceClearCorruptedProcedure = procedure("LessonService", "ClearCorrupted")
)

// LessonServiceHandler reads and edits a tutor's lesson calendar.
type LessonServiceHandler interface {
	GetLessons(context.Context, *connect.Request[api.GetLessonsRequest]) (*connect.Response[api.GetLessonsResponse], error)
	ReplaceLessons(context.Context, *connect.Request[api.ReplaceLessonsRequest]) (*connect.Response[api.ReplaceLessonsResponse], error)
	AddLesson(context.Context, *connect.Request[api.AddLessonRequest]) (*connect.Response[api.AddLessonResponse], error)
	DeleteLesson(context.Context, *connect.Request[api.DeleteLessonRequest]) (*connect.Response[api.DeleteLessonResponse], error)
	ClearDay(context.Context, *connect.Request[api.ClearDayRequest]) (*connect.Response[api.ClearDayResponse], error)
	ClearMonth(context.Context, *connect.Request[api.ClearMonthRequest]) (*connect.Response[api.ClearMonthResponse], error)
	ClearCorrupted(context.Context, *connect.Request[api.ClearCorruptedRequest]) (*connect.Response[api.ClearCorruptedResponse], error)
}

// NewLessonServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLessonServiceHandler(svc LessonServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	return mount("LessonService", map[string]http.Handler{
		LessonServiceGetLessonsProcedure:     connect.NewUnaryHandler(LessonServiceGetLessonsProcedure, svc.GetLessons, opt),
		LessonServiceReplaceLessonsProcedure: connect.NewUnaryHandler(LessonServiceReplaceLessonsProcedure, svc.ReplaceLessons, opt),
		LessonServiceAddLessonProcedure:      connect.NewUnaryHandler(LessonServiceAddLessonProcedure, svc.AddLesson, opt),
		LessonServiceDeleteLessonProcedure:   connect.NewUnaryHandler(LessonServiceDeleteLessonProcedure, svc.DeleteLesson, opt),
		LessonServiceClearDayProcedure:       connect.NewUnaryHandler(LessonServiceClearDayProcedure, svc.ClearDay, opt),
		LessonServiceClearMonthProcedure:     connect.NewUnaryHandler(LessonServiceClearMonthProcedure, svc.ClearMonth, opt),
		LessonServiceClearCorruptedProcedure: connect.NewUnaryHandler(LessonServiceClearCorruptedProcedure, svc.ClearCorrupted, opt),
	})
}

// UnimplementedLessonServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLessonServiceHandler struct{}

func (UnimplementedLessonServiceHandler) GetLessons(context.Context, *connect.Request[api.GetLessonsRequest]) (*connect.Response[api.GetLessonsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.LessonService.GetLessons is not implemented"))
}

func (UnimplementedLessonServiceHandler) ReplaceLessons(context.Context, *connect.Request[api.ReplaceLessonsRequest]) (*connect.Response[api.ReplaceLessonsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.LessonService.ReplaceLessons is not implemented"))
}

func (UnimplementedLessonServiceHandler) AddLesson(context.Context, *connect.Request[api.AddLessonRequest]) (*connect.Response[api.AddLessonResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.LessonService.AddLesson is not implemented"))
}

func (UnimplementedLessonServiceHandler) DeleteLesson(context.Context, *connect.Request[api.DeleteLessonRequest]) (*connect.Response[api.DeleteLessonResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.LessonService.DeleteLesson is not implemented"))
}

func (UnimplementedLessonServiceHandler) ClearDay(context.Context, *connect.Request[api.ClearDayRequest]) (*connect.Response[api.ClearDayResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.LessonService.ClearDay is not implemented"))
}

func (UnimplementedLessonServiceHandler) ClearMonth(context.Context, *connect.Request[api.ClearMonthRequest]) (*connect.Response[api.ClearMonthResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.LessonService.ClearMonth is not implemented"))
}

func (UnimplementedLessonServiceHandler) ClearCorrupted(context.Context, *connect.Request[api.ClearCorruptedRequest]) (*connect.Response[api.ClearCorruptedResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("tutorbook.v1.LessonService.ClearCorrupted is not implemented"))
}

// LessonServiceClient is a client for the LessonService service.
type LessonServiceClient interface {
	GetLessons(context.Context, *connect.Request[api.GetLessonsRequest]) (*connect.Response[api.GetLessonsResponse], error)
	ReplaceLessons(context.Context, *connect.Request[api.ReplaceLessonsRequest]) (*connect.Response[api.ReplaceLessonsResponse], error)
	AddLesson(context.Context, *connect.Request[api.AddLessonRequest]) (*connect.Response[api.AddLessonResponse], error)
	DeleteLesson(context.Context, *connect.Request[api.DeleteLessonRequest]) (*connect.Response[api.DeleteLessonResponse], error)
	ClearDay(context.Context, *connect.Request[api.ClearDayRequest]) (*connect.Response[api.ClearDayResponse], error)
	ClearMonth(context.Context, *connect.Request[api.ClearMonthRequest]) (*connect.Response[api.ClearMonthResponse], error)
	ClearCorrupted(context.Context, *connect.Request[api.ClearCorruptedRequest]) (*connect.Response[api.ClearCorruptedResponse], error)
}

// NewLessonServiceClient constructs a client for the LessonService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewLessonServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LessonServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &lessonServiceClient{
		getLessons:     connect.NewClient[api.GetLessonsRequest, api.GetLessonsResponse](httpClient, baseURL+LessonServiceGetLessonsProcedure, opts...),
		replaceLessons: connect.NewClient[api.ReplaceLessonsRequest, api.ReplaceLessonsResponse](httpClient, baseURL+LessonServiceReplaceLessonsProcedure, opts...),
		addLesson:      connect.NewClient[api.AddLessonRequest, api.AddLessonResponse](httpClient, baseURL+LessonServiceAddLessonProcedure, opts...),
		deleteLesson:   connect.NewClient[api.DeleteLessonRequest, api.DeleteLessonResponse](httpClient, baseURL+LessonServiceDeleteLessonProcedure, opts...),
		clearDay:       connect.NewClient[api.ClearDayRequest, api.ClearDayResponse](httpClient, baseURL+LessonServiceClearDayProcedure, opts...),
		clearMonth:     connect.NewClient[api.ClearMonthRequest, api.ClearMonthResponse](httpClient, baseURL+LessonServiceClearMonthProcedure, opts...),
		clearCorrupted: connect.NewClient[api.ClearCorruptedRequest, api.ClearCorruptedResponse](httpClient, baseURL+LessonServiceClearCorruptedProcedure, opts...),
	}
}

type lessonServiceClient struct {
	getLessons     *connect.Client[api.GetLessonsRequest, api.GetLessonsResponse]
	replaceLessons *connect.Client[api.ReplaceLessonsRequest, api.ReplaceLessonsResponse]
	addLesson      *connect.Client[api.AddLessonRequest, api.AddLessonResponse]
	deleteLesson   *connect.Client[api.DeleteLessonRequest, api.DeleteLessonResponse]
	clearDay       *connect.Client[api.ClearDayRequest, api.ClearDayResponse]
	clearMonth     *connect.Client[api.ClearMonthRequest, api.ClearMonthResponse]
	clearCorrupted *connect.Client[api.ClearCorruptedRequest, api.ClearCorruptedResponse]
}

func (c *lessonServiceClient) GetLessons(ctx context.Context, req *connect.Request[api.GetLessonsRequest]) (*connect.Response[api.GetLessonsResponse], error) {
	return c.getLessons.CallUnary(ctx, req)
}

func (c *lessonServiceClient) ReplaceLessons(ctx context.Context, req *connect.Request[api.ReplaceLessonsRequest]) (*connect.Response[api.ReplaceLessonsResponse], error) {
	return c.replaceLessons.CallUnary(ctx, req)
}

func (c *lessonServiceClient) AddLesson(ctx context.Context, req *connect.Request[api.AddLessonRequest]) (*connect.Response[api.AddLessonResponse], error) {
	return c.addLesson.CallUnary(ctx, req)
}

func (c *lessonServiceClient) DeleteLesson(ctx context.Context, req *connect.Request[api.DeleteLessonRequest]) (*connect.Response[api.DeleteLessonResponse], error) {
	return c.deleteLesson.CallUnary(ctx, req)
}

func (c *lessonServiceClient) ClearDay(ctx context.Context, req *connect.Request[api.ClearDayRequest]) (*connect.Response[api.ClearDayResponse], error) {
	return c.clearDay.CallUnary(ctx, req)
}

func (c *lessonServiceClient) ClearMonth(ctx context.Context, req *connect.Request[api.ClearMonthRequest]) (*connect.Response[api.ClearMonthResponse], error) {
	return c.clearMonth.CallUnary(ctx, req)
}

func (c *lessonServiceClient) ClearCorrupted(ctx context.Context, req *connect.Request[api.ClearCorruptedRequest]) (*connect.Response[api.ClearCorruptedResponse], error) {
	return c.clearCorrupted.CallUnary(ctx, req)
}
