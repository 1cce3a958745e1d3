package infirmary

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jpmpuerm/infirmary-client/calllog/service"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout applies to every gateway call unless the resty client is configured otherwise.
const DefaultTimeout = 30 * time.Second

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"

	contentTypeJSON      = "application/json"
	contentTypeMultipart = "multipart/form-data"
)

type Gateway interface {
	// Request performs exactly one HTTP call and reports its outcome as an Envelope.
	// The only error returned is ErrURLRequired; every transport or server failure is a Failure.
	Request(ctx context.Context, method, url string, query Query, accessToken string, payload any) (Envelope, error)
}

type gateway struct {
	client         *resty.Client
	callLogService service.CallLogService
}

// NewGateway wraps restyClient. A client without a timeout gets DefaultTimeout.
// callLogService may be nil.
func NewGateway(restyClient *resty.Client, callLogService service.CallLogService) Gateway {
	if restyClient.GetClient().Timeout == 0 {
		restyClient.SetTimeout(DefaultTimeout)
	}
	return &gateway{
		client:         restyClient,
		callLogService: callLogService,
	}
}

func (g *gateway) Request(ctx context.Context, method, url string, query Query, accessToken string, payload any) (Envelope, error) {
	if url == "" {
		return nil, ErrURLRequired
	}
	if method == "" {
		method = resty.MethodGet
	}
	method = strings.ToUpper(method)
	if encodedQuery := query.Encode(); encodedQuery != "" {
		url += "?" + encodedQuery
	}
	if ctx == nil {
		ctx = context.Background()
	}

	authorization := ""
	if accessToken != "" {
		authorization = "Bearer " + accessToken
	}

	request := g.client.R().
		SetContext(ctx).
		SetHeader(headerAuthorization, authorization)

	switch p := payload.(type) {
	case nil:
		request.SetHeader(headerContentType, contentTypeJSON)
	case *FormData:
		// resty replaces the header with one carrying the multipart boundary
		request.SetHeader(headerContentType, contentTypeMultipart)
		setMultipartPayload(request, p)
	default:
		request.SetHeader(headerContentType, contentTypeJSON).
			SetBody(payload)
	}

	start := time.Now()
	resp, err := request.Execute(method, url)
	duration := time.Since(start)

	if err != nil || !resp.IsSuccess() {
		failure := newFailure(resp, err)
		log.Warn().
			Err(err).
			Str("method", method).
			Str("url", url).
			Int("status", failure.Status).
			Dur("duration", duration).
			Msg(MsgRequestFailed)
		if g.callLogService != nil {
			g.callLogService.Failed(method, url, failure.Status, duration)
		}
		return failure, nil
	}

	log.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode()).
		Dur("duration", duration).
		Msg(MsgRequestSucceeded)
	if g.callLogService != nil {
		g.callLogService.Succeeded(method, url, resp.StatusCode(), duration)
	}

	return newSuccess(resp.Body()), nil
}

func setMultipartPayload(request *resty.Request, formData *FormData) {
	request.SetMultipartFormData(map[string]string{}).
		SetFormDataFromValues(formData.Fields)

	multipartFields := make([]*resty.MultipartField, len(formData.Files))
	for i, file := range formData.Files {
		multipartFields[i] = &resty.MultipartField{
			Param:       file.Param,
			FileName:    file.FileName,
			ContentType: file.ContentType,
			Reader:      file.Reader,
		}
	}
	request.SetMultipartFields(multipartFields...)
}

// newFailure picks the best available body: the server's payload, the status text and
// finally MsgUnableToConnect. A transport error always yields status 0, even when it
// struck after the response headers had arrived.
func newFailure(resp *resty.Response, err error) Failure {
	if err != nil || resp == nil || resp.RawResponse == nil {
		return Failure{Status: 0, Body: MsgUnableToConnect}
	}

	status := resp.StatusCode()
	if len(bytes.TrimSpace(resp.Body())) > 0 {
		return Failure{Status: status, Body: decodeBody(resp.Body())}
	}
	if statusText := statusTextOf(resp); statusText != "" {
		return Failure{Status: status, Body: statusText}
	}
	return Failure{Status: status, Body: MsgUnableToConnect}
}

// statusTextOf strips the code from "404 Not Found"
func statusTextOf(resp *resty.Response) string {
	statusText := strings.TrimSpace(strings.TrimPrefix(resp.Status(), strconv.Itoa(resp.StatusCode())))
	if statusText == "" {
		statusText = http.StatusText(resp.StatusCode())
	}
	return statusText
}
