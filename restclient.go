package infirmary

import (
	"context"
	"crypto/tls"

	"github.com/jpmpuerm/infirmary-client/config"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// NewRestyClient builds the client used by the gateway. Requests that do not carry a
// context of their own are bound to ctx.
func NewRestyClient(ctx context.Context, configuration *config.Configuration) *resty.Client {
	client := resty.New().
		SetTimeout(configuration.APITimeout()).
		SetAllowGetMethodPayload(true).
		OnBeforeRequest(configureRequest(ctx, configuration))

	if configuration.Development {
		client = client.SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: true,
		})
	}
	if configuration.Proxy != "" {
		client.SetProxy(configuration.Proxy)
	}

	return client
}

func configureRequest(ctx context.Context, configuration *config.Configuration) resty.RequestMiddleware {
	return func(client *resty.Client, request *resty.Request) error {
		if request.Context() == context.Background() {
			request.SetContext(ctx)
		}
		if configuration.LogLevel <= zerolog.DebugLevel {
			request.EnableTrace()
		}
		return nil
	}
}
