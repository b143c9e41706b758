package stan

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"stan-api/internal/components/assert"
	"stan-api/internal/components/telemetry"
	"stan-api/internal/htmlutil"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultSiteURL     = "https://www.reseau-stan.com/"
	DefaultEndpointURL = "https://www.reseau-stan.com/?type=476"
)

var tracer = otel.Tracer("stan-api/pkg/stan")

// ErrInvalidArgument is returned, before any request is made, when the entity passed to
// an operation lacks the fields the operation needs.
var ErrInvalidArgument = errors.New("stan: invalid argument")

// StatusError is returned when the site answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stan: %s %s: %s", e.Method, e.URL, e.Status)
}

type Options struct {
	// SiteURL is the home page, the line list is scraped from it.
	SiteURL string
	// EndpointURL is the ajax endpoint every other operation posts to.
	EndpointURL string
	// Timeout bounds every request, zero leaves it to the http client.
	Timeout   time.Duration
	UserAgent string
	// HTTP provides the http client (transport, cookie jar) and the default headers.
	// It is copied and never modified, so it can be shared between clients.
	HTTP      *resty.Client
	Telemetry telemetry.API
}

// Client scrapes the STAN website. It holds no state besides its http client
// and is safe for concurrent use.
type Client struct {
	http        *resty.Client
	siteURL     string
	endpointURL string
	validate    *validator.Validate
	tel         telemetry.API
}

func NewClient(opts Options) (*Client, error) {
	if opts.SiteURL == "" {
		opts.SiteURL = DefaultSiteURL
	}
	if opts.EndpointURL == "" {
		opts.EndpointURL = DefaultEndpointURL
	}
	for _, raw := range []string{opts.SiteURL, opts.EndpointURL} {
		parsed, err := url.Parse(raw)
		if err != nil {
			return nil, err
		}
		if !parsed.IsAbs() {
			return nil, fmt.Errorf("stan: url must be absolute: %q", raw)
		}
	}

	assert.NotEmptyStr(opts.SiteURL)
	assert.NotEmptyStr(opts.EndpointURL)

	tel := opts.Telemetry
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("stan", tel)

	var httpClient *resty.Client
	if opts.HTTP != nil {
		hc := *opts.HTTP.GetClient()
		httpClient = resty.NewWithClient(&hc)
		httpClient.Header = opts.HTTP.Header.Clone()
	} else {
		httpClient = resty.New()
	}
	httpClient.SetHeader("X-Requested-With", "XMLHttpRequest")
	if opts.UserAgent != "" {
		httpClient.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}
	telemetry.InstrumentResty(httpClient, tel)

	return &Client{
		http:        httpClient,
		siteURL:     opts.SiteURL,
		endpointURL: opts.EndpointURL,
		validate:    validator.New(),
		tel:         tel,
	}, nil
}

func (c *Client) checkArgument(req any) error {
	err := c.validate.Struct(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

func checkStatus(res *resty.Response) error {
	if res.IsSuccess() {
		return nil
	}
	return &StatusError{
		Method:     res.Request.Method,
		URL:        res.Request.URL,
		StatusCode: res.StatusCode(),
		Status:     res.Status(),
	}
}

// fetchPage performs a plain GET, outside of the ajax endpoint.
func (c *Client) fetchPage(ctx context.Context, link string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return "", err
	}
	err = checkStatus(res)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// submit posts a `requete` to the ajax endpoint. `values` become `requete_val[<key>]`
// fields and `extra` is sent as top-level fields next to them.
func (c *Client) submit(ctx context.Context, requete string, values, extra map[string]string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetFormDataFromValues(requeteForm(requete, values, extra)).
		Post(c.endpointURL)
	if err != nil {
		return nil, err
	}
	err = checkStatus(res)
	if err != nil {
		return nil, err
	}
	return res.Body(), nil
}

func requeteForm(requete string, values, extra map[string]string) url.Values {
	form := url.Values{}
	form.Set("requete", requete)
	for k, v := range values {
		form.Set(fmt.Sprintf("requete_val[%s]", k), v)
	}
	for k, v := range extra {
		form.Set(k, v)
	}
	return form
}

// reportMismatch is called when a rule matched nothing. If the response still contains
// elements the rule is meant to match, the markup most likely changed upstream.
func (c *Client) reportMismatch(reportId, body, selector string) {
	n, err := htmlutil.CountElements(body, selector)
	if err != nil {
		c.tel.ReportWarning(reportId, fmt.Errorf("parse html: %w", err))
		return
	}
	if n > 0 {
		c.tel.ReportBroken(
			reportId,
			fmt.Errorf("pattern mismatch: %d candidate elements matched nothing", n),
			selector,
		)
	}
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
