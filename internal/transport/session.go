package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Response is an immutable snapshot of one HTTP exchange. Header lookups
// are case-insensitive via http.Header; Cookies holds the Set-Cookie
// values of this response only, not the whole jar.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       string
	Cookies    []*http.Cookie
}

// TransportError wraps network-level failures (timeout, connection
// refused, DNS). Probes downgrade it to an inconclusive finding; it is
// never retried.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Session is the stateful HTTP client shared by all probes in a run.
// The cookie jar persists server state (session cookies, CSRF seeds)
// across calls and is not accessible from outside the package.
type Session struct {
	base     *url.URL
	follow   *http.Client
	noFollow *http.Client
	limiter  *rate.Limiter
	maxBody  int64
	timeout  time.Duration
	ua       string
	log      *logrus.Logger
}

type Options struct {
	Timeout      time.Duration // default per-request timeout
	RateLimit    int           // max requests per second, 0 = unlimited
	MaxBodyBytes int64
	UserAgent    string
	Logger       *logrus.Logger
}

type SendOptions struct {
	Timeout         time.Duration // overrides the session default when > 0
	FollowRedirects bool
}

func NewSession(baseURL string, opts Options) (*Session, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q in base URL", base.Scheme)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 10 * 1024 * 1024
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	tr := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   5,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: opts.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	// Two clients share one jar and one transport so redirect policy can
	// change per request without losing session state.
	return &Session{
		base:   base,
		follow: &http.Client{Jar: jar, Transport: tr},
		noFollow: &http.Client{
			Jar:       jar,
			Transport: tr,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		limiter: limiter,
		maxBody: opts.MaxBodyBytes,
		timeout: opts.Timeout,
		ua:      opts.UserAgent,
		log:     opts.Logger,
	}, nil
}

// BaseURL returns the target the session was built for.
func (s *Session) BaseURL() string {
	return s.base.String()
}

// Send issues one request relative to the base URL. A non-nil form is
// sent as an URL-encoded POST body. Network failures come back as a
// *TransportError; any HTTP status is a successful send.
func (s *Session) Send(ctx context.Context, method, path string, form url.Values, opts SendOptions) (*Response, error) {
	target := s.resolve(path)

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Method: method, Path: path, Err: err}
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = s.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if len(form) > 0 {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	req.Header.Set("User-Agent", s.ua)
	if len(form) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	client := s.noFollow
	if opts.FollowRedirects {
		client = s.follow
	}

	s.log.WithFields(logrus.Fields{
		"method": method,
		"url":    target,
	}).Debug("sending request")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody))
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       string(data),
		Cookies:    resp.Cookies(),
	}, nil
}

func (s *Session) resolve(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return strings.TrimSuffix(s.base.String(), "/") + "/" + strings.TrimPrefix(path, "/")
	}
	return s.base.ResolveReference(ref).String()
}
