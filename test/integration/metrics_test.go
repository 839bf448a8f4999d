package integration

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tadeyemo32/career26-vanguard/internal/observability"
	"github.com/tadeyemo32/career26-vanguard/internal/server"
)

// sandboxDenied reports socket errors raised by sandboxes that forbid binds.
func sandboxDenied(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "permission denied") || strings.Contains(msg, "not permitted")
}

func startMetrics(t *testing.T) {
	t.Helper()
	if err := observability.InitMetrics("test", 0, "test"); err != nil {
		if sandboxDenied(err) {
			t.Skipf("metrics exporter cannot bind here: %v", err)
		}
		require.NoError(t, err)
	}
	t.Cleanup(func() { _ = observability.ShutdownMetrics() })
}

// startAPI serves the full router on an IPv4 loopback listener.
func startAPI(t *testing.T, opts ...server.Option) *httptest.Server {
	t.Helper()
	require.NoError(t, observability.InitServerLogger("test", "error", ""))

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		if sandboxDenied(err) {
			t.Skipf("loopback listener unavailable: %v", err)
		}
		require.NoError(t, err)
	}

	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: server.New("127.0.0.1", 0, opts...).Handler()},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts
}

func scrape(t *testing.T, client *http.Client, url string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(url + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	return resp, string(body)
}

func TestNameSearchTrafficIsExported(t *testing.T) {
	startMetrics(t)
	ts := startAPI(t)
	client := ts.Client()

	names := []string{
		"CITY ASSET MANAGEMENT PLC",
		"THE NORTHERN WIDGET COMPANY (LEEDS) LIMITED",
		"!!!",
	}
	const requests = 45

	jobs := make(chan int, requests)
	for i := 0; i < requests; i++ {
		jobs <- i
	}
	close(jobs)

	started := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				var (
					resp *http.Response
					err  error
				)
				switch i % 3 {
				case 0, 1:
					body := fmt.Sprintf(`{"company_number":"%d","company_name":%q}`, i, names[i%len(names)])
					resp, err = client.Post(ts.URL+"/v1/name-to-search", "application/json", strings.NewReader(body))
				default:
					resp, err = client.Get(ts.URL + "/v1/unknown")
				}
				if err == nil {
					_ = resp.Body.Close()
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(started)

	resp, body := scrape(t, client, ts.URL)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "test_http_requests_total")
	assert.Contains(t, body, "test_http_request_duration_ms")
	assert.Contains(t, body, "name_search_total")
	assert.Contains(t, body, "name_search_rejections_total")
	assert.Contains(t, body, "http_errors_total")
	assert.Less(t, elapsed, 5*time.Second)
}

func TestMetricsUsePrometheusExposition(t *testing.T) {
	startMetrics(t)
	ts := startAPI(t)

	resp, err := ts.Client().Get(ts.URL + "/version")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	resp, body := scrape(t, ts.Client(), ts.URL)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain; version=0.0.4"),
		"unexpected content type %q", resp.Header.Get("Content-Type"))

	samples := 0
	labelled := false
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		samples++
		if strings.Contains(line, "{") && len(strings.Fields(line)) >= 2 {
			labelled = true
		}
	}
	assert.Positive(t, samples)
	assert.True(t, labelled, "expected at least one labelled sample")
}

func TestMetricsUnavailableWithoutExporter(t *testing.T) {
	require.NoError(t, observability.ShutdownMetrics())
	ts := startAPI(t)

	resp, err := ts.Client().Post(ts.URL+"/v1/name-to-search", "application/json",
		strings.NewReader(`{"company_name":"CITY ASSET MANAGEMENT PLC"}`))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = scrape(t, ts.Client(), ts.URL)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
