package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/etnz/schoolmeal"
	"github.com/etnz/schoolmeal/date"
)

var today = date.New(2025, 9, 8)

func newTestServer(cfg *Config, meals map[date.Date][]schoolmeal.Meal, errs map[date.Date]error) *Server {
	f := schoolmeal.FetcherFunc(func(_ context.Context, on date.Date) ([]schoolmeal.Meal, error) {
		if err := errs[on]; err != nil {
			return nil, err
		}
		return meals[on], nil
	})
	s := New(cfg, f, "상암고")
	s.today = func() date.Date { return today }
	return s
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("cannot decode error response: %v", err)
	}
	return resp
}

func TestPage(t *testing.T) {
	s := newTestServer(nil, map[date.Date][]schoolmeal.Meal{
		today: {
			schoolmeal.NewMeal(today, schoolmeal.Breakfast, "조식", "밥", "에너지(kcal) : 500<br/>단백질(g) : 20"),
			schoolmeal.NewMeal(today, schoolmeal.Lunch, "중식", "쌀밥<br/>미역국 (5.6)", "에너지(kcal) : 823.4<br/>단백질(g) : 35"),
		},
	}, nil)

	rec := get(t, s.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if rec.Header().Get(HeaderRequestID) == "" {
		t.Errorf("response has no %s header", HeaderRequestID)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>🍱 상암고 급식 &amp; 영양소 분석</title>",
		`value="2025-09-08"`,
		"<h3>🍽 조식</h3>",
		"<h3>🍽 중식</h3>",
		"<h2>📊 지난 7일 평균 영양소 분석</h2>",
		"평균값</th>",
		"41.2%",
		"<svg",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
	if n := strings.Count(body, "<h3"); n != 2 {
		t.Errorf("page has %d meal headings, want 2", n)
	}
	if n := strings.Count(body, "<svg"); n != 3 {
		t.Errorf("page has %d charts, want 3", n)
	}
	for _, raw := range []string{"### ", "| 영양소", "```"} {
		if strings.Contains(body, raw) {
			t.Errorf("page contains unconverted markdown %q", raw)
		}
	}
	if strings.Contains(body, "&lt;svg") {
		t.Error("charts are escaped instead of inlined")
	}
}

func TestPageEscapesMealData(t *testing.T) {
	s := newTestServer(nil, map[date.Date][]schoolmeal.Meal{
		today: {schoolmeal.NewMeal(today, schoolmeal.Lunch, "<img src=x onerror=alert(1)>", "<script>alert(2)</script>", "<b>x</b>(g) : 35")},
	}, nil)

	body := get(t, s.Handler(), "/").Body.String()
	for _, raw := range []string{"<img", "<script", "<b>"} {
		if strings.Contains(body, raw) {
			t.Errorf("page contains raw %q from meal data", raw)
		}
	}
	if !strings.Contains(body, "&lt;img src=x onerror=alert(1)&gt;") {
		t.Error("meal name is not rendered as escaped text")
	}
}

func TestPageSelectedDate(t *testing.T) {
	s := newTestServer(nil, nil, nil)

	rec := get(t, s.Handler(), "/?date=2025-09-06")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"선택한 날짜: 2025-09-06",
		schoolmeal.NoMealAdvisory,
		schoolmeal.NoWeeklyAdvisory,
		"2025-09-02 ~ 2025-09-08", // the weekly window always ends today
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
}

func TestPageUnexpectedError(t *testing.T) {
	s := newTestServer(nil, nil, map[date.Date]error{today: &net.AddrError{Err: "boom", Addr: "neis"}})

	rec := get(t, s.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "boom") {
		t.Errorf("unexpected error is not surfaced on the page:\n%s", rec.Body)
	}
}

func TestPageInvalidDate(t *testing.T) {
	s := newTestServer(nil, nil, nil)

	rec := get(t, s.Handler(), "/?date=yesterday")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Code != ErrCodeInvalidRequest {
		t.Errorf("code = %q, want %q", resp.Code, ErrCodeInvalidRequest)
	}
	if resp.RequestID != rec.Header().Get(HeaderRequestID) {
		t.Errorf("requestId = %q, want the %s header %q", resp.RequestID, HeaderRequestID, rec.Header().Get(HeaderRequestID))
	}
}

func TestPageNotFound(t *testing.T) {
	s := newTestServer(nil, nil, nil)
	if rec := get(t, s.Handler(), "/favicon.ico"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRequestIDIsKept(t *testing.T) {
	s := newTestServer(nil, nil, nil)
	id := "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

	req := httptest.NewRequest(http.MethodGet, "/?date=bad", nil)
	req.Header.Set(HeaderRequestID, id)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := decodeError(t, rec).RequestID; got != id {
		t.Errorf("requestId = %q, want %q", got, id)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 0
	cfg.RateLimitBurst = 0
	s := newTestServer(cfg, nil, nil)

	rec := get(t, s.Handler(), "/")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != ErrCodeRateLimitExceeded || !resp.Retryable {
		t.Errorf("error = %+v, want a retryable %s", resp, ErrCodeRateLimitExceeded)
	}

	// system endpoints are not limited
	if rec := get(t, s.Handler(), "/health"); rec.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(nil, nil, nil)

	rec := get(t, s.Handler(), "/health")
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("cannot decode health: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /health status = %d, want 405", rr.Code)
	}
}

func TestMetrics(t *testing.T) {
	s := newTestServer(nil, nil, nil)
	get(t, s.Handler(), "/?date=2025-09-06")

	rec := get(t, s.Handler(), "/metrics")
	if !strings.Contains(rec.Body.String(), "schoolmeal_http_requests_total") {
		t.Errorf("metrics do not expose schoolmeal_http_requests_total")
	}
}

func TestServeShutsDown(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("cannot listen: %v", err)
	}
	s := newTestServer(nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	resp, err := http.Get("http://" + lis.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil after shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

func TestDefaultConfigPort(t *testing.T) {
	t.Setenv("PORT", "9090")
	if got := DefaultConfig().Port; got != 9090 {
		t.Errorf("Port = %d, want 9090", got)
	}
	t.Setenv("PORT", "nope")
	if got := DefaultConfig().Port; got != DefaultPort {
		t.Errorf("Port = %d, want %d", got, DefaultPort)
	}
}

// brokenWriter fails every body write.
type brokenWriter struct{ *httptest.ResponseRecorder }

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestPageLogsWriteError(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	s := newTestServer(nil, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s.Handler().ServeHTTP(brokenWriter{httptest.NewRecorder()}, req)

	if !strings.Contains(logs.String(), "response write failed: connection reset") {
		t.Errorf("write error is not logged:\n%s", logs.String())
	}
}
