package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/preston-bernstein/ecf-team-win/internal/metrics"
	"github.com/preston-bernstein/ecf-team-win/internal/ratings"
	"github.com/preston-bernstein/ecf-team-win/internal/submit"
	"github.com/preston-bernstein/ecf-team-win/internal/teamwin"
	"github.com/preston-bernstein/ecf-team-win/internal/testutil"
)

func newTestHandler(calc submit.Calculator) *Handler {
	logger, _ := testutil.NewBufferLogger()
	return NewHandler(submit.NewController(calc, logger, nil), logger)
}

func postForm(t *testing.T, h http.HandlerFunc, form url.Values) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/boards", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := testutil.ServeRequest(h, req)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rr.Body.String()))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return rr, doc
}

func inputValues(doc *goquery.Document, selector string) []string {
	return doc.Find(selector).Map(func(_ int, s *goquery.Selection) string {
		return s.AttrOr("value", "")
	})
}

func TestHealth(t *testing.T) {
	h := newTestHandler(&testutil.StubCalculator{})
	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var body healthResponse
	testutil.DecodeJSON(t, rr, &body)
	if body.Status != "ok" || body.Upstream.Calls != 0 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestHealthReportsUpstreamCounts(t *testing.T) {
	rec := metrics.NewRecorder()
	rec.RecordUpstreamAttempt(teamwin.UpstreamName, http.StatusOK, time.Millisecond, nil)
	rec.RecordUpstreamAttempt(teamwin.UpstreamName, 0, time.Millisecond, errors.New("refused"))
	h := NewHandler(nil, nil, WithRecorder(rec))

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var body healthResponse
	testutil.DecodeJSON(t, rr, &body)
	if body.Upstream.Calls != 2 || body.Upstream.Errors != 1 {
		t.Fatalf("unexpected upstream counts %+v", body.Upstream)
	}
}

func TestHealthDuringShutdown(t *testing.T) {
	h := newTestHandler(&testutil.StubCalculator{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestReady(t *testing.T) {
	rr := testutil.Serve(http.HandlerFunc(newTestHandler(&testutil.StubCalculator{}).Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(http.HandlerFunc(NewHandler(nil, nil).Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestFormRendersOneBoard(t *testing.T) {
	h := newTestHandler(&testutil.StubCalculator{})
	rr := testutil.Serve(http.HandlerFunc(h.Form), http.MethodGet, "/", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html, got %s", ct)
	}

	doc, err := goquery.NewDocumentFromReader(rr.Body)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	if n := doc.Find("#rows .row").Length(); n != 1 {
		t.Fatalf("expected one board, got %d", n)
	}
}

func TestBoardsAddKeepsValuesAndCapsAtTwelve(t *testing.T) {
	h := newTestHandler(&testutil.StubCalculator{})

	_, doc := postForm(t, h.Boards, url.Values{
		"team1":  {"1700"},
		"team2":  {"1800"},
		"action": {"add"},
	})
	if got := inputValues(doc, `input[name="team1"]`); len(got) != 2 || got[0] != "1700" || got[1] != "" {
		t.Fatalf("expected added empty board after existing one, got %v", got)
	}
	if label := strings.TrimSpace(doc.Find(".board-label").Last().Text()); label != "Board 2:" {
		t.Fatalf("unexpected label %q", label)
	}

	full := url.Values{"action": {"add"}}
	for i := 0; i < 12; i++ {
		full.Add("team1", "")
		full.Add("team2", "")
	}
	rr, doc := postForm(t, h.Boards, full)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if n := doc.Find("#rows .row").Length(); n != 12 {
		t.Fatalf("expected 12 boards, got %d", n)
	}
	if _, disabled := doc.Find("#addBoardBtn").Attr("disabled"); !disabled {
		t.Fatal("expected add button disabled at 12 boards")
	}
}

func TestBoardsRemoveAsksForConfirmation(t *testing.T) {
	h := newTestHandler(&testutil.StubCalculator{})

	_, doc := postForm(t, h.Boards, url.Values{
		"team1":  {"1700", "1800"},
		"team2":  {"", "1900"},
		"remove": {"1"},
	})
	if doc.Find("#confirm-form").Length() != 1 {
		t.Fatal("expected confirmation page")
	}
	if got := doc.Find(`input[name="board"]`).AttrOr("value", ""); got != "1" {
		t.Fatalf("expected board 1 pending removal, got %s", got)
	}

	_, doc = postForm(t, h.Boards, url.Values{
		"team1":  {"1700", "1800"},
		"team2":  {"", "1900"},
		"board":  {"1"},
		"action": {"confirm-remove"},
	})
	if got := inputValues(doc, `#rows input[name="team1"]`); len(got) != 1 || got[0] != "1800" {
		t.Fatalf("expected board 2 to become board 1, got %v", got)
	}
	if label := strings.TrimSpace(doc.Find(".board-label").First().Text()); label != "Board 1:" {
		t.Fatalf("expected relabelled board, got %q", label)
	}
}

func TestBoardsRemoveCancel(t *testing.T) {
	h := newTestHandler(&testutil.StubCalculator{})
	_, doc := postForm(t, h.Boards, url.Values{
		"team1":  {"1700", "1800"},
		"team2":  {"", ""},
		"board":  {"1"},
		"action": {"cancel"},
	})
	if n := doc.Find("#rows .row").Length(); n != 2 {
		t.Fatalf("expected both boards kept, got %d", n)
	}
}

func TestBoardsRemoveBlockedAtMinimum(t *testing.T) {
	h := newTestHandler(&testutil.StubCalculator{})
	_, doc := postForm(t, h.Boards, url.Values{"team1": {"1700"}, "team2": {""}, "remove": {"1"}})
	if doc.Find("#confirm-form").Length() != 0 {
		t.Fatal("expected no confirmation for the last board")
	}
	if n := doc.Find("#rows .row").Length(); n != 1 {
		t.Fatalf("expected board kept, got %d", n)
	}

	_, doc = postForm(t, h.Boards, url.Values{"team1": {"1700"}, "team2": {""}, "board": {"1"}, "action": {"confirm-remove"}})
	if n := doc.Find("#rows .row").Length(); n != 1 {
		t.Fatalf("expected board kept after forced confirm, got %d", n)
	}
}

func TestBoardsRejectsBadInput(t *testing.T) {
	h := newTestHandler(&testutil.StubCalculator{})
	cases := []url.Values{
		{"team1": {"1700"}, "remove": {"x"}},
		{"team1": {"1700"}, "remove": {"5"}},
		{"team1": {"1700", ""}, "board": {"x"}, "action": {"confirm-remove"}},
		{"team1": {"1700", ""}, "board": {"9"}, "action": {"confirm-remove"}},
		{"team1": {"1700"}, "action": {"explode"}},
	}
	for _, form := range cases {
		rr, _ := postForm(t, h.Boards, form)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	}
}

func TestBoardsRejectsMoreThanTwelveRows(t *testing.T) {
	calc := &testutil.StubCalculator{Result: testutil.SampleMatchResult()}
	h := newTestHandler(calc)

	form := url.Values{"action": {"calculate"}}
	for i := 0; i < ratings.MaxBoards+1; i++ {
		form.Add("team1", "1500")
		form.Add("team2", "")
	}
	rr, _ := postForm(t, h.Boards, form)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	if calc.CallCount() != 0 {
		t.Fatal("expected no upstream call for an oversized sheet")
	}
}

func TestBoardsCalculateTimesOut(t *testing.T) {
	calc := &testutil.BlockingCalculator{Release: make(chan struct{})}
	logger, _ := testutil.NewBufferLogger()
	h := NewHandler(submit.NewController(calc, logger, nil), logger, WithSubmitTimeout(20*time.Millisecond))

	rr, doc := postForm(t, h.Boards, url.Values{"team1": {"1700"}, "team2": {""}, "action": {"calculate"}})
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := strings.TrimSpace(doc.Find("#errorBox").Text()); got != teamwin.NetworkErrorMessage {
		t.Fatalf("expected network error after timeout, got %q", got)
	}
}

func TestBoardsCalculateValidationError(t *testing.T) {
	calc := &testutil.StubCalculator{}
	h := newTestHandler(calc)

	_, doc := postForm(t, h.Boards, url.Values{"team1": {"400"}, "team2": {""}, "action": {"calculate"}})
	if got := strings.TrimSpace(doc.Find("#errorBox").Text()); got != "Board 1, Team 1: Ratings must be between 500 and 3000." {
		t.Fatalf("unexpected error box %q", got)
	}
	if got := strings.TrimSpace(doc.Find("#output").Text()); got != submit.StatusFixInput {
		t.Fatalf("unexpected status %q", got)
	}
	if calc.CallCount() != 0 {
		t.Fatal("expected no upstream call on validation failure")
	}
}

func TestBoardsCalculateSuccess(t *testing.T) {
	calc := &testutil.StubCalculator{Result: testutil.SampleMatchResult()}
	h := newTestHandler(calc)

	rr, doc := postForm(t, h.Boards, url.Values{"team1": {"1700"}, "team2": {""}})
	testutil.AssertStatus(t, rr, http.StatusOK)
	if doc.Find("#errorBox").Length() != 0 {
		t.Fatal("expected no error box")
	}

	values := doc.Find(".ecf-out-value").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	want := []string{"1", "60.00%", "40.00%", "60.00%"}
	if strings.Join(values, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, values)
	}
	if label := doc.Find(".ecf-out-label").Last().Text(); label != "Board 1 (1700 vs missing)" {
		t.Fatalf("unexpected board label %q", label)
	}
	if calc.Teams[0].Team1[0] != 1700 || len(calc.Teams[0].Team2) != 0 {
		t.Fatalf("unexpected teams sent %+v", calc.Teams[0])
	}
}

func TestBoardsCalculateUpstreamFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "server_message", err: &teamwin.RequestError{StatusCode: 400, Message: "bad ratings"}, want: "bad ratings"},
		{name: "generic", err: &teamwin.RequestError{StatusCode: 503}, want: "Request failed (503)"},
		{name: "network", err: &teamwin.NetworkError{}, want: "Network error. Is your API running?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&testutil.StubCalculator{Err: tt.err})
			_, doc := postForm(t, h.Boards, url.Values{"team1": {"1700"}, "team2": {"1800"}, "action": {"calculate"}})
			if got := strings.TrimSpace(doc.Find("#errorBox").Text()); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			if got := strings.TrimSpace(doc.Find("#output").Text()); got != submit.StatusRequestFailed {
				t.Fatalf("unexpected status %q", got)
			}
		})
	}
}
