package testutil

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/ecf-team-win/internal/ratings"
	"github.com/preston-bernstein/ecf-team-win/internal/results"
)

func TestFixturesHelper(t *testing.T) {
	res := SampleMatchResult()
	if res.Boards != 1 || len(res.PerBoard) != 1 || res.PerBoard[0].Team2Rating != nil {
		t.Fatalf("unexpected fixture %+v", res)
	}
	if !strings.Contains(SampleMatchResultJSON, `"team2Rating": null`) {
		t.Fatalf("expected null rating in json fixture")
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}
}

func TestBufferLogger(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected log output, got %q", buf.String())
	}
}

func TestStubCalculatorRecordsCalls(t *testing.T) {
	calc := &StubCalculator{Err: errors.New("boom")}
	_, err := calc.TeamWin(context.Background(), ratings.Teams{Team1: []int{1500}})
	if err == nil || calc.CallCount() != 1 || calc.Teams[0].Team1[0] != 1500 {
		t.Fatalf("unexpected stub state %+v err=%v", calc, err)
	}
}

func TestBlockingCalculator(t *testing.T) {
	calc := &BlockingCalculator{
		Result:  results.MatchResult{Boards: 2},
		Started: make(chan struct{}, 1),
		Release: make(chan struct{}),
	}

	done := make(chan results.MatchResult, 1)
	go func() {
		res, _ := calc.TeamWin(context.Background(), ratings.Teams{})
		done <- res
	}()

	<-calc.Started
	close(calc.Release)
	select {
	case res := <-done:
		if res.Boards != 2 {
			t.Fatalf("unexpected result %+v", res)
		}
	case <-time.After(time.Second):
		t.Fatal("calculator did not release")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	blocked := &BlockingCalculator{Release: make(chan struct{})}
	if _, err := blocked.TeamWin(ctx, ratings.Teams{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestServerStubs(t *testing.T) {
	stub := &StubHTTPServer{AddrVal: ":1"}
	if err := stub.ListenAndServe(); err != nil || stub.ListenCalls != 1 {
		t.Fatalf("unexpected listen result")
	}
	if err := stub.Shutdown(context.Background()); err != nil || stub.ShutdownCalls != 1 {
		t.Fatalf("unexpected shutdown result")
	}

	errSrv := &ErrHTTPServer{}
	if err := errSrv.ListenAndServe(); err == nil {
		t.Fatalf("expected listen failure")
	}

	blocking := &BlockingHTTPServer{Unblock: make(chan struct{})}
	close(blocking.Unblock)
	if err := blocking.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}

	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown(context.Background()) != nil {
		t.Fatalf("expected recorder and no-op shutdown")
	}
}
