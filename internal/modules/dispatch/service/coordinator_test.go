package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	analyticsdto "studia/internal/modules/analytics/dto"
	"studia/internal/modules/dispatch/service"
	apperrors "studia/internal/platform/errors"
	"studia/internal/platform/logging"
)

// gatedAnalyzer blocks each computation until its gate is opened, keyed by
// the input tag, so tests control completion order.
type gatedAnalyzer struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
}

func newGatedAnalyzer() *gatedAnalyzer {
	return &gatedAnalyzer{gates: make(map[string]chan struct{}), started: make(chan string, 16)}
}

func (a *gatedAnalyzer) gate(key string) chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	g, ok := a.gates[key]
	if !ok {
		g = make(chan struct{})
		a.gates[key] = g
	}
	return g
}

func (a *gatedAnalyzer) release(key string) {
	close(a.gate(key))
}

func (a *gatedAnalyzer) Analyze(_ context.Context, input analyticsdto.AnalyzeInput) (analyticsdto.ResultOutput, error) {
	a.started <- input.Tag
	<-a.gate(input.Tag)
	return analyticsdto.ResultOutput{Kind: input.Kind, Status: "ok", Explanation: input.Tag}, nil
}

// instantAnalyzer completes immediately, echoing the tag.
type instantAnalyzer struct{ err error }

func (a instantAnalyzer) Analyze(_ context.Context, input analyticsdto.AnalyzeInput) (analyticsdto.ResultOutput, error) {
	if a.err != nil {
		return analyticsdto.ResultOutput{}, a.err
	}
	return analyticsdto.ResultOutput{Kind: input.Kind, Status: "ok", Explanation: input.Tag}, nil
}

func waitStarted(t *testing.T, a *gatedAnalyzer) string {
	t.Helper()
	select {
	case tag := <-a.started:
		return tag
	case <-time.After(2 * time.Second):
		t.Fatalf("no computation started")
		return ""
	}
}

// pollToken waits until the slot exposes a result with the wanted token.
func pollToken(t *testing.T, c *service.Coordinator, slotID string, want uint64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		env, err := c.Poll(slotID)
		if err == nil && env.Token == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	env, err := c.Poll(slotID)
	t.Fatalf("token %d never delivered, last poll: %+v, %v", want, env, err)
}

func TestCoordinatorDeliversResult(t *testing.T) {
	t.Parallel()
	c := service.NewCoordinator(instantAnalyzer{}, 2, logging.Discard())
	defer c.Close()

	token, err := c.Submit(context.Background(), "overview", analyticsdto.AnalyzeInput{Kind: "overview_correlation", Tag: "a"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	pollToken(t, c, "overview", token)

	env, err := c.Poll("overview")
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if env.SlotID != "overview" || env.Result.Explanation != "a" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestCoordinatorPollBeforeAnyResult(t *testing.T) {
	t.Parallel()
	c := service.NewCoordinator(instantAnalyzer{}, 1, logging.Discard())
	defer c.Close()

	if _, err := c.Poll("empty"); !errors.Is(err, apperrors.ErrNoCurrentResult) {
		t.Fatalf("err = %v, want ErrNoCurrentResult", err)
	}
}

func TestCoordinatorNewestWinsOnReverseCompletion(t *testing.T) {
	t.Parallel()
	analyzer := newGatedAnalyzer()
	c := service.NewCoordinator(analyzer, 2, logging.Discard())
	defer c.Close()

	if _, err := c.Submit(context.Background(), "slot", analyticsdto.AnalyzeInput{Tag: "old"}); err != nil {
		t.Fatalf("submit old: %v", err)
	}
	waitStarted(t, analyzer)
	fresh, err := c.Submit(context.Background(), "slot", analyticsdto.AnalyzeInput{Tag: "new"})
	if err != nil {
		t.Fatalf("submit new: %v", err)
	}
	waitStarted(t, analyzer)

	// newest completes first and is delivered
	analyzer.release("new")
	pollToken(t, c, "slot", fresh)

	// the older computation finishes afterwards and must be discarded
	analyzer.release("old")
	time.Sleep(20 * time.Millisecond)
	env, err := c.Poll("slot")
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if env.Token != fresh || env.Result.Explanation != "new" {
		t.Fatalf("stale result overwrote the fresh one: %+v", env)
	}
}

func TestCoordinatorBusy(t *testing.T) {
	t.Parallel()
	analyzer := newGatedAnalyzer()
	c := service.NewCoordinator(analyzer, 1, logging.Discard())
	defer c.Close()

	if c.Busy("slot") {
		t.Fatalf("unknown slot should not be busy")
	}
	token, err := c.Submit(context.Background(), "slot", analyticsdto.AnalyzeInput{Tag: "x"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	waitStarted(t, analyzer)
	if !c.Busy("slot") {
		t.Fatalf("slot with an in-flight request should be busy")
	}
	analyzer.release("x")
	pollToken(t, c, "slot", token)
	if c.Busy("slot") {
		t.Fatalf("slot should settle after delivery")
	}
}

func TestCoordinatorSlotsIndependent(t *testing.T) {
	t.Parallel()
	c := service.NewCoordinator(instantAnalyzer{}, 2, logging.Discard())
	defer c.Close()

	tokenA, err := c.Submit(context.Background(), "a", analyticsdto.AnalyzeInput{Tag: "left"})
	if err != nil {
		t.Fatalf("submit a: %v", err)
	}
	tokenB, err := c.Submit(context.Background(), "b", analyticsdto.AnalyzeInput{Tag: "right"})
	if err != nil {
		t.Fatalf("submit b: %v", err)
	}
	pollToken(t, c, "a", tokenA)
	pollToken(t, c, "b", tokenB)

	envA, _ := c.Poll("a")
	envB, _ := c.Poll("b")
	if envA.Result.Explanation != "left" || envB.Result.Explanation != "right" {
		t.Fatalf("slots crossed results: %+v / %+v", envA, envB)
	}
}

func TestCoordinatorAnalyzerErrorBecomesErrorResult(t *testing.T) {
	t.Parallel()
	c := service.NewCoordinator(instantAnalyzer{err: errors.New("wiring fault")}, 1, logging.Discard())
	defer c.Close()

	token, err := c.Submit(context.Background(), "slot", analyticsdto.AnalyzeInput{Kind: "overview_correlation"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	pollToken(t, c, "slot", token)
	env, _ := c.Poll("slot")
	if env.Result.Status != "error" || env.Result.Reason == "" {
		t.Fatalf("analyzer failure should surface as an error result, got %+v", env.Result)
	}
}

func TestCoordinatorSubmitAfterClose(t *testing.T) {
	t.Parallel()
	c := service.NewCoordinator(instantAnalyzer{}, 1, logging.Discard())
	c.Close()

	if _, err := c.Submit(context.Background(), "slot", analyticsdto.AnalyzeInput{}); !errors.Is(err, apperrors.ErrCoordinatorDown) {
		t.Fatalf("err = %v, want ErrCoordinatorDown", err)
	}
}

func TestCoordinatorCloseIdempotent(t *testing.T) {
	t.Parallel()
	c := service.NewCoordinator(instantAnalyzer{}, 2, logging.Discard())
	c.Close()
	c.Close()
}

func TestCoordinatorManySubmissionsConverge(t *testing.T) {
	t.Parallel()
	c := service.NewCoordinator(instantAnalyzer{}, 2, logging.Discard())
	defer c.Close()

	var last uint64
	for i := 0; i < 10; i++ {
		token, err := c.Submit(context.Background(), "slot", analyticsdto.AnalyzeInput{Tag: "burst"})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		last = token
	}
	pollToken(t, c, "slot", last)
}