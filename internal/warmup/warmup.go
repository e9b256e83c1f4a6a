// Package warmup answers scheduled keep-warm events before they reach the
// API router, optionally fanning out to more instances of the function.
package warmup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yakoovad/club-api/pkg/logger"
)

const (
	Source = "warmup"

	// overlapDelay keeps this instance busy long enough for the fan-out
	// invocations to land on other instances.
	overlapDelay = 75 * time.Millisecond
)

type Event struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

type Response struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// Detect reports whether the raw invocation payload is a warmup event.
func Detect(raw json.RawMessage) (*Event, bool) {
	var probe struct {
		Source      any `json:"source"`
		Concurrency any `json:"concurrency"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, false
	}

	source, ok := probe.Source.(string)
	if !ok || source != Source {
		return nil, false
	}

	ev := &Event{Source: source}
	if n, ok := probe.Concurrency.(float64); ok && n > 0 {
		ev.Concurrency = int(n)
	}
	return ev, true
}

type Invoker interface {
	Invoke(ctx context.Context, params *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

type Warmer struct {
	client       Invoker
	functionName string
	delay        time.Duration
}

// NewWarmer builds a warmer that fans out to functionName. A nil client or an
// empty name disables the fan-out.
func NewWarmer(client Invoker, functionName string) *Warmer {
	return &Warmer{
		client:       client,
		functionName: functionName,
		delay:        overlapDelay,
	}
}

func (w *Warmer) WithDelay(d time.Duration) *Warmer {
	w.delay = d
	return w
}

// Handle warms this instance and, when asked, invokes the function
// ev.Concurrency more times asynchronously. Child invocations carry a zero
// concurrency so they do not fan out again.
func (w *Warmer) Handle(ctx context.Context, ev *Event) *Response {
	l := logger.FromContext(ctx)
	warmed := 1

	if ev.Concurrency > 0 && w.client != nil && w.functionName != "" {
		if err := w.fanOut(ctx, ev.Concurrency); err != nil {
			l.Warn("warmup fan-out failed", zap.Int("concurrency", ev.Concurrency), zap.Error(err))
		} else {
			warmed += ev.Concurrency
		}
	}

	if w.delay > 0 {
		select {
		case <-time.After(w.delay):
		case <-ctx.Done():
		}
	}

	l.Debug("instance warmed", zap.Int("instances", warmed))
	return &Response{Status: "warm", InstancesWarmed: warmed}
}

func (w *Warmer) fanOut(ctx context.Context, count int) error {
	payload, err := json.Marshal(Event{Source: Source})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			_, err := w.client.Invoke(gctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(w.functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			return err
		})
	}
	return g.Wait()
}
