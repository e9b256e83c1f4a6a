package warmup

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInvoker struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (r *recordingInvoker) Invoke(_ context.Context, in *lambdasdk.InvokeInput, _ ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if in.InvocationType != types.InvocationTypeEvent {
		return nil, errors.New("expected async invocation")
	}
	r.payloads = append(r.payloads, in.Payload)
	return &lambdasdk.InvokeOutput{}, r.err
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  *Event
		found bool
	}{
		{name: "warmup", raw: `{"source":"warmup"}`, want: &Event{Source: Source}, found: true},
		{name: "with concurrency", raw: `{"source":"warmup","concurrency":3}`, want: &Event{Source: Source, Concurrency: 3}, found: true},
		{name: "negative concurrency", raw: `{"source":"warmup","concurrency":-2}`, want: &Event{Source: Source}, found: true},
		{name: "other source", raw: `{"source":"aws.events"}`},
		{name: "api gateway event", raw: `{"httpMethod":"GET","path":"/clubs"}`},
		{name: "not json", raw: `warmup`},
		{name: "array", raw: `[1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := Detect(json.RawMessage(tt.raw))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestWarmer_Handle(t *testing.T) {
	inv := &recordingInvoker{}
	w := NewWarmer(inv, "clubs-api").WithDelay(0)

	res := w.Handle(context.Background(), &Event{Source: Source, Concurrency: 3})
	assert.Equal(t, &Response{Status: "warm", InstancesWarmed: 4}, res)

	require.Len(t, inv.payloads, 3)
	for _, p := range inv.payloads {
		var ev Event
		require.NoError(t, json.Unmarshal(p, &ev))
		assert.Equal(t, Event{Source: Source}, ev)
	}
}

func TestWarmer_HandleWithoutFanOut(t *testing.T) {
	inv := &recordingInvoker{}

	res := NewWarmer(inv, "clubs-api").WithDelay(0).Handle(context.Background(), &Event{Source: Source})
	assert.Equal(t, 1, res.InstancesWarmed)
	assert.Empty(t, inv.payloads)

	res = NewWarmer(nil, "").WithDelay(0).Handle(context.Background(), &Event{Source: Source, Concurrency: 5})
	assert.Equal(t, 1, res.InstancesWarmed)
}

func TestWarmer_HandleInvokeFailure(t *testing.T) {
	inv := &recordingInvoker{err: errors.New("throttled")}

	res := NewWarmer(inv, "clubs-api").WithDelay(0).Handle(context.Background(), &Event{Source: Source, Concurrency: 2})
	assert.Equal(t, 1, res.InstancesWarmed)
}
