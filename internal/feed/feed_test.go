package feed

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memorywall/internal/metrics"
	"memorywall/internal/model"
)

func TestHub_DeliversMatchingRecordsInOrder(t *testing.T) {
	hub := NewHub(nil)
	ctx := context.Background()

	var got []int64
	unsubscribe := hub.Subscribe(CollectionSubmissions, ApprovedForEvent(1), func(rec Record) {
		got = append(got, rec.Submission.ID)
	})
	defer unsubscribe()

	require.NoError(t, hub.Publish(ctx, SubmissionRecord(model.Submission{ID: 10, EventID: 1, Approved: true})))
	require.NoError(t, hub.Publish(ctx, SubmissionRecord(model.Submission{ID: 11, EventID: 2, Approved: true})))
	require.NoError(t, hub.Publish(ctx, SubmissionRecord(model.Submission{ID: 12, EventID: 1, Approved: false})))
	require.NoError(t, hub.Publish(ctx, SubmissionRecord(model.Submission{ID: 13, EventID: 1, Approved: true})))
	require.NoError(t, hub.Publish(ctx, EventRecord(model.Event{ID: 1})))

	assert.Equal(t, []int64{10, 13}, got)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub(nil)
	calls := 0
	unsubscribe := hub.Subscribe(CollectionEvents, ForEvent(5), func(Record) { calls++ })
	assert.Equal(t, 1, len(hub.subs[CollectionEvents]))

	_ = hub.Publish(context.Background(), EventRecord(model.Event{ID: 5}))
	unsubscribe()
	unsubscribe()
	_ = hub.Publish(context.Background(), EventRecord(model.Event{ID: 5}))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, len(hub.subs[CollectionEvents]))
}

func TestHub_UnsubscribeFromCallback(t *testing.T) {
	hub := NewHub(nil)
	calls := 0
	var unsubscribe func()
	unsubscribe = hub.Subscribe(CollectionEvents, nil, func(Record) {
		calls++
		unsubscribe()
	})

	_ = hub.Publish(context.Background(), EventRecord(model.Event{ID: 1}))
	_ = hub.Publish(context.Background(), EventRecord(model.Event{ID: 1}))
	assert.Equal(t, 1, calls)
}

func TestHub_ConcurrentPublish(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	hub := NewHub(m)

	var mu sync.Mutex
	seen := 0
	hub.Subscribe(CollectionSubmissions, nil, func(Record) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = hub.Publish(context.Background(), SubmissionRecord(model.Submission{ID: id, Approved: true}))
		}(int64(i))
	}
	wg.Wait()

	assert.Equal(t, 50, seen)
	assert.Equal(t, 50.0, testutil.ToFloat64(m.FeedDeliveries.WithLabelValues(CollectionSubmissions)))
}

func TestRedisBroker_DispatchIntoHub(t *testing.T) {
	hub := NewHub(nil)
	log := zerolog.Nop()
	broker := NewRedisBroker(nil, "", hub, &log)

	assert.Equal(t, "memorywall:feed:submissions", broker.channel(CollectionSubmissions))

	var got []Record
	hub.Subscribe(CollectionSubmissions, ApprovedForEvent(3), func(rec Record) { got = append(got, rec) })

	payload, err := json.Marshal(SubmissionRecord(model.Submission{ID: 9, EventID: 3, Type: model.SubmissionPhoto, Approved: true}))
	require.NoError(t, err)

	broker.dispatch(context.Background(), string(payload))
	broker.dispatch(context.Background(), "{not json")

	require.Len(t, got, 1)
	assert.Equal(t, int64(9), got[0].Submission.ID)
	assert.Equal(t, model.SubmissionPhoto, got[0].Submission.Type)
}
