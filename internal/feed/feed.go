package feed

import (
	"context"
	"sync"

	"memorywall/internal/metrics"
	"memorywall/internal/model"
)

const (
	CollectionSubmissions = "submissions"
	CollectionEvents      = "events"
)

// Record is one notification. Submission records carry a newly approved
// submission, event records carry the updated event.
type Record struct {
	Collection string            `json:"collection"`
	EventID    int64             `json:"event_id"`
	Submission *model.Submission `json:"submission,omitempty"`
	Event      *model.Event      `json:"event,omitempty"`
}

type Filter func(Record) bool

type Publisher interface {
	Publish(ctx context.Context, rec Record) error
}

type Subscriber interface {
	Subscribe(collection string, filter Filter, onInsert func(Record)) (unsubscribe func())
}

func SubmissionRecord(sub model.Submission) Record {
	return Record{Collection: CollectionSubmissions, EventID: sub.EventID, Submission: &sub}
}

func EventRecord(e model.Event) Record {
	return Record{Collection: CollectionEvents, EventID: e.ID, Event: &e}
}

// ApprovedForEvent matches approved submissions of one event.
func ApprovedForEvent(eventID int64) Filter {
	return func(rec Record) bool {
		return rec.EventID == eventID && rec.Submission != nil && rec.Submission.Approved
	}
}

func ForEvent(eventID int64) Filter {
	return func(rec Record) bool {
		return rec.EventID == eventID
	}
}

type subscription struct {
	filter   Filter
	onInsert func(Record)
}

// Hub is the in-process notification feed. Delivery is synchronous and
// serialised, so every subscriber sees records in publish order. Callbacks
// must not publish back into the hub.
type Hub struct {
	mu      sync.RWMutex
	deliver sync.Mutex
	nextID  uint64
	subs    map[string]map[uint64]subscription
	metrics *metrics.Metrics
}

func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		subs:    make(map[string]map[uint64]subscription),
		metrics: m,
	}
}

func (h *Hub) Subscribe(collection string, filter Filter, onInsert func(Record)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[uint64]subscription)
	}
	h.subs[collection][id] = subscription{filter: filter, onInsert: onInsert}

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[collection], id)
		})
	}
}

func (h *Hub) Publish(_ context.Context, rec Record) error {
	h.deliver.Lock()
	defer h.deliver.Unlock()

	h.mu.RLock()
	targets := make([]subscription, 0, len(h.subs[rec.Collection]))
	for _, s := range h.subs[rec.Collection] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if s.filter != nil && !s.filter(rec) {
			continue
		}
		s.onInsert(rec)
		h.metrics.IncFeedDelivery(rec.Collection)
	}
	return nil
}
