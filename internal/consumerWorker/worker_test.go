package consumerWorker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"memorywall/internal/approval"
	"memorywall/internal/dto"
	"memorywall/internal/model"
	"memorywall/internal/repo/mocks"
)

type fakeConsumer struct {
	handler func([]byte) error
	ready   chan struct{}
	err     error

	stopped bool
	onStop  func() error
}

func (f *fakeConsumer) Consume(handler func([]byte) error) error {
	f.handler = handler
	close(f.ready)
	return f.err
}

func (f *fakeConsumer) StopConsuming() error {
	f.stopped = true
	if f.onStop != nil {
		return f.onStop()
	}
	return nil
}

func newReader(t *testing.T) (*Reader, *mocks.MockRepository, *fakeConsumer) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRepository(ctrl)
	log := zerolog.Nop()
	consumer := &fakeConsumer{ready: make(chan struct{})}
	return NewReader(consumer, approval.NewApprover(store, nil, &log, nil)), store, consumer
}

func message(t *testing.T, id int64) []byte {
	body, err := json.Marshal(dto.AutoApprovalMessage{SubmissionID: id, EventID: 1, ApproveAt: time.Now()})
	require.NoError(t, err)
	return body
}

func TestReader_ApprovesOnDelivery(t *testing.T) {
	reader, store, consumer := newReader(t)
	store.EXPECT().ApproveIfPending(gomock.Any(), int64(7)).Return(&model.Submission{ID: 7, Approved: true}, nil)

	reader.Start(context.Background())
	defer reader.Stop()

	select {
	case <-consumer.ready:
	case <-time.After(time.Second):
		t.Fatal("reader never started consuming")
	}
	assert.NoError(t, consumer.handler(message(t, 7)))
}

func TestReader_HandleStaleReference(t *testing.T) {
	reader, store, _ := newReader(t)
	store.EXPECT().ApproveIfPending(gomock.Any(), int64(8)).Return(nil, nil)

	assert.NoError(t, reader.handle(context.Background(), message(t, 8)))
}

func TestReader_HandleFailures(t *testing.T) {
	reader, store, _ := newReader(t)
	store.EXPECT().ApproveIfPending(gomock.Any(), int64(9)).Return(nil, errors.New("timeout")).Times(1)

	assert.Error(t, reader.handle(context.Background(), message(t, 9)))
	assert.Error(t, reader.handle(context.Background(), []byte("not json")))
}

func TestReader_StopWithoutConsumer(t *testing.T) {
	reader, _, consumer := newReader(t)
	consumer.err = errors.New("channel closed")

	reader.Start(context.Background())
	done := make(chan struct{})
	go func() {
		reader.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reader did not stop")
	}
}

func TestReader_StopDrainsBufferedDeliveries(t *testing.T) {
	reader, store, consumer := newReader(t)
	store.EXPECT().ApproveIfPending(gomock.Any(), int64(21)).
		DoAndReturn(func(ctx context.Context, id int64) (*model.Submission, error) {
			assert.NoError(t, ctx.Err(), "handler context cancelled before the consumer stopped")
			return &model.Submission{ID: id, Approved: true}, nil
		})

	var drainErr error
	consumer.onStop = func() error {
		drainErr = consumer.handler(message(t, 21))
		return nil
	}

	reader.Start(context.Background())
	select {
	case <-consumer.ready:
	case <-time.After(time.Second):
		t.Fatal("reader never started consuming")
	}
	reader.Stop()

	assert.True(t, consumer.stopped)
	assert.NoError(t, drainErr)
}

func TestLateness(t *testing.T) {
	now := time.Date(2026, 6, 20, 12, 0, 10, 0, time.UTC)

	assert.Equal(t, 10*time.Second, lateness(now.Add(-10*time.Second), now))
	assert.Zero(t, lateness(now.Add(time.Second), now), "early arrival")
	assert.Zero(t, lateness(time.Time{}, now), "message without a schedule time")
}
