package availabilities

import (
	"context"
	"errors"
	"testing"
	"time"

	"medirdv-service/internal/app/config"
	"medirdv-service/internal/pkg/constvars"
	"medirdv-service/internal/pkg/dto/responses"
	"medirdv-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSnapshotWorker_RunOnce(t *testing.T) {
	cfg := &config.InternalConfig{App: config.App{SnapshotTimeoutInSeconds: 5}}

	t.Run("Publishes With Request ID", func(t *testing.T) {
		usecase := new(MockAvailabilityUsecase)
		usecase.On("PublishSnapshot", mock.MatchedBy(func(ctx context.Context) bool {
			requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			_, hasDeadline := ctx.Deadline()
			return requestID != "" && hasDeadline
		})).Return(&responses.SnapshotPublished{ObjectName: "a.json", Count: 2}, nil)

		NewSnapshotWorker(zap.NewNop(), cfg, usecase).RunOnce(context.Background())

		usecase.AssertExpectations(t)
	})

	t.Run("Lost Election And Failures Do Not Panic", func(t *testing.T) {
		usecase := new(MockAvailabilityUsecase)
		usecase.On("PublishSnapshot", mock.Anything).Return(nil, exceptions.ErrSnapshotAlreadyRunning(nil)).Once()
		usecase.On("PublishSnapshot", mock.Anything).Return(nil, errors.New("minio down")).Once()

		worker := NewSnapshotWorker(zap.NewNop(), cfg, usecase)
		assert.NotPanics(t, func() {
			worker.RunOnce(context.Background())
			worker.RunOnce(context.Background())
		})
		usecase.AssertNumberOfCalls(t, "PublishSnapshot", 2)
	})
}

func TestSnapshotWorker_StartStop(t *testing.T) {
	cfg := &config.InternalConfig{App: config.App{SnapshotCronSpec: "not a cron spec"}}
	worker := NewSnapshotWorker(zap.NewNop(), cfg, new(MockAvailabilityUsecase))

	worker.Start(context.Background())
	assert.Len(t, worker.cron.Entries(), 1)

	done := make(chan struct{})
	go func() {
		worker.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestSnapshotWorker_StopCancelsRunningSnapshot(t *testing.T) {
	cfg := &config.InternalConfig{App: config.App{SnapshotCronSpec: "@every 1s", SnapshotTimeoutInSeconds: 60}}

	started := make(chan struct{})
	finished := make(chan error, 1)
	usecase := new(MockAvailabilityUsecase)
	usecase.On("PublishSnapshot", mock.Anything).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		close(started)
		<-ctx.Done()
		finished <- ctx.Err()
	}).Return(nil, context.Canceled).Once()

	worker := NewSnapshotWorker(zap.NewNop(), cfg, usecase)
	worker.Start(context.Background())

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		worker.Stop()
		t.Fatal("snapshot did not start")
	}

	done := make(chan struct{})
	go func() {
		worker.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.ErrorIs(t, <-finished, context.Canceled)
}
