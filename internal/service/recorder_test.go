package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"icecream_controller/internal/models"
	"icecream_controller/internal/mqtt"
)

func TestEventRecorder_DeliversToRepoAndBroker(t *testing.T) {
	repo := &fakeEventRepo{appendCh: make(chan models.CompressorEvent, 1)}
	pub := mqtt.NewFakePublisher()
	rec := NewEventRecorder(repo, pub, nil, nil, 4)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rec.Run(ctx)
		close(done)
	}()

	rec.Record(models.CompressorEvent{EventID: "1", Type: models.EventStart})
	select {
	case e := <-repo.appendCh:
		if e.EventID != "1" {
			t.Fatalf("appended %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}

	cancel()
	<-done
	if got := pub.Events(); len(got) != 1 || got[0].Type != models.EventStart {
		t.Fatalf("published %+v", got)
	}
}

func TestEventRecorder_FlushesOnShutdown(t *testing.T) {
	repo := &fakeEventRepo{}
	rec := NewEventRecorder(repo, nil, nil, nil, 8)

	for _, typ := range []string{models.EventStart, models.EventAutoStop, models.EventStop} {
		rec.Record(models.CompressorEvent{Type: typ})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec.Run(ctx)

	if len(repo.appended) != 3 {
		t.Fatalf("appended %d events", len(repo.appended))
	}
}

func TestEventRecorder_DropsWhenFull(t *testing.T) {
	repo := &fakeEventRepo{}
	rec := NewEventRecorder(repo, nil, nil, nil, 2)

	for i := 0; i < 5; i++ {
		rec.Record(models.CompressorEvent{Type: models.EventStart})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec.Run(ctx)

	if len(repo.appended) != 2 {
		t.Fatalf("appended %d events, want 2", len(repo.appended))
	}
}

func TestEventRecorder_FailuresDoNotStopDelivery(t *testing.T) {
	repo := &fakeEventRepo{appendErr: errors.New("disk full")}
	pub := mqtt.NewFakePublisher()
	rec := NewEventRecorder(repo, pub, nil, nil, 4)

	rec.Record(models.CompressorEvent{Type: models.EventStop})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec.Run(ctx)

	if len(pub.Events()) != 1 {
		t.Fatal("broker delivery should not depend on the database")
	}
}
