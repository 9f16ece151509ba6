package node

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

type fakeClient struct {
	mu      sync.Mutex
	replies map[string][]byte
	closed  bool
}

func (f *fakeClient) Run(string) error { return nil }

func (f *fakeClient) Reply(msg *nats.Msg, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replies == nil {
		f.replies = make(map[string][]byte)
	}
	f.replies[msg.Reply] = data
	return nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) reply(subject string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.replies[subject]
	return data, ok
}

func TestNatsWorker_RepliesAndRecovers(t *testing.T) {
	handled := make(chan string, 4)
	w := NewNatsWorker(func(_ context.Context, data []byte) []byte {
		if string(data) == "boom" {
			panic("bad message")
		}
		handled <- string(data)
		return append([]byte("ok:"), data...)
	}, 2)

	cli := &fakeClient{}
	if err := w.Run(cli, "nats://unused"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	w.ReadChan() <- &nats.Msg{Subject: "paipu.replay", Data: []byte("boom")}
	w.ReadChan() <- &nats.Msg{Subject: "paipu.replay", Data: []byte("no-reply")}
	w.ReadChan() <- &nats.Msg{Subject: "paipu.replay", Reply: "_INBOX.1", Data: []byte("game")}

	seen := map[string]bool{}
	for len(seen) < 2 {
		select {
		case s := <-handled:
			seen[s] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, handled %v", seen)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if data, ok := cli.reply("_INBOX.1"); ok {
			if string(data) != "ok:game" {
				t.Fatalf("unexpected reply %q", data)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("reply never sent")
		}
		time.Sleep(10 * time.Millisecond)
	}

	w.Close()
	w.Close()
	if !cli.closed {
		t.Fatalf("client not closed")
	}
}

func TestNatsWorker_CloseHandlesBufferedMessages(t *testing.T) {
	release := make(chan struct{})
	var handled atomic.Int32
	w := NewNatsWorker(func(ctx context.Context, _ []byte) []byte {
		<-release
		if ctx.Err() != nil {
			t.Errorf("handler ctx cancelled before the buffer was drained")
		}
		handled.Add(1)
		return nil
	}, 1)
	if err := w.Run(&fakeClient{}, "nats://unused"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	const total = 5
	for i := 0; i < total; i++ {
		w.ReadChan() <- &nats.Msg{Subject: "paipu.replay", Data: []byte("game")}
	}

	done := make(chan struct{})
	go func() {
		w.Close()
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("Close returned while messages were still buffered")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Close never returned")
	}
	if n := handled.Load(); n != total {
		t.Fatalf("expected %d messages handled before close, got %d", total, n)
	}
}
