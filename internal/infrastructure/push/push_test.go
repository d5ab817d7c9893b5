package push

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/weathersafe/admin-console/internal/api"
	"github.com/weathersafe/admin-console/internal/core/ports"
)

type staticTokens struct{}

func (staticTokens) Token() string         { return "tok-1" }
func (staticTokens) Clear(context.Context) {}

func TestRegistrar_MintsStableToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device_token")
	r := NewRegistrar(path, true, zerolog.Nop())
	ctx := context.Background()

	first := r.DeliveryToken(ctx)
	if first == "" {
		t.Fatalf("expected a minted token")
	}
	if second := r.DeliveryToken(ctx); second != first {
		t.Fatalf("token must be stable across calls: %q vs %q", first, second)
	}

	// A fresh registrar over the same path reads the persisted token.
	if again := NewRegistrar(path, true, zerolog.Nop()).DeliveryToken(ctx); again != first {
		t.Fatalf("token must survive restarts: %q vs %q", first, again)
	}
}

func TestRegistrar_DisabledYieldsNoToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device_token")
	r := NewRegistrar(path, false, zerolog.Nop())
	if token := r.DeliveryToken(context.Background()); token != "" {
		t.Fatalf("disabled push must report no token, got %q", token)
	}
}

func TestReceiver_DeliversUnseenOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"n1","title":"Flood warning","body":"Evacuate low areas"}]`))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, staticTokens{}, zerolog.Nop())
	recv := NewReceiver(client, 10*time.Millisecond, zerolog.Nop())

	var mu sync.Mutex
	var got []ports.PushMessage
	recv.OnMessage(func(m ports.PushMessage) {
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	recv.Start(ctx)

	// Several poll ticks pass; the same feed entry must be delivered once.
	deadline := time.After(500 * time.Millisecond)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n >= 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("no message delivered")
		case <-time.After(10 * time.Millisecond):
		}
	}
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("expected exactly one delivery, got %d", len(got))
	}
	if got[0].Title != "Flood warning" || got[0].Body != "Evacuate low areas" {
		t.Fatalf("unexpected message %+v", got[0])
	}
}

func TestReceiver_PollFailureIsSilent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"down"}`))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL, staticTokens{}, zerolog.Nop())
	recv := NewReceiver(client, 10*time.Millisecond, zerolog.Nop())

	var delivered atomic.Int32
	recv.OnMessage(func(ports.PushMessage) { delivered.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	recv.Start(ctx)
	time.Sleep(60 * time.Millisecond)
	cancel()

	if delivered.Load() != 0 {
		t.Fatalf("poll failures must not reach the handler")
	}
}
