package hf

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"textgraph/pkg/ner"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(NewClientParams{
		BaseURL: srv.URL,
		Model:   "test-ner-model",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}

func TestRecognize_DecodesSpans(t *testing.T) {
	t.Parallel()

	want := []ner.Span{
		{Label: "PER", Word: "Alice", Score: 0.99, Start: 0, End: 5},
		{Label: "LOC", Word: "Paris", Score: 0.97, Start: 17, End: 22},
	}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/test-ner-model" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req inferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Parameters.AggregationStrategy != "simple" {
			t.Errorf("expected aggregation_strategy=simple, got %q", req.Parameters.AggregationStrategy)
		}
		if req.Inputs == "warmup" {
			json.NewEncoder(w).Encode([]ner.Span{})
			return
		}
		json.NewEncoder(w).Encode(want)
	})

	got, err := client.Recognize(context.Background(), "Alice met Bob in Paris.")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestRecognize_EmptyInputSkipsModel(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode([]ner.Span{})
	})

	for _, text := range []string{"", "   ", "\n\t  \n"} {
		got, err := client.Recognize(context.Background(), text)
		if err != nil {
			t.Fatalf("Recognize(%q): %v", text, err)
		}
		if len(got) != 0 {
			t.Fatalf("Recognize(%q): expected empty result, got %+v", text, got)
		}
	}
	if n := calls.Load(); n != 0 {
		t.Fatalf("expected 0 model calls for empty input, got %d", n)
	}
}

func TestRecognize_WarmsUpOnce(t *testing.T) {
	t.Parallel()

	var warmups atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req inferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Options.WaitForModel {
			warmups.Add(1)
		}
		json.NewEncoder(w).Encode([]ner.Span{})
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Recognize(context.Background(), "some text"); err != nil {
				t.Errorf("Recognize: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := warmups.Load(); n != 1 {
		t.Fatalf("expected exactly 1 warmup request, got %d", n)
	}
}

func TestRecognize_ServerErrorSurfaces(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req inferRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Options.WaitForModel {
			json.NewEncoder(w).Encode([]ner.Span{})
			return
		}
		http.Error(w, "model exploded", http.StatusInternalServerError)
	})

	if _, err := client.Recognize(context.Background(), "some text"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNewClient_RequiresModel(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(NewClientParams{BaseURL: "http://localhost"}); err == nil {
		t.Fatal("expected error for empty model, got nil")
	}
}
