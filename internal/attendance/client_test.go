package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.URL, opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewClient(context.Background(), "localhost"); err == nil {
		t.Fatalf("NewClient(localhost) error = nil, want error")
	}
}

func TestClientListDecodesRecords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != CollectionPath {
			t.Errorf("request = %s %s, want GET %s", r.Method, r.URL.Path, CollectionPath)
		}
		if r.Header.Get(requestIDHeader) == "" {
			t.Errorf("missing %s header", requestIDHeader)
		}
		io.WriteString(w, `[
			{"_id":"a1","name":"Ann","date":"2024-01-05T10:00:00.000Z","timeIn":"10:00","__v":0},
			{"id":42,"name":"Bob","date":"2024-01-06","timeIn":"07:30"},
			{"id":"b2","timeIn":"09:00"}
		]`)
	})

	records, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []Record{
		{ID: "a1", Name: "Ann", Date: "2024-01-05T10:00:00.000Z", TimeIn: "10:00"},
		{ID: "42", Name: "Bob", Date: "2024-01-06", TimeIn: "07:30"},
		{ID: "b2", TimeIn: "09:00"},
	}
	if len(records) != len(want) {
		t.Fatalf("List() len = %d, want %d", len(records), len(want))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Fatalf("records[%d] = %#v, want %#v", i, records[i], want[i])
		}
	}
}

func TestClientListNullBodyIsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "null")
	})

	records, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("List() = %#v, want empty non-nil slice", records)
	}
}

func TestClientListFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"not":"an array"}`)
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, handler)
			_, err := client.List(context.Background())
			if !errors.Is(err, ErrNetwork) {
				t.Fatalf("List() error = %v, want ErrNetwork", err)
			}
			if RequestID(err) == "" {
				t.Fatalf("RequestID(%v) is empty", err)
			}
		})
	}
}

func TestClientListReportsStatusCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.List(context.Background())
	if got := StatusCode(err); got != http.StatusBadGateway {
		t.Fatalf("StatusCode() = %d, want %d", got, http.StatusBadGateway)
	}
}

func TestClientListHonorsCancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "[]")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.List(ctx)
	if !errors.Is(err, ErrNetwork) || !errors.Is(err, context.Canceled) {
		t.Fatalf("List() error = %v, want ErrNetwork wrapping context.Canceled", err)
	}
}

func TestClientCreatePostsDraft(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != CollectionPath {
			t.Errorf("request = %s %s, want POST %s", r.Method, r.URL.Path, CollectionPath)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		want := map[string]string{"name": "Cara", "date": "2024-02-01", "timeIn": "08:00"}
		for k, v := range want {
			if body[k] != v {
				t.Errorf("body[%q] = %q, want %q", k, body[k], v)
			}
		}
		if _, ok := body["id"]; ok {
			t.Errorf("body unexpectedly carries id")
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"99","name":"Cara","date":"2024-02-01","timeIn":"08:00"}`)
	})

	created, err := client.Create(context.Background(), Draft{Name: "Cara", Date: "2024-02-01", TimeIn: "08:00"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := Record{ID: "99", Name: "Cara", Date: "2024-02-01", TimeIn: "08:00"}
	if created != want {
		t.Fatalf("Create() = %#v, want %#v", created, want)
	}
}

func TestClientCreateIncompleteDraftSkipsRequest(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	_, err := client.Create(context.Background(), Draft{Name: "Cara", Date: "2024-02-01"})
	if !errors.Is(err, ErrIncompleteDraft) {
		t.Fatalf("Create() error = %v, want ErrIncompleteDraft", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("server hits = %d, want 0", hits.Load())
	}
}

func TestClientDeleteEscapesID(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.Delete(context.Background(), "a b/7"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if want := CollectionPath + "/a%20b%2F7"; gotPath != want {
		t.Fatalf("path = %q, want %q", gotPath, want)
	}
}

func TestClientDeleteIgnoresBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "deleted, not json")
	})

	if err := client.Delete(context.Background(), "7"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestClientDeleteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	err := client.Delete(context.Background(), "7")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("Delete() error = %v, want ErrNetwork", err)
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("Delete() error = %q, want status 404", err.Error())
	}
}

func TestClientDeleteWithoutID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})

	if err := client.Delete(context.Background(), ""); !errors.Is(err, ErrMissingID) {
		t.Fatalf("Delete(\"\") error = %v, want ErrMissingID", err)
	}
}

func TestClientWithTokenSendsBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer s3cret" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer s3cret")
		}
		io.WriteString(w, "[]")
	}, WithToken("s3cret"))

	if _, err := client.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
}
