package license

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/licenses/mit":
			w.Write([]byte(`{"key":"mit","name":"MIT License","spdx_id":"MIT","body":"Copyright (c) [year] [fullname]\n"}`))
		case "/licenses/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	license, err := Get(context.Background(), ts.Client(), ts.URL, "MIT")
	if err != nil {
		t.Fatal(err)
	}
	if license.SpdxID != "MIT" {
		t.Errorf("unexpected license %+v", license)
	}

	if _, err := Get(context.Background(), ts.Client(), ts.URL, "wtfpl-9"); !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
	if _, err := Get(context.Background(), ts.Client(), ts.URL, "broken"); err == nil || errors.Is(err, ErrUnknown) {
		t.Errorf("expected a status error, got %v", err)
	}
}

func TestFill(t *testing.T) {
	l := &License{Body: "Copyright (c) [year] [fullname]"}
	tests := []struct {
		holders  []string
		expected string
	}{
		{[]string{"Alice"}, "Copyright (c) 2023 Alice"},
		{[]string{"Alice", "Bob"}, "Copyright (c) 2023 Alice, Bob"},
		{nil, "Copyright (c) 2023 Contributors"},
	}
	for _, test := range tests {
		if got := l.Fill(2023, test.holders); got != test.expected {
			t.Errorf("expected %q, got %q", test.expected, got)
		}
	}
}
