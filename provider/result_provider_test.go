package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/ExudusTech/bolao-engine/httpclient"
	"github.com/rs/zerolog"
)

func testProvider(t *testing.T, handler http.HandlerFunc) *ResultProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := httpclient.New(httpclient.Config{
		BaseURL: srv.URL,
		Logger:  zerolog.Nop(),
	})
	return NewResultProvider(client, nil, zerolog.Nop())
}

func TestGetDraw(t *testing.T) {
	provider := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mega-sena/2700" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"numero": 2700,
			"listaDezenas": ["04", "18", "29", "33", "41", "57"],
			"dataApuracao": "15/02/2025"
		}`))
	})

	draw, err := provider.GetDraw(context.Background(), "mega-sena", 2700)
	if err != nil {
		t.Fatalf("GetDraw() error = %v", err)
	}

	if draw.Lottery != "mega-sena" || draw.Contest != 2700 {
		t.Errorf("unexpected draw identity: %+v", draw)
	}
	want := []int{4, 18, 29, 33, 41, 57}
	if !reflect.DeepEqual(draw.Numbers, want) {
		t.Errorf("Numbers = %v, want %v", draw.Numbers, want)
	}
	if draw.DrawDate.IsZero() {
		t.Error("DrawDate was not parsed")
	}
}

func TestGetDrawErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "upstream error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "no numbers",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"numero": 1, "listaDezenas": []}`))
			},
		},
		{
			name: "malformed number",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"numero": 1, "listaDezenas": ["4", "abc"]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := testProvider(t, tt.handler)
			if _, err := provider.GetDraw(context.Background(), "mega-sena", 1); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGetDrawMissingDateIsNotFatal(t *testing.T) {
	provider := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"numero": 5, "listaDezenas": ["1", "2", "3"]}`))
	})

	draw, err := provider.GetDraw(context.Background(), "quina", 5)
	if err != nil {
		t.Fatalf("GetDraw() error = %v", err)
	}
	if !draw.DrawDate.IsZero() {
		t.Errorf("DrawDate = %v, want zero", draw.DrawDate)
	}
}
