package helpdesk_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Asha9112/ticket-dashboard/internal/adapters/secondary/helpdesk"
	"github.com/Asha9112/ticket-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.Handler) *helpdesk.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return helpdesk.NewClient(helpdesk.Config{
		BaseURL:           server.URL,
		AuthToken:         "test-token",
		RequestsPerMinute: 6000, // effectively unthrottled for tests
		Burst:             100,
		MaxRetries:        2,
		PageSize:          2,
		CacheTTL:          time.Minute,
	}, discardLogger())
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_ActiveTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("pages until a short page and decodes leniently", func(t *testing.T) {
		var requests atomic.Int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/tickets", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			switch r.URL.Query().Get("from") {
			case "0":
				writeJSON(t, w, map[string]any{"data": []map[string]any{
					{"id": "1", "ticketNumber": "101", "status": "Open", "createdTime": "2024-06-01T10:00:00Z"},
					{"id": "2", "ticketNumber": "102", "status": "Open", "createdTime": "not a date"},
				}})
			default:
				writeJSON(t, w, map[string]any{"data": []map[string]any{
					{"id": "3", "ticketNumber": "103", "status": "Closed"},
				}})
			}
			requests.Add(1)
		}))

		tickets, err := client.ActiveTickets(ctx)

		require.NoError(t, err)
		require.Len(t, tickets, 3)
		assert.Equal(t, int32(2), requests.Load())

		assert.NotNil(t, tickets[0].CreatedTime)
		assert.Nil(t, tickets[1].CreatedTime, "malformed date decodes to unknown, not an error")
		assert.Equal(t, domain.ProvenanceActiveClosed, tickets[0].Provenance)
	})

	t.Run("404 past the last page ends paging cleanly", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("from") != "0" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			writeJSON(t, w, map[string]any{"data": []map[string]any{
				{"id": "1", "ticketNumber": "101", "status": "Open"},
				{"id": "2", "ticketNumber": "102", "status": "Open"},
			}})
		}))

		tickets, err := client.ActiveTickets(ctx)

		require.NoError(t, err)
		assert.Len(t, tickets, 2)
	})

	t.Run("second call within TTL serves from cache", func(t *testing.T) {
		var requests atomic.Int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			writeJSON(t, w, map[string]any{"data": []map[string]any{{"id": "1", "ticketNumber": "101"}}})
		}))

		_, err := client.ActiveTickets(ctx)
		require.NoError(t, err)
		_, err = client.ActiveTickets(ctx)
		require.NoError(t, err)

		assert.Equal(t, int32(1), requests.Load())
	})

	t.Run("retries on 429 then succeeds", func(t *testing.T) {
		var requests atomic.Int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requests.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			writeJSON(t, w, map[string]any{"data": []map[string]any{{"id": "1", "ticketNumber": "101"}}})
		}))

		tickets, err := client.ActiveTickets(ctx)

		require.NoError(t, err)
		assert.Len(t, tickets, 1)
		assert.GreaterOrEqual(t, requests.Load(), int32(2))
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := client.ActiveTickets(ctx)
		assert.Error(t, err)
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var requests atomic.Int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := client.ActiveTickets(ctx)

		require.Error(t, err)
		assert.Equal(t, int32(1), requests.Load())
	})
}

func TestClient_ArchivedTickets(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tickets/archived", r.URL.Path)
		writeJSON(t, w, map[string]any{"data": []map[string]any{
			{"id": "9", "ticketNumber": "901", "status": "Closed", "closedTime": "2024-05-01T09:00:00Z"},
		}})
	}))

	tickets, err := client.ArchivedTickets(context.Background())

	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, domain.ProvenanceArchived, tickets[0].Provenance)
	assert.NotNil(t, tickets[0].ClosedTime)
}

func TestClient_TicketMetrics(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tickets/101/metrics":
			writeJSON(t, w, map[string]any{
				"ticketNumber":      "101",
				"firstResponseTime": "04:40 hrs",
				"threadCount":       3,
			})
		case "/tickets/102/metrics":
			w.WriteHeader(http.StatusNotFound)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	metrics, err := client.TicketMetrics(context.Background(), []string{"101", "102"})

	require.NoError(t, err)
	require.Len(t, metrics, 1, "ticket without a metrics record is skipped, not an error")
	assert.Equal(t, "101", metrics[0].TicketNumber)
	assert.Equal(t, "04:40 hrs", metrics[0].FirstResponseTime)
	assert.Equal(t, 3, metrics[0].ThreadCount)
}

func TestClient_TicketMetrics_RespectsLimit(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"ticketNumber": "x"})
	}))
	t.Cleanup(server.Close)

	client := helpdesk.NewClient(helpdesk.Config{
		BaseURL:           server.URL,
		RequestsPerMinute: 6000,
		Burst:             100,
		MetricsLimit:      2,
		CacheTTL:          time.Minute,
	}, discardLogger())

	metrics, err := client.TicketMetrics(context.Background(), []string{"1", "2", "3", "4"})

	require.NoError(t, err)
	assert.Len(t, metrics, 2)
	assert.Equal(t, int32(2), requests.Load())
}

func TestClient_AgentNames(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/agents", r.URL.Path)
		writeJSON(t, w, map[string]any{"data": []map[string]any{
			{"id": "u1", "name": "Priya Nair"},
			{"id": "u2", "name": "Omar Diaz"},
			{"id": "", "name": "ghost"},
		}})
	}))

	names, err := client.AgentNames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"u1": "Priya Nair", "u2": "Omar Diaz"}, names)
}
