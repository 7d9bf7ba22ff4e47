package server

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"stocksurge/internal/markethours"
	"stocksurge/internal/model"
	"stocksurge/internal/worker"
)

const (
	maxLiveTickers = 20
	wsWriteWait    = 10 * time.Second
	wsPongWait     = 60 * time.Second
	wsPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Browser clients connect from the SPA origin; same-host checks are
	// left to the deployment proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type liveFrame struct {
	Type       string                  `json:"type"`
	Timestamp  string                  `json:"timestamp"`
	MarketOpen bool                    `json:"market_open"`
	Quotes     map[string]*model.Quote `json:"quotes"` // nil value = fetch failed
}

// handleLive streams quote snapshots for up to 20 tickers, one frame per
// poll interval, until the client goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	tickers := parseTickerList(r.PathValue("tickers"))
	if len(tickers) == 0 {
		writeError(w, http.StatusBadRequest, "at least one ticker is required")
		return
	}
	if len(tickers) > maxLiveTickers {
		writeError(w, http.StatusBadRequest, "too many tickers (max 20)")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade: %v", err)
		return
	}
	if s.metrics != nil {
		s.metrics.WSClients.Inc()
		defer s.metrics.WSClients.Dec()
	}
	log.Printf("[ws] client connected, tickers=%v", tickers)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.readUntilClose(conn, cancel)

	s.pushQuotes(ctx, conn, tickers)

	poll := time.NewTicker(s.wsPoll)
	ping := time.NewTicker(wsPingInterval)
	defer poll.Stop()
	defer ping.Stop()
	defer conn.Close()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[ws] client disconnected")
			return
		case <-poll.C:
			if !s.pushQuotes(ctx, conn, tickers) {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// pushQuotes fetches every ticker (bounded fan-out) and writes one frame.
// Returns false when the connection is gone.
func (s *Server) pushQuotes(ctx context.Context, conn *websocket.Conn, tickers []string) bool {
	results := worker.Map(ctx, s.workers, tickers,
		func(ctx context.Context, ticker string) (*model.Quote, error) {
			return s.market.Quote(ctx, ticker)
		})

	frame := liveFrame{
		Type:       "quotes",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		MarketOpen: markethours.IsMarketOpen(time.Now()),
		Quotes:     make(map[string]*model.Quote, len(results)),
	}
	for ticker, res := range results {
		if res.Err != nil {
			s.providerError()
			frame.Quotes[ticker] = nil
			continue
		}
		frame.Quotes[ticker] = res.Value
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(frame); err != nil {
		return false
	}
	return true
}

// readUntilClose drains client messages so pongs are processed, canceling
// the stream when the peer disconnects.
func (s *Server) readUntilClose(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func parseTickerList(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := normalizeTicker(p)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
