package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/marinelink/nav_encoder/internal/config"
	"github.com/marinelink/nav_encoder/internal/nav"
)

// nmeaStatus is the JSON shape served by /api/nmea: the most recent
// sentences (newest last), the snapshot they came from, and when the
// last sentence arrived.
type nmeaStatus struct {
	Sentences []string      `json:"sentences"`
	Snapshot  *nav.Snapshot `json:"snapshot,omitempty"`
	Time      time.Time     `json:"time"`
}

const sentenceBacklog = 10

var upgrader = websocket.Upgrader{
	// Dashboard and API live on the same box; cross-origin viewers
	// are fine.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsHub fans each sentence out to the connected WebSocket clients.
type wsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func (h *wsHub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *wsHub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.Close()
}

func (h *wsHub) broadcast(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			c.Close()
			delete(h.clients, c)
		}
	}
}

// RunWeb serves the latest sentences and snapshot as JSON on
// /api/nmea, streams each sentence as a WebSocket text frame on /ws,
// and serves static files from ./web.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu        sync.RWMutex
		snapshot  *nav.Snapshot
		sentences []string
		updated   time.Time
	)
	hub := &wsHub{clients: make(map[*websocket.Conn]bool)}

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Track sentences and fan them out to WebSocket clients
	nmeaToken := client.Subscribe(cfg.TopicNMEA, 0, func(_ mqtt.Client, msg mqtt.Message) {
		s := string(msg.Payload())
		mu.Lock()
		sentences = append(sentences, s)
		if len(sentences) > sentenceBacklog {
			sentences = sentences[len(sentences)-sentenceBacklog:]
		}
		updated = time.Now()
		mu.Unlock()
		hub.broadcast(s)
	})
	nmeaToken.Wait()
	if nmeaToken.Error() != nil {
		return nmeaToken.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicNMEA)

	// 3) Track the latest snapshot for the API
	snapToken := client.Subscribe(cfg.TopicSnapshot, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var snap nav.Snapshot
		if err := json.Unmarshal(msg.Payload(), &snap); err != nil {
			log.Printf("web: snapshot unmarshal error: %v", err)
			return
		}
		mu.Lock()
		snapshot = &snap
		mu.Unlock()
	})
	snapToken.Wait()
	if snapToken.Error() != nil {
		return snapToken.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicSnapshot)

	// 4) JSON API endpoint: latest sentences + snapshot
	http.HandleFunc("/api/nmea", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		status := nmeaStatus{
			Sentences: append([]string(nil), sentences...),
			Snapshot:  snapshot,
			Time:      updated,
		}
		mu.RUnlock()

		if len(status.Sentences) == 0 {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 5) WebSocket sentence stream
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		hub.add(conn)
		log.Printf("web: websocket client connected from %s", r.RemoteAddr)

		// Drain reads so the hub notices the client going away.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					hub.remove(conn)
					return
				}
			}
		}()
	})

	// 6) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
