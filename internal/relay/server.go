package relay

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"hybridchat/internal/domain"
)

// maxBody bounds request bodies. Envelopes carry one message or one key
// exchange, so this is generous.
const maxBody = 1 << 20

// Server is the in-memory relay. State is lost on exit.
type Server struct {
	mu     sync.RWMutex
	keys   map[domain.Username]domain.PublicKeys
	queues map[domain.Username][]domain.Envelope

	log     zerolog.Logger
	metrics *metrics
	mux     *http.ServeMux
	now     func() time.Time
}

// NewServer returns a relay with empty state.
func NewServer(logger zerolog.Logger) *Server {
	s := &Server{
		keys:   make(map[domain.Username]domain.PublicKeys),
		queues: make(map[domain.Username][]domain.Envelope),
		log:    logger,
		now:    time.Now,
	}
	s.metrics = newMetrics(s.queueDepth)

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("POST /register", s.handleRegister)
	s.mux.HandleFunc("GET /keys/{user}", s.handleKeys)
	s.mux.HandleFunc("POST /msg/{user}", s.handleEnqueue)
	s.mux.HandleFunc("GET /msg/{user}", s.handleList)
	s.mux.HandleFunc("POST /msg/{user}/ack", s.handleAck)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	return s
}

// ServeHTTP serves the relay API with an access log line per request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := s.now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	s.mux.ServeHTTP(rec, r)

	s.log.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("remote", r.RemoteAddr).
		Int("status", rec.status).
		Int("bytes", rec.bytes).
		Dur("took", time.Since(start)).
		Msg("request")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var pk domain.PublicKeys
	if err := json.NewDecoder(r.Body).Decode(&pk); err != nil {
		s.reject(w, "register", http.StatusBadRequest, "bad json")
		return
	}
	if pk.Username == "" || pk.ElGamal == "" || pk.DSA == "" {
		s.reject(w, "register", http.StatusBadRequest, "username, elgamal and dsa are required")
		return
	}
	s.mu.Lock()
	s.keys[pk.Username] = pk
	s.mu.Unlock()

	s.metrics.registrations.Inc()
	s.log.Debug().Str("user", pk.Username.String()).Msg("keys registered")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	user := domain.Username(r.PathValue("user"))
	s.mu.RLock()
	pk, ok := s.keys[user]
	s.mu.RUnlock()
	if !ok {
		s.reject(w, "keys", http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, pk)
}

func (s *Server) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	user := domain.Username(r.PathValue("user"))
	var env domain.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		s.reject(w, "enqueue", http.StatusBadRequest, "bad json")
		return
	}
	if !env.Kind.Valid() {
		s.reject(w, "enqueue", http.StatusBadRequest, "unknown kind")
		return
	}
	if env.To != "" && env.To != user {
		s.reject(w, "enqueue", http.StatusBadRequest, "recipient mismatch")
		return
	}
	env.To = user
	env.ID = domain.EnvelopeID(uuid.New().String())
	if env.Timestamp == 0 {
		env.Timestamp = s.now().Unix()
	}

	s.mu.Lock()
	s.queues[user] = append(s.queues[user], env)
	s.mu.Unlock()

	s.metrics.queued.WithLabelValues(string(env.Kind)).Inc()
	writeJSON(w, map[string]domain.EnvelopeID{"id": env.ID})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	user := domain.Username(r.PathValue("user"))
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.reject(w, "list", http.StatusBadRequest, "bad limit")
			return
		}
		limit = n
	}

	s.mu.RLock()
	q := s.queues[user]
	if limit > 0 && limit < len(q) {
		q = q[:limit]
	}
	out := append([]domain.Envelope{}, q...)
	s.mu.RUnlock()

	writeJSON(w, out)
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	user := domain.Username(r.PathValue("user"))
	var req ackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Count < 0 {
		s.reject(w, "ack", http.StatusBadRequest, "bad count")
		return
	}

	s.mu.Lock()
	q := s.queues[user]
	n := min(req.Count, len(q))
	if n == len(q) {
		delete(s.queues, user)
	} else {
		s.queues[user] = append([]domain.Envelope(nil), q[n:]...)
	}
	s.mu.Unlock()

	s.metrics.acked.Add(float64(n))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) queueDepth() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, q := range s.queues {
		n += len(q)
	}
	return float64(n)
}

func (s *Server) reject(w http.ResponseWriter, route string, status int, msg string) {
	s.metrics.rejected.WithLabelValues(route).Inc()
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}
