// Package health реализует health-пробы сервиса витрины.
package health

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Status представляет состояние компонента или сервиса в целом.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

// Result — результат одной пробы.
type Result struct {
	Component string `json:"component"`
	Status    Status `json:"status"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Report — сводный ответ health-эндпоинта.
type Report struct {
	Status        Status    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version,omitempty"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	Components    []Result  `json:"components,omitempty"`
}

// Probe — проверка одного компонента. Падение критичной пробы роняет
// сервис в down; некритичной — только в degraded: витрина может
// работать на кэшированном меню, когда бэкенд ресторана недоступен.
type Probe struct {
	Name     string
	Critical bool
	Fn       func() error
}

// Handler отвечает на health check запросы.
type Handler struct {
	mu      sync.RWMutex
	probes  []Probe
	version string
	started time.Time
}

// NewHandler создаёт health handler.
func NewHandler(version string) *Handler {
	return &Handler{version: version, started: time.Now()}
}

// Register добавляет пробу. Порядок регистрации сохраняется в ответе.
func (h *Handler) Register(p Probe) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probes = append(h.probes, p)
}

func (h *Handler) run() (Status, []Result) {
	h.mu.RLock()
	probes := make([]Probe, len(h.probes))
	copy(probes, h.probes)
	h.mu.RUnlock()

	overall := StatusOK
	results := make([]Result, 0, len(probes))
	for _, p := range probes {
		start := time.Now()
		err := p.Fn()
		res := Result{
			Component: p.Name,
			Status:    StatusOK,
			ElapsedMs: time.Since(start).Milliseconds(),
		}
		if err != nil {
			res.Error = err.Error()
			if p.Critical {
				res.Status = StatusDown
				overall = StatusDown
			} else {
				res.Status = StatusDegraded
				if overall == StatusOK {
					overall = StatusDegraded
				}
			}
		}
		results = append(results, res)
	}
	return overall, results
}

// ServeHTTP выполняет все пробы и возвращает сводный отчёт.
// Degraded остаётся кодом 200: сервис всё ещё обслуживает запросы.
func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	overall, results := h.run()

	report := Report{
		Status:        overall,
		Timestamp:     time.Now(),
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Components:    results,
	}

	code := http.StatusOK
	if overall == StatusDown {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(report)
}

// ReadinessHandler отвечает 200, пока ни одна критичная проба не упала.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, _ *http.Request) {
	overall, _ := h.run()
	if overall == StatusDown {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LivenessHandler — liveness probe, всегда 200.
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
