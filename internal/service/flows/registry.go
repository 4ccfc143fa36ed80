package flows

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SessionBooking/internal/workflow"
)

type pairKey struct {
	clientID int64
	hostID   int64
}

// Registry открытые процессы бронирования
// У пары клиент/хост не больше одного процесса: повторное открытие начинает заново
type Registry struct {
	mu     sync.Mutex
	flows  map[string]*workflow.Workflow
	byPair map[pairKey]string
	ttl    time.Duration
	clock  TimeProvider
	logger Logger
}

// NewRegistry создает реестр; процессы без изменений дольше ttl удаляются при Sweep
func NewRegistry(ttl time.Duration, clock TimeProvider, logger Logger) *Registry {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return &Registry{
		flows:  make(map[string]*workflow.Workflow),
		byPair: make(map[pairKey]string),
		ttl:    ttl,
		clock:  clock,
		logger: logger,
	}
}

// Register добавляет процесс, закрывая предыдущий процесс той же пары клиент/хост
func (r *Registry) Register(w *workflow.Workflow) {
	key := pairKey{clientID: w.ClientID(), hostID: w.HostID()}

	r.mu.Lock()
	previous, hadPrevious := r.flows[r.byPair[key]]
	hadPrevious = hadPrevious && previous != w
	if hadPrevious {
		delete(r.flows, previous.ID())
	}
	r.flows[w.ID()] = w
	r.byPair[key] = w.ID()
	r.mu.Unlock()

	if hadPrevious {
		previous.Close()
		r.logger.Info("Register: flow=%s replaced by flow=%s for client=%d host=%d",
			previous.ID(), w.ID(), key.clientID, key.hostID)
	}
}

// Get возвращает процесс, если он принадлежит клиенту userID
func (r *Registry) Get(flowID string, userID int64) (*workflow.Workflow, error) {
	r.mu.Lock()
	w, ok := r.flows[flowID]
	r.mu.Unlock()

	if !ok {
		return nil, ErrFlowNotFound
	}
	if w.ClientID() != userID {
		r.logger.Warn("Get: user=%d tried to access flow=%s of client=%d", userID, flowID, w.ClientID())
		return nil, ErrAccessDenied
	}
	return w, nil
}

// Close закрывает и удаляет процесс клиента
func (r *Registry) Close(flowID string, userID int64) error {
	w, err := r.Get(flowID, userID)
	if err != nil {
		return err
	}

	r.remove(w)
	w.Close()
	return nil
}

// Sweep закрывает процессы, которые не менялись дольше ttl
// Возвращает количество удалённых процессов
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	deadline := r.clock.Now().Add(-r.ttl)

	r.mu.Lock()
	expired := make([]*workflow.Workflow, 0)
	for _, w := range r.flows {
		if w.UpdatedAt().Before(deadline) {
			expired = append(expired, w)
		}
	}
	r.mu.Unlock()

	for _, w := range expired {
		r.remove(w)
		w.Close()
	}

	if len(expired) > 0 {
		r.logger.Info("Sweep: closed %d idle booking flows", len(expired))
	}
	return len(expired)
}

// Run периодически вызывает Sweep до отмены контекста
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Len количество открытых процессов
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flows)
}

func (r *Registry) remove(w *workflow.Workflow) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.flows[w.ID()]; !ok || current != w {
		return
	}
	delete(r.flows, w.ID())

	key := pairKey{clientID: w.ClientID(), hostID: w.HostID()}
	if r.byPair[key] == w.ID() {
		delete(r.byPair, key)
	}
}
