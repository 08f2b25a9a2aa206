package login

import (
	"sync"
	"time"

	"github.com/google/uuid"

	domainlogin "github.com/jhoicas/portal-beneficiarios/internal/domain/login"
)

type flowRecord struct {
	state     domainlogin.State
	expiresAt time.Time
}

// Store guarda los flujos en memoria. Cada escritura renueva el vencimiento (TTL deslizante).
type Store struct {
	mu    sync.Mutex
	flows map[string]*flowRecord
	ttl   time.Duration
	now   func() time.Time
}

// NewStore construye el almacén con el TTL indicado.
func NewStore(ttl time.Duration) *Store {
	return &Store{flows: make(map[string]*flowRecord), ttl: ttl, now: time.Now}
}

// Create abre un flujo nuevo en estado inicial y devuelve su ID.
func (s *Store) Create() (string, domainlogin.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	st := domainlogin.Initial()
	s.flows[id] = &flowRecord{state: st, expiresAt: s.now().Add(s.ttl)}
	return id, st
}

// Get devuelve el estado del flujo; false si no existe o venció.
func (s *Store) Get(id string) (domainlogin.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.live(id)
	if !ok {
		return domainlogin.State{}, false
	}
	return rec.state, true
}

// Update aplica fn sobre el estado bajo el lock. Solo se guarda el resultado si fn no devuelve error.
func (s *Store) Update(id string, fn func(domainlogin.State) (domainlogin.State, error)) (domainlogin.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.live(id)
	if !ok {
		return domainlogin.State{}, ErrFlowNotFound
	}
	next, err := fn(rec.state)
	if err != nil {
		return rec.state, err
	}
	rec.state = next
	rec.expiresAt = s.now().Add(s.ttl)
	return next, nil
}

// Purge borra los flujos vencidos y devuelve sus IDs.
func (s *Store) Purge() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var ids []string
	for id, rec := range s.flows {
		if !now.Before(rec.expiresAt) {
			delete(s.flows, id)
			ids = append(ids, id)
		}
	}
	return ids
}

// Len número de flujos guardados (vencidos incluidos hasta la próxima purga).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}

func (s *Store) live(id string) (*flowRecord, bool) {
	rec, ok := s.flows[id]
	if !ok || !s.now().Before(rec.expiresAt) {
		return nil, false
	}
	return rec, true
}
