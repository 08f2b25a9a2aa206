// Package authevents distribuye los cambios de estado de autenticación a los suscriptores
// (streams SSE por flujo). Sustituye la recarga completa de página tras el login.
package authevents

import (
	"sync"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

// Tipos de evento.
const (
	EventSessionEstablished = "session_established"
	EventFlowExpired        = "flow_expired"

	// EventFlowFinished se envía a quien se suscribe a un flujo que ya terminó.
	EventFlowFinished = "flow_finished"
)

// Event notificación para un flujo concreto.
type Event struct {
	Type    string
	FlowID  string
	Session *dto.SessionDTO
}

// Subscription canal de eventos de un flujo. Cancel libera la suscripción y cierra C.
type Subscription struct {
	C      <-chan Event
	id     uint64
	flowID string
	bus    *Bus
}

// Cancel da de baja la suscripción. Es idempotente.
func (s *Subscription) Cancel() {
	s.bus.unsubscribe(s.flowID, s.id)
}

// Bus publica eventos por flowID sin bloquear al publicador.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string]map[uint64]chan Event
	nextID uint64
	buffer int
	log    *logger.Logger

	observe func(eventType string)
}

// NewBus construye el bus. buffer es la capacidad del canal de cada suscriptor.
func NewBus(buffer int, log *logger.Logger) *Bus {
	if buffer <= 0 {
		buffer = 4
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Bus{subs: make(map[string]map[uint64]chan Event), buffer: buffer, log: log}
}

// Observe registra fn para cada evento publicado (métricas). Llamar antes de publicar.
func (b *Bus) Observe(fn func(eventType string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observe = fn
}

// Subscribe registra un suscriptor para flowID.
func (b *Bus) Subscribe(flowID string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	ch := make(chan Event, b.buffer)
	if b.subs[flowID] == nil {
		b.subs[flowID] = make(map[uint64]chan Event)
	}
	b.subs[flowID][b.nextID] = ch
	return &Subscription{C: ch, id: b.nextID, flowID: flowID, bus: b}
}

func (b *Bus) unsubscribe(flowID string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[flowID]
	ch, ok := subs[id]
	if !ok {
		return
	}
	close(ch)
	delete(subs, id)
	if len(subs) == 0 {
		delete(b.subs, flowID)
	}
}

// Publish entrega ev a los suscriptores de ev.FlowID. Si el canal de un suscriptor
// está lleno el evento se descarta para ese suscriptor. Devuelve cuántos lo recibieron.
func (b *Bus) Publish(ev Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.observe != nil {
		b.observe(ev.Type)
	}
	sent := 0
	for id, ch := range b.subs[ev.FlowID] {
		select {
		case ch <- ev:
			sent++
		default:
			b.log.Warn().Str("flow_id", ev.FlowID).Uint64("subscriber", id).Msg("canal de eventos lleno, se descarta")
		}
	}
	return sent
}

// Subscribers número de suscriptores activos de flowID.
func (b *Bus) Subscribers(flowID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[flowID])
}
