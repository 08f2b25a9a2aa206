package login

import "sync"

// Guard rechaza llamadas reentrantes con la misma clave mientras una sigue en curso.
type Guard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewGuard construye un guard vacío.
func NewGuard() *Guard {
	return &Guard{inflight: make(map[string]struct{})}
}

// TryAcquire reserva key. Si ya estaba reservada devuelve ok=false.
// release libera la clave y puede llamarse más de una vez.
func (g *Guard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inflight[key]; busy {
		return func() {}, false
	}
	g.inflight[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inflight, key)
			g.mu.Unlock()
		})
	}, true
}

// InFlight indica si key está reservada.
func (g *Guard) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.inflight[key]
	return busy
}
