package care

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Publisher recibe cada cambio de stats (p.ej. NATS). Opcional.
type Publisher interface {
	Publish(ctx context.Context, s Snapshot) error
}

// Manager hospeda un Engine por usuario (device id). Los engines inactivos y
// sin suscriptores se liberan al cerrar la mascota o al cortar el stream.
type Manager struct {
	store Store
	opts  Options
	pub   Publisher

	mu      sync.Mutex
	engines map[string]*hosted
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	fwd    sync.WaitGroup
}

type hosted struct {
	engine *Engine
	// stopForward corta la suscripción del forwarder (nil sin Publisher).
	stopForward func()
}

// selectAttempts acota los reintentos cuando un engine se libera entre
// Engine() y Select().
const selectAttempts = 3

func NewManager(store Store, opts Options, pub Publisher) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		store:   store,
		opts:    opts.withDefaults(),
		pub:     pub,
		engines: make(map[string]*hosted),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Engine devuelve (o crea) el engine del usuario.
func (m *Manager) Engine(userID string) (*Engine, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engineLocked(userID)
}

func (m *Manager) engineLocked(userID string) (*Engine, error) {
	if m.closed {
		return nil, ErrShutdown
	}
	if h, ok := m.engines[userID]; ok {
		return h.engine, nil
	}

	e := NewEngine(userID, m.store, m.opts)
	h := &hosted{engine: e}
	m.engines[userID] = h

	if m.pub != nil {
		ch, unsubscribe := e.Subscribe()
		h.stopForward = unsubscribe
		m.fwd.Add(1)
		go m.forward(e, ch, unsubscribe)
	}
	return e, nil
}

// Lookup no crea engines (lecturas de solo estado).
func (m *Manager) Lookup(userID string) (*Engine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.engines[strings.TrimSpace(userID)]
	if !ok {
		return nil, false
	}
	return h.engine, true
}

// Len es la cantidad de engines residentes.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.engines)
}

// Select activa la mascota en el engine del usuario, creándolo si hace falta.
func (m *Manager) Select(ctx context.Context, userID string, pet PetRef) (Snapshot, error) {
	for i := 0; i < selectAttempts; i++ {
		e, err := m.Engine(userID)
		if err != nil {
			return Snapshot{}, err
		}
		snap, err := e.Select(ctx, pet)
		if errors.Is(err, errRetired) {
			continue
		}
		return snap, err
	}
	return Snapshot{}, ErrShutdown
}

// Close cierra la mascota activa (save inmediato) y libera el engine si
// nadie lo está mirando. Sin engine devuelve un snapshot inactivo.
func (m *Manager) Close(ctx context.Context, userID string) Snapshot {
	userID = strings.TrimSpace(userID)
	e, ok := m.Lookup(userID)
	if !ok {
		return Snapshot{UserID: userID, At: m.opts.Now()}
	}
	snap := e.Close(ctx)
	m.Release(userID)
	return snap
}

// Subscribe suscribe al engine del usuario (creándolo). El cancel devuelto
// además libera el engine si quedó inactivo.
func (m *Manager) Subscribe(userID string) (*Engine, <-chan Snapshot, func(), error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil, nil, ErrInvalidInput
	}

	m.mu.Lock()
	e, err := m.engineLocked(userID)
	if err != nil {
		m.mu.Unlock()
		return nil, nil, nil, err
	}
	// Bajo m.mu: Release no puede retirar el engine entre la búsqueda y la suscripción.
	ch, unsubscribe := e.Subscribe()
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			unsubscribe()
			m.Release(userID)
		})
	}
	return e, ch, cancel, nil
}

// Release saca del mapa el engine del usuario si está inactivo y sin
// suscriptores externos. Devuelve true si lo liberó.
func (m *Manager) Release(userID string) bool {
	userID = strings.TrimSpace(userID)

	m.mu.Lock()
	h, ok := m.engines[userID]
	if !ok || m.closed {
		m.mu.Unlock()
		return false
	}
	internal := 0
	if h.stopForward != nil {
		internal = 1
	}
	if !h.engine.retire(internal) {
		m.mu.Unlock()
		return false
	}
	delete(m.engines, userID)
	m.mu.Unlock()

	// Cerrar la suscripción deja que el forwarder publique lo pendiente y salga.
	if h.stopForward != nil {
		h.stopForward()
	}
	return true
}

// Shutdown cierra todos los engines (save final de cada mascota activa) y
// cancela timers y forwarders.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	engines := make([]*Engine, 0, len(m.engines))
	for _, h := range m.engines {
		engines = append(engines, h.engine)
	}
	m.mu.Unlock()

	var errs []error
	for _, e := range engines {
		if err := e.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	m.cancel()
	m.fwd.Wait()
	return errors.Join(errs...)
}

func (m *Manager) forward(e *Engine, ch <-chan Snapshot, unsubscribe func()) {
	defer m.fwd.Done()
	defer unsubscribe()

	log := m.opts.Logger.With(map[string]any{"user": e.UserID()})
	for {
		select {
		case <-m.ctx.Done():
			return
		case s, ok := <-ch:
			if !ok {
				return
			}
			if err := m.pub.Publish(m.ctx, s); err != nil {
				log.Warn("publish snapshot failed", map[string]any{"error": err})
			}
		}
	}
}
