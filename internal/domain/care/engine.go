package care

import (
	"context"
	"strings"
	"sync"
	"time"

	"pet-companion/internal/platform/logger"
	"pet-companion/internal/platform/metrics"
)

// PetRef identifica a la mascota activa. Es lo único que ve la capa de render.
type PetRef struct {
	Name     string
	ModelURL string // solo mascotas custom (modelo generado)
}

// Snapshot es una copia de solo lectura para la capa de presentación.
// Mood y Colors se recalculan en cada snapshot, nunca se cachean.
type Snapshot struct {
	UserID string
	Pet    PetRef
	Active bool

	Stats  Stats
	Mood   Mood
	Colors StatColors

	// Saves es el contador de saves programados (uno por tick/acción).
	Saves int64
	At    time.Time
}

type Options struct {
	TickInterval time.Duration
	SaveDelay    time.Duration
	LoadTimeout  time.Duration
	SaveTimeout  time.Duration

	Logger  logger.Logger
	Metrics *metrics.Care

	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = 5 * time.Second
	}
	if o.SaveDelay <= 0 {
		o.SaveDelay = time.Second
	}
	if o.LoadTimeout <= 0 {
		o.LoadTimeout = 3 * time.Second
	}
	if o.SaveTimeout <= 0 {
		o.SaveTimeout = 5 * time.Second
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Engine mantiene las stats de la mascota activa de un usuario (device).
//
// Estados: inactivo (nada en memoria, nada programado) y activo (loop de
// decay corriendo, acciones aceptadas). Todas las mutaciones pasan por mu,
// así ticks y acciones se observan en el orden en que se emitieron.
type Engine struct {
	userID string
	store  Store
	opts   Options
	log    logger.Logger

	// life serializa Select/Close/Shutdown (hacen I/O fuera de mu).
	life    sync.Mutex
	closed  bool
	retired bool // el Manager lo sacó del mapa; no acepta más Select

	mu        sync.Mutex
	active    bool
	pet       PetRef
	stats     Stats
	saves     int64
	gen       uint64 // cambia en cada activación/desactivación
	stopDecay context.CancelFunc
	saveTimer *time.Timer
	timerID   uint64
	subs      map[int]chan Snapshot
	nextSub   int

	// writeMu ordena las escrituras al store; written guarda el último
	// save-counter persistido por mascota para descartar escrituras viejas.
	writeMu sync.Mutex
	written map[string]int64

	// bg cuenta loops de decay y saves debounced pendientes.
	bg sync.WaitGroup
}

func NewEngine(userID string, store Store, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		userID:  userID,
		store:   store,
		opts:    opts,
		log:     opts.Logger.With(map[string]any{"user": userID}),
		subs:    make(map[int]chan Snapshot),
		written: make(map[string]int64),
	}
}

func (e *Engine) UserID() string { return e.userID }

// Select activa una mascota. Si había otra activa, cancela su loop y su save
// pendiente y la persiste bajo su propia key antes de cargar la nueva.
// La carga es única: sin registro o con error se usan stats default.
func (e *Engine) Select(ctx context.Context, pet PetRef) (Snapshot, error) {
	pet.Name = strings.TrimSpace(pet.Name)
	if pet.Name == "" {
		return Snapshot{}, ErrInvalidInput
	}

	e.life.Lock()
	defer e.life.Unlock()
	if e.closed {
		return Snapshot{}, ErrShutdown
	}
	if e.retired {
		return Snapshot{}, errRetired
	}

	e.mu.Lock()
	prev, prevStats, prevSeq, wasActive := e.pet, e.stats, e.saves, e.active
	e.deactivateLocked()
	e.mu.Unlock()

	if wasActive {
		e.write(ctx, metrics.SaveFlush, prev.Name, prevStats, prevSeq)
	}

	stats := e.load(ctx, pet.Name)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.active = true
	e.pet = pet
	e.stats = stats
	e.gen++

	loopCtx, cancel := context.WithCancel(context.Background())
	e.stopDecay = cancel
	e.bg.Add(1)
	go e.decayLoop(loopCtx, e.gen)

	e.opts.Metrics.Activated()
	e.log.Info("pet selected", map[string]any{"pet": pet.Name})

	snap := e.snapshotLocked()
	e.notifyLocked(snap)
	return snap, nil
}

// Close desactiva la mascota: cancela loop y debounce y hace un save
// inmediato con las últimas stats. Idempotente si no hay mascota activa.
func (e *Engine) Close(ctx context.Context) Snapshot {
	e.life.Lock()
	defer e.life.Unlock()
	return e.closeLocked(ctx)
}

func (e *Engine) closeLocked(ctx context.Context) Snapshot {
	e.mu.Lock()
	if !e.active {
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap
	}
	pet, stats, seq := e.pet, e.stats, e.saves
	e.deactivateLocked()
	snap := e.snapshotLocked()
	e.notifyLocked(snap)
	e.mu.Unlock()

	e.write(ctx, metrics.SaveFlush, pet.Name, stats, seq)
	e.log.Info("pet closed", map[string]any{"pet": pet.Name})
	return snap
}

// Shutdown cierra la mascota activa y espera loops y saves pendientes.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.life.Lock()
	e.closeLocked(ctx)
	e.closed = true
	e.life.Unlock()

	done := make(chan struct{})
	go func() {
		e.bg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retire marca el engine como descartable si está inactivo, sin Select en
// curso y sin más suscriptores que los internos (forwarder del Manager).
func (e *Engine) retire(internalSubs int) bool {
	if !e.life.TryLock() {
		return false
	}
	defer e.life.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active || e.closed || len(e.subs) > internalSubs {
		return false
	}
	e.retired = true
	return true
}

// Tick aplica un paso de decay a la mascota activa.
func (e *Engine) Tick() (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		return Snapshot{}, ErrNoActivePet
	}
	return e.tickLocked(), nil
}

func (e *Engine) Act(a Action) (Snapshot, error) {
	if _, ok := effects[a]; !ok {
		return Snapshot{}, ErrUnknownAction
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.active {
		return Snapshot{}, ErrNoActivePet
	}

	snap := e.mutateLocked(Apply(e.stats, a))
	e.opts.Metrics.Action(string(a))
	return snap, nil
}

func (e *Engine) Feed() (Snapshot, error)  { return e.Act(ActionFeed) }
func (e *Engine) Play() (Snapshot, error)  { return e.Act(ActionPlay) }
func (e *Engine) Clean() (Snapshot, error) { return e.Act(ActionClean) }
func (e *Engine) Rest() (Snapshot, error)  { return e.Act(ActionRest) }

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// ActivePet es la identidad que consume la capa de render.
func (e *Engine) ActivePet() (PetRef, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pet, e.active
}

// Subscribe devuelve un canal con cada snapshot nuevo. Un suscriptor lento
// puede perder snapshots intermedios pero siempre recibe el último.
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	ch := make(chan Snapshot, 1)
	e.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			close(ch)
			e.mu.Unlock()
		})
	}
	return ch, cancel
}

func (e *Engine) tickLocked() Snapshot {
	snap := e.mutateLocked(Tick(e.stats))
	e.opts.Metrics.Tick()
	return snap
}

func (e *Engine) mutateLocked(next Stats) Snapshot {
	e.stats = next
	e.scheduleSaveLocked()
	snap := e.snapshotLocked()
	e.notifyLocked(snap)
	return snap
}

// scheduleSaveLocked incrementa el save-counter y (re)arma el debounce:
// varios triggers dentro de la ventana producen un solo save.
func (e *Engine) scheduleSaveLocked() {
	e.saves++

	if e.saveTimer != nil && e.saveTimer.Stop() {
		e.saveTimer.Reset(e.opts.SaveDelay)
		return
	}

	gen := e.gen
	e.timerID++
	id := e.timerID
	e.bg.Add(1)
	e.saveTimer = time.AfterFunc(e.opts.SaveDelay, func() { e.fireSave(gen, id) })
}

// fireSave lee las stats al momento de disparar (no un snapshot viejo).
func (e *Engine) fireSave(gen, id uint64) {
	defer e.bg.Done()

	e.mu.Lock()
	if e.timerID == id {
		e.saveTimer = nil
	}
	if !e.active || e.gen != gen {
		e.mu.Unlock()
		return
	}
	pet, stats, seq := e.pet.Name, e.stats, e.saves
	e.mu.Unlock()

	e.write(context.Background(), metrics.SaveDebounced, pet, stats, seq)
}

func (e *Engine) deactivateLocked() {
	if !e.active {
		return
	}
	e.active = false
	e.gen++

	if e.stopDecay != nil {
		e.stopDecay()
		e.stopDecay = nil
	}
	if e.saveTimer != nil {
		if e.saveTimer.Stop() {
			e.bg.Done()
		}
		e.saveTimer = nil
	}
	e.opts.Metrics.Deactivated()
}

func (e *Engine) decayLoop(ctx context.Context, gen uint64) {
	defer e.bg.Done()

	t := time.NewTicker(e.opts.TickInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			e.mu.Lock()
			if e.active && e.gen == gen {
				e.tickLocked()
			}
			e.mu.Unlock()
		}
	}
}

func (e *Engine) load(ctx context.Context, pet string) Stats {
	ctx, cancel := context.WithTimeout(ctx, e.opts.LoadTimeout)
	defer cancel()

	rec, found, err := e.store.Load(ctx, e.userID, pet)
	if err != nil {
		// fail open: seleccionar mascota nunca se bloquea por el store
		e.opts.Metrics.Load("failed")
		e.log.Warn("load stats failed, using defaults", map[string]any{"pet": pet, "error": err})
		return DefaultStats()
	}
	if !found {
		e.opts.Metrics.Load("missing")
		return DefaultStats()
	}

	s := rec.Stats()
	if !s.InRange() {
		e.opts.Metrics.Load("failed")
		e.log.Warn("malformed stats record, using defaults", map[string]any{"pet": pet})
		return DefaultStats()
	}
	e.opts.Metrics.Load("found")
	return s
}

// write persiste stats. Los errores se loguean y no se reintentan: el
// próximo tick/acción programa otro save.
func (e *Engine) write(ctx context.Context, kind, pet string, s Stats, seq int64) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	if last, ok := e.written[pet]; ok && seq < last {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.opts.SaveTimeout)
	defer cancel()

	err := e.store.Save(ctx, e.userID, pet, RecordOf(s))
	e.opts.Metrics.Save(kind, err)
	if err != nil {
		e.log.Error("save stats failed", map[string]any{"pet": pet, "kind": kind, "error": err})
		return
	}
	e.written[pet] = seq
	e.log.Debug("stats saved", map[string]any{"pet": pet, "kind": kind, "seq": seq})
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		UserID: e.userID,
		Active: e.active,
		Saves:  e.saves,
		At:     e.opts.Now(),
	}
	if !e.active {
		return snap
	}
	snap.Pet = e.pet
	snap.Stats = e.stats
	snap.Mood = MoodOf(e.stats)
	snap.Colors = ColorsOf(e.stats)
	return snap
}

func (e *Engine) notifyLocked(s Snapshot) {
	for _, ch := range e.subs {
		select {
		case ch <- s:
		default:
			// descartamos el snapshot viejo y dejamos el último
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}
