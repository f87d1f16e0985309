package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.ChangeSubscriber = (*Listener)(nil)

// stockChannel canal de NOTIFY emitido por los triggers de las tablas de
// stock. El payload es la categoría afectada ("cardboard", "ink", ...).
const stockChannel = "stock_changes"

// Listener escucha LISTEN/NOTIFY de PostgreSQL y reparte avisos de cambio
// por categoría a los suscriptores. Es at-least-once: el aviso sólo dice
// "algo cambió", el suscriptor debe volver a consultar.
type Listener struct {
	pool *pgxpool.Pool
	log  zerolog.Logger

	mu   sync.Mutex
	subs map[entity.Category][]chan struct{}
}

// NewListener construye el listener sobre el pool compartido.
func NewListener(pool *pgxpool.Pool, log zerolog.Logger) *Listener {
	return &Listener{
		pool: pool,
		log:  log.With().Str("component", "pg_listener").Logger(),
		subs: make(map[entity.Category][]chan struct{}),
	}
}

// Run mantiene una conexión dedicada en LISTEN hasta que ctx termina,
// reconectando con espera fija si la conexión se cae.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.log.Warn().Err(err).Msg("conexión LISTEN perdida, reintentando")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+stockChannel); err != nil {
		return err
	}
	l.log.Info().Str("channel", stockChannel).Msg("escuchando cambios de stock")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.dispatch(entity.Category(n.Payload))
	}
}

// dispatch despierta a los suscriptores de la categoría sin bloquearse:
// un canal lleno ya tiene un aviso pendiente, no hace falta otro.
func (l *Listener) dispatch(cat entity.Category) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ch := range l.subs[cat] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registra fn para la categoría y la invoca en cada aviso hasta
// que ctx termina. Bloquea al llamante; pensado para la goroutine del
// handler SSE.
func (l *Listener) Subscribe(ctx context.Context, category entity.Category, fn func()) error {
	ch := make(chan struct{}, 1)

	l.mu.Lock()
	l.subs[category] = append(l.subs[category], ch)
	l.mu.Unlock()

	defer l.unsubscribe(category, ch)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
			fn()
		}
	}
}

func (l *Listener) unsubscribe(cat entity.Category, ch chan struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	chans := l.subs[cat]
	for i, c := range chans {
		if c == ch {
			l.subs[cat] = append(chans[:i], chans[i+1:]...)
			break
		}
	}
}
