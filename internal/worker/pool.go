// Package worker implementa la cola de notificaciones sobre Redis:
// un Dispatcher que encola eventos de transición y un pool de workers
// que los consume y envía los emails.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/medtrack/medtrack-api/internal/application/requisition"
	"github.com/medtrack/medtrack-api/pkg/logger"
)

// QueueNotification es la lista de Redis donde se encolan los eventos.
const QueueNotification = "jobs:notification"

var _ requisition.Notifier = (*Dispatcher)(nil)

// Dispatcher encola eventos de transición en Redis para entrega asíncrona.
type Dispatcher struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewDispatcher construye el dispatcher.
func NewDispatcher(rdb *redis.Client, log *logger.Logger) *Dispatcher {
	return &Dispatcher{rdb: rdb, log: log}
}

// NotifyTransition serializa el evento y lo empuja a la cola. El caller
// ya confirmó la transición: un fallo aquí solo se loguea y se devuelve
// para que el caller decida (el workflow lo ignora).
func (d *Dispatcher) NotifyTransition(ctx context.Context, ev requisition.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("dispatcher: serializar evento: %w", err)
	}
	if err := d.rdb.LPush(ctx, QueueNotification, payload).Err(); err != nil {
		d.log.Error().Err(err).
			Str("requisition_id", ev.RequisitionID).
			Str("action", ev.Action).
			Msg("no se pudo encolar la notificación")
		return fmt.Errorf("dispatcher: encolar evento: %w", err)
	}
	d.log.Debug().
		Str("requisition_id", ev.RequisitionID).
		Str("action", ev.Action).
		Int("recipients", len(ev.Recipients)).
		Msg("notificación encolada")
	return nil
}

// Mailer es lo que un worker necesita para entregar una notificación.
type Mailer interface {
	Send(to []string, subject, body, pdfPath string) error
}

// StartWorkerPool lanza numWorkers goroutines consumiendo la cola con
// BRPop. Los workers terminan cuando se cancela ctx. Devuelve un
// WaitGroup para esperar el drenado en el shutdown.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, mailer Mailer, numWorkers int, log *logger.Logger) *sync.WaitGroup {
	var wg sync.WaitGroup
	for i := 1; i <= numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, id, rdb, mailer, log)
		}(i)
	}
	log.Info().Int("workers", numWorkers).Msg("pool de notificaciones iniciado")
	return &wg
}

func runWorker(ctx context.Context, id int, rdb *redis.Client, mailer Mailer, log *logger.Logger) {
	wlog := log.With().Int("worker", id).Logger()
	for {
		select {
		case <-ctx.Done():
			wlog.Info().Msg("worker detenido")
			return
		default:
		}

		// BRPop con timeout corto para poder chequear ctx entre esperas.
		res, err := rdb.BRPop(ctx, 5*time.Second, QueueNotification).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			wlog.Error().Err(err).Msg("error leyendo la cola")
			time.Sleep(time.Second)
			continue
		}
		if len(res) < 2 {
			continue
		}

		var ev requisition.Event
		if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
			wlog.Error().Err(err).Msg("evento corrupto en la cola, descartado")
			continue
		}
		handleEvent(&wlog, mailer, ev)
	}
}

// handleEvent entrega el evento por email. Fallos solo se loguean: la
// transición ya fue confirmada y la notificación es best-effort.
func handleEvent(wlog *zerolog.Logger, mailer Mailer, ev requisition.Event) {
	if len(ev.Recipients) == 0 {
		return
	}
	if mailer == nil {
		wlog.Warn().
			Str("requisition_id", ev.RequisitionID).
			Msg("SMTP no configurado, notificación descartada")
		return
	}
	if err := mailer.Send(ev.Recipients, ev.Subject, ev.Body, ev.PDFPath); err != nil {
		wlog.Error().Err(err).
			Str("requisition_id", ev.RequisitionID).
			Str("action", ev.Action).
			Msg("no se pudo enviar la notificación")
		return
	}
	wlog.Info().
		Str("requisition_id", ev.RequisitionID).
		Str("action", ev.Action).
		Int("recipients", len(ev.Recipients)).
		Msg("notificación enviada")
}
