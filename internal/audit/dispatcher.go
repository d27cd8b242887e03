package audit

import (
	"log"

	"github.com/fidelize/loyalty-admin/internal/models"
)

// Dispatcher decouples audit durability from the request path. Entries go
// through a buffered queue drained by a single worker; a full queue drops
// the entry and a sink failure is only logged. Audit nunca quebra a API.
type Dispatcher struct {
	sink  Sink
	queue chan models.AuditLog
}

func NewDispatcher(sink Sink, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 100
	}
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan models.AuditLog, queueSize),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for entry := range d.queue {
		if err := d.sink.Write(entry); err != nil {
			log.Println("audit error:", err)
		}
	}
}

// Dispatch enqueues without blocking. Callers get no error: the contract
// is best-effort, fail-open.
func (d *Dispatcher) Dispatch(entry models.AuditLog) {
	select {
	case d.queue <- entry:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca bloquear a request)
		log.Println("audit queue full, dropping entry")
	}
}

// Close stops the worker after draining what is already queued.
func (d *Dispatcher) Close() {
	close(d.queue)
}
