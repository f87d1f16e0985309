package http

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// EventsHandler expone el canal de avisos de cambio como Server-Sent Events.
// Cada evento dice "algo cambió en la categoría": la UI debe volver a
// consultar, nunca aplicar el evento como delta.
type EventsHandler struct {
	sub repository.ChangeSubscriber
}

// NewEventsHandler construye el handler.
func NewEventsHandler(sub repository.ChangeSubscriber) *EventsHandler {
	return &EventsHandler{sub: sub}
}

// Stream godoc
// @Summary      Flujo SSE de avisos de cambio por categoría
// @Tags         events
// @Security     Bearer
// @Produce      text/event-stream
// @Param        category  path  string  true  "cardboard | ink | polymer | die"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/events/{category} [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	cat := entity.Category(c.Params("category"))
	if !cat.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoría inválida"})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := make(chan struct{}, 1)
		go func() {
			_ = h.sub.Subscribe(ctx, cat, func() {
				select {
				case events <- struct{}{}:
				default:
				}
			})
		}()

		// Latido periódico para detectar clientes desconectados: el error
		// de Flush es la única señal de cierre que tenemos aquí.
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-events:
				fmt.Fprintf(w, "event: reload\ndata: %s\n\n", cat)
				if err := w.Flush(); err != nil {
					return
				}
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}
