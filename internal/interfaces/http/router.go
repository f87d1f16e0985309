package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/orders"
	"github.com/tu-usuario/almacen-pro/internal/application/parties"
	"github.com/tu-usuario/almacen-pro/internal/application/stock"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CardboardUC *stock.CardboardUseCase
	StockUC     *stock.StockUseCase
	OrderUC     *orders.UseCase
	PartyUC     *parties.UseCase
	Subscriber  repository.ChangeSubscriber
	JWTSecret   string
}

// Router registra las rutas de la API. Todo va detrás del Bearer Token; las
// eliminaciones además exigen rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole("admin")

	// Cartón: ciclo de vida completo
	cardboard := api.Group("/cardboard")
	cardboardHandler := NewCardboardHandler(deps.CardboardUC)
	cardboard.Post("/", cardboardHandler.Add)
	cardboard.Get("/", cardboardHandler.List)
	cardboard.Get("/:code", cardboardHandler.Get)
	cardboard.Put("/:code", cardboardHandler.Modify)
	cardboard.Delete("/:code", admin, cardboardHandler.Remove)
	cardboard.Post("/:code/confirm", cardboardHandler.ConfirmSupplier)
	cardboard.Post("/:code/order", cardboardHandler.PlaceOrder)
	cardboard.Post("/:code/arrival", cardboardHandler.RecordArrival)
	cardboard.Post("/:code/unload", cardboardHandler.Unload)
	cardboard.Post("/:code/return-to-incoming", cardboardHandler.ReturnToIncoming)
	cardboard.Post("/:code/return-to-stock", cardboardHandler.ReturnToStock)
	cardboard.Get("/:code/movements", cardboardHandler.History)

	// Tinta, polímero, troquel: dos estados
	stockHandler := NewStockHandler(deps.StockUC)
	api.Get("/movements", stockHandler.RecentMovements)
	stockGroup := api.Group("/stock/:category")
	stockGroup.Post("/", stockHandler.Add)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/below-threshold", stockHandler.BelowThreshold)
	stockGroup.Get("/:code", stockHandler.Get)
	stockGroup.Put("/:code", stockHandler.Modify)
	stockGroup.Delete("/:code", admin, stockHandler.Remove)
	stockGroup.Patch("/:code/availability", stockHandler.SetAvailability)
	stockGroup.Post("/:code/load", stockHandler.Load)
	stockGroup.Post("/:code/unload", stockHandler.Unload)
	stockGroup.Get("/:code/movements", stockHandler.History)

	// Pedidos de compra N/YY
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:year/:seq", orderHandler.Get)
	ordersGroup.Post("/:year/:seq/duplicate", orderHandler.Duplicate)

	// Terceros: proveedores y clientes
	partiesGroup := api.Group("/parties/:type")
	partyHandler := NewPartyHandler(deps.PartyUC)
	partiesGroup.Post("/", partyHandler.Create)
	partiesGroup.Get("/", partyHandler.List)
	partiesGroup.Get("/:code", partyHandler.Get)
	partiesGroup.Put("/:code", partyHandler.Update)

	// Avisos de cambio para la UI (SSE)
	if deps.Subscriber != nil {
		eventsHandler := NewEventsHandler(deps.Subscriber)
		api.Get("/events/:category", eventsHandler.Stream)
	}
}
