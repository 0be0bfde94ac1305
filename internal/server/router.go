package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	admincontroller "samsariya/internal/admin/controller"
	analyticscontroller "samsariya/internal/analytics/controller"
	inventorycontroller "samsariya/internal/inventory/controller"
	ordercontroller "samsariya/internal/order/controller"
)

type RouterDeps struct {
	Orders    *ordercontroller.OrderController
	Inventory *inventorycontroller.InventoryController
	Analytics *analyticscontroller.AnalyticsController
	Admin     *admincontroller.AdminController
	Directory AdminDirectory
	AdminIDs  []int64
	Logger    *zap.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(deps.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AdminAuth(deps.AdminIDs, deps.Directory, deps.Logger))

		r.Get("/orders/new", deps.Orders.HandleListNew)
		r.Get("/orders/{orderID}", deps.Orders.HandleGet)
		r.Post("/orders/{orderID}/status", deps.Orders.HandleTransition)

		r.Get("/inventory", deps.Inventory.HandleList)
		r.Post("/inventory", deps.Inventory.HandleAdd)
		r.Delete("/inventory/{key}", deps.Inventory.HandleRemove)
		r.Post("/inventory/{key}/availability", deps.Inventory.HandleSetAvailability)
		r.Post("/inventory/{key}/toggle", deps.Inventory.HandleToggle)

		r.Get("/analytics/summary", deps.Analytics.HandleSummary)
		r.Get("/analytics/earnings", deps.Analytics.HandleEarnings)

		r.Get("/config", deps.Admin.HandleConfig)
		r.Post("/broadcast", deps.Admin.HandleBroadcast)
	})

	return r
}
