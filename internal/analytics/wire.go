package analytics

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"samsariya/internal/analytics/controller"
	"samsariya/internal/analytics/service"
	orderrepo "samsariya/internal/order/repository"
)

func NewModule(db *mongo.Database, logger *zap.Logger) *controller.AnalyticsController {
	orders := orderrepo.NewMongoOrderRepository(db)
	svc := service.NewAnalyticsService(orders, logger)
	return controller.NewAnalyticsController(svc, logger)
}
