package order

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"samsariya/internal/notifier"
	"samsariya/internal/order/controller"
	"samsariya/internal/order/repository"
	"samsariya/internal/order/service"
)

func NewModule(db *mongo.Database, channel notifier.Channel, logger *zap.Logger) *controller.OrderController {
	repo := repository.NewMongoOrderRepository(db)
	dispatcher := notifier.NewDispatcher(channel, repo, logger)
	svc := service.NewStatusService(repo, dispatcher, logger)
	return controller.NewOrderController(svc, logger)
}
