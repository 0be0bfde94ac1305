package inventory

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"samsariya/internal/inventory/controller"
	"samsariya/internal/inventory/repository"
	"samsariya/internal/inventory/service"
)

// NewModule wires the inventory module. The service is returned alongside
// the controller so main can run the availability seeding at startup.
func NewModule(db *mongo.Database, logger *zap.Logger) (*controller.InventoryController, *service.AvailabilityService) {
	repo := repository.NewMongoInventoryRepository(db)
	svc := service.NewAvailabilityService(repo, logger)
	return controller.NewInventoryController(svc, logger), svc
}
