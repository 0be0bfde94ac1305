package admin

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"samsariya/internal/admin/controller"
	"samsariya/internal/admin/repository"
	"samsariya/internal/config"
	"samsariya/internal/notifier"
)

// NewModule wires the admin module. The repository is returned as well so
// the router's auth middleware can consult the admins collection.
func NewModule(db *mongo.Database, channel notifier.Channel, cfg *config.Config, logger *zap.Logger) (*controller.AdminController, *repository.MongoAdminRepository) {
	repo := repository.NewMongoAdminRepository(db)
	return controller.NewAdminController(repo, channel, cfg, logger), repo
}
