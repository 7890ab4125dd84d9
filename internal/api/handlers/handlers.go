package handlers

import (
	"resource-portal/internal/access"
	"resource-portal/internal/aggregate"
	"resource-portal/internal/config"
	"resource-portal/internal/metadata"
	"resource-portal/internal/store"

	"go.uber.org/zap"
)

var (
	cfg      *config.Config
	stores   *store.Store
	shareSvc *access.ShareService
	viewSvc  *aggregate.Service
	aiClient *metadata.Client
	log      *zap.Logger
)

// Init wires the handler package's dependencies once at startup.
func Init(c *config.Config, s *store.Store, logger *zap.Logger) {
	cfg = c
	stores = s
	log = logger
	shareSvc = access.NewShareService(s, logger)
	viewSvc = aggregate.NewService(s, logger)
	aiClient = metadata.NewClient(c.AI, logger)
}
