package services

import (
	"cocomanthra_server/database"
	"cocomanthra_server/store"
	"cocomanthra_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	CacheService   *CacheService
	HealthService  *HealthService
	InquiryService *InquiryService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, catalog *store.CatalogStore) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	healthService := NewHealthService(logger, db, catalog)
	inquiryService := NewInquiryService(logger, cfg)

	return &ServiceManager{
		CacheService:   cacheService,
		HealthService:  healthService,
		InquiryService: inquiryService,
	}
}
