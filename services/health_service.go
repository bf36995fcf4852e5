package services

import (
	"runtime"
	"time"

	"cocomanthra_server/database"
	"cocomanthra_server/store"

	"github.com/MonkyMars/gecho"
)

var uptimeStart time.Time

func init() {
	uptimeStart = time.Now()
}

type serverHealthStatus struct {
	Uptime       float64   `json:"uptime"`        // in seconds
	CurrentTime  time.Time `json:"current_time"`  // server current time
	ServiceAlive bool      `json:"service_alive"` // always true if service is running
	RamStats     *RamStats `json:"ram_stats"`
}

type RamStats struct {
	TotalMB     uint64 `json:"total_mb"`
	UsedMB      uint64 `json:"used_mb"`
	FreeMB      uint64 `json:"free_mb"`
	UsedPercent uint64 `json:"used_percent"`
}

type databaseHealthStatus struct {
	Connected      bool      `json:"connected"`
	LastChecked    time.Time `json:"last_checked"`
	ResponseTimeMs int64     `json:"response_time_ms"`
}

type catalogHealthStatus struct {
	Loading     bool      `json:"loading"`
	LoadError   string    `json:"load_error,omitempty"`
	LastLoad    time.Time `json:"last_load"`
	Products    int       `json:"products"`
	Collections int       `json:"collections"`
}

type HealthService struct {
	logger  *gecho.Logger
	db      *database.DB
	catalog *store.CatalogStore
	status  serverHealthStatus
}

func NewHealthService(logger *gecho.Logger, db *database.DB, catalog *store.CatalogStore) *HealthService {
	return &HealthService{
		logger:  logger,
		db:      db,
		catalog: catalog,
		status: serverHealthStatus{
			Uptime:       0,
			CurrentTime:  time.Now(),
			ServiceAlive: true,
			RamStats:     getRamStats(),
		},
	}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	freeMB := totalMB - usedMB
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() serverHealthStatus {
	hs.status.Uptime = time.Since(uptimeStart).Seconds()
	hs.status.CurrentTime = time.Now()
	hs.status.RamStats = getRamStats()
	return hs.status
}

func (hs *HealthService) GetDatabaseHealthStatus() (databaseHealthStatus, error) {
	start := time.Now()
	err := hs.db.Health()
	elapsed := time.Since(start).Milliseconds()

	dbStatus := databaseHealthStatus{
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: elapsed,
	}

	if err != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", err))
	}

	return dbStatus, err
}

// GetCatalogHealthStatus reports snapshot freshness. A non-empty load error
// means the store is serving stale data from before the failed reload.
func (hs *HealthService) GetCatalogHealthStatus() catalogHealthStatus {
	return catalogHealthStatus{
		Loading:     hs.catalog.Loading(),
		LoadError:   hs.catalog.LoadError(),
		LastLoad:    hs.catalog.LastLoad(),
		Products:    len(hs.catalog.Products()),
		Collections: len(hs.catalog.Collections()),
	}
}
