package handler

import (
	"context"

	"github.com/smallwins/internal/logging"
	"github.com/smallwins/internal/realtime"
	"github.com/smallwins/internal/service"
	"gorm.io/gorm"
)

// Options 是 API 的可选依赖，未提供时使用本地实现
type Options struct {
	Vision service.Estimator
	Health service.HealthProvider
	Hub    *realtime.Hub
	Logger logging.Logger
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db      *gorm.DB
	tracker *service.TrackerService
	vision  *service.VisionService
	barcode *service.BarcodeService
	health  service.HealthProvider
	hub     *realtime.Hub
	logger  logging.Logger
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	health := opts.Health
	if health == nil {
		health = service.MockHealthProvider{Enabled: true}
	}

	hub := opts.Hub
	if hub == nil {
		hub = realtime.NewHub(logger)
	}

	return &API{
		db:      db,
		tracker: service.NewTrackerService(db, logger),
		vision:  service.NewVisionService(opts.Vision, logger),
		barcode: service.NewBarcodeService(),
		health:  health,
		hub:     hub,
		logger:  logger,
	}
}

// Tracker exposes the tracker for callers that need to adjust its clock.
func (a *API) Tracker() *service.TrackerService {
	return a.tracker
}

// publishToday 把最新的当天视图推送给该用户的实时连接
func (a *API) publishToday(ctx context.Context, userID uint, today *service.Today) {
	if today == nil {
		return
	}
	a.hub.Broadcast(ctx, userID, realtime.Event{Type: "today", Data: todayToPayload(today)})
}
