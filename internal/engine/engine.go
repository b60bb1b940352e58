package engine

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"modconsole.com/internal/config"
	"modconsole.com/internal/constants"
	"modconsole.com/internal/event"
	"modconsole.com/internal/infra"
	"modconsole.com/internal/modapi"
	"modconsole.com/internal/service"
)

// Engine 是控制台的协调器，负责：
// 1. 持有审核服务客户端与会话存储
// 2. 通过事件总线把转发的写操作交给审计服务
// 3. 运行审计保留期清理
type Engine struct {
	cfg *config.Config

	rdb *redis.Client
	db  *infra.Database
	bus *event.Bus

	client   *modapi.Client
	sessions *infra.SessionStore
	audit    *service.AuditServiceImpl
	recorder *service.ActionPublisher

	ctx    context.Context
	cancel context.CancelFunc
}

func NewEngine(cfg *config.Config, db *infra.Database, rdb *redis.Client) *Engine {
	ctx, cancel := context.WithCancel(context.Background())

	bufferSize := cfg.Audit.BufferSize
	if bufferSize <= 0 {
		bufferSize = 256
	}
	bus := event.NewBus(bufferSize)

	return &Engine{
		cfg:      cfg,
		rdb:      rdb,
		db:       db,
		bus:      bus,
		client:   modapi.NewClient(cfg.API),
		sessions: infra.NewSessionStore(rdb, cfg.Session.TTL),
		audit:    service.NewAuditService(db.DB),
		recorder: service.NewActionPublisher(bus),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start 订阅审计事件并启动后台进程
func (e *Engine) Start(ctx context.Context) {
	log.Println("Engine: Starting...")

	for _, eventType := range constants.ModerationEvents {
		e.bus.Subscribe(eventType, e.audit.HandleEvent)
	}

	if e.cfg.Audit.Retention > 0 {
		go e.runRetentionLoop(e.cfg.Audit.Retention, e.cfg.Audit.PruneInterval)
	}

	log.Println("Engine: Started successfully")
}

// runRetentionLoop 每隔 interval 删除超过保留期的审计记录
func (e *Engine) runRetentionLoop(retention, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	log.Printf("Engine: Audit retention loop started (retention %s)", retention)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		e.pruneAudit(retention)

		select {
		case <-e.ctx.Done():
			log.Println("Engine: Audit retention loop stopped")
			return
		case <-ticker.C:
		}
	}
}

func (e *Engine) pruneAudit(retention time.Duration) {
	n, err := e.audit.Prune(e.ctx, time.Now().Add(-retention))
	if err != nil {
		if e.ctx.Err() == nil {
			log.Printf("Engine: Failed to prune audit trail: %v", err)
		}
		return
	}
	if n > 0 {
		log.Printf("Engine: Pruned %d audit entries", n)
	}
}

// Stop 停止后台进程，并等待队列中的审计事件落库
func (e *Engine) Stop() {
	log.Println("Engine: Stopping...")
	e.cancel()
	e.bus.Shutdown()
}

func (e *Engine) GetConfig() *config.Config {
	return e.cfg
}

func (e *Engine) GetClient() *modapi.Client {
	return e.client
}

func (e *Engine) GetSessionStore() *infra.SessionStore {
	return e.sessions
}

func (e *Engine) GetAuditService() *service.AuditServiceImpl {
	return e.audit
}

func (e *Engine) GetRecorder() *service.ActionPublisher {
	return e.recorder
}

func (e *Engine) GetRedisClient() *redis.Client {
	return e.rdb
}

func (e *Engine) GetDatabase() *infra.Database {
	return e.db
}
