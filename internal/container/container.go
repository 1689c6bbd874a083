package container

import (
	"context"

	"chms-be/internal/config"
	"chms-be/internal/repository"
	"chms-be/internal/service"
	"chms-be/internal/service/auth"
	"chms-be/pkg/database"
	"chms-be/pkg/logger"
	"chms-be/pkg/redis"
	"chms-be/pkg/supabase"
)

// Container holds all application dependencies. Everything is constructed
// once at startup so request handling never allocates services.
type Container struct {
	Config *config.Config
	Logger *logger.Logger

	DB       *database.PostgresDB
	Redis    *redis.Client
	Supabase *supabase.Client

	MemberRepo     *repository.MemberRepository
	InvitationRepo *repository.InvitationRepository
	RoleRepo       *repository.RoleRepository
	TeamRepo       *repository.TeamRepository
	TeamMemberRepo *repository.TeamMemberRepository
	GroupRepo      *repository.GroupRepository
	CalendarRepo   *repository.CalendarRepository
	DocumentRepo   *repository.DocumentRepository

	AuthService       *auth.Service
	CacheService      *service.CacheService
	MemberService     *service.MemberService
	InvitationService *service.InvitationService
	PermissionService *service.PermissionService
	TeamService       *service.TeamService
	GroupService      *service.GroupService
	CalendarService   *service.CalendarService
	DocumentService   *service.DocumentService
}

// New creates and wires all application dependencies
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DatabaseReadURL)
	if err != nil {
		return nil, err
	}

	// Redis is optional; without it the cache layer degrades to pass-through
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(cfg.RedisURL, cfg.Environment)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, caching disabled")
			redisClient = nil
		}
	}

	supabaseClient := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, log)

	c := &Container{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Redis:    redisClient,
		Supabase: supabaseClient,

		MemberRepo:     repository.NewMemberRepository(db),
		InvitationRepo: repository.NewInvitationRepository(db),
		RoleRepo:       repository.NewRoleRepository(db),
		TeamRepo:       repository.NewTeamRepository(db),
		TeamMemberRepo: repository.NewTeamMemberRepository(db),
		GroupRepo:      repository.NewGroupRepository(db),
		CalendarRepo:   repository.NewCalendarRepository(db),
		DocumentRepo:   repository.NewDocumentRepository(db),
	}

	zlog := log.Logger
	c.AuthService = auth.NewService(cfg.SupabaseJWTSecret, log)
	c.CacheService = service.NewCacheService(redisClient, zlog)
	c.MemberService = service.NewMemberService(c.MemberRepo, supabaseClient, c.CacheService, zlog)
	c.InvitationService = service.NewInvitationService(c.InvitationRepo, supabaseClient, c.CacheService, zlog)
	c.PermissionService = service.NewPermissionService(c.RoleRepo, c.CacheService, zlog)
	c.TeamService = service.NewTeamService(c.TeamRepo, c.TeamMemberRepo, c.CacheService, zlog)
	c.GroupService = service.NewGroupService(c.GroupRepo, c.TeamMemberRepo, c.CacheService, zlog)
	c.CalendarService = service.NewCalendarService(c.CalendarRepo, c.CacheService, zlog)
	c.DocumentService = service.NewDocumentService(c.DocumentRepo, supabaseClient, cfg.StorageBucket, c.CacheService, zlog)

	return c, nil
}

// GetCacheService returns the singleton cache service instance
func (c *Container) GetCacheService() *service.CacheService {
	return c.CacheService
}

// Close releases held connections in reverse dependency order
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.WithError(err).Error("Failed to close Redis connection")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
