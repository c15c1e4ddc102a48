package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tigawane/internal/bootstrap/config"
	"tigawane/internal/bootstrap/database"
	"tigawane/internal/bootstrap/logging"
	cacheinfra "tigawane/internal/infrastructure/cache"
	"tigawane/internal/infrastructure/feed"
	"tigawane/internal/infrastructure/geocode"
	sqliterepo "tigawane/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "tigawane/internal/infrastructure/persistence/sqlite/uow"
	"tigawane/internal/infrastructure/storage"
	"tigawane/internal/ports"
	"tigawane/internal/transport/httpapi"
	"tigawane/internal/usecase/location"
	"tigawane/internal/usecase/sharing"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewItemRepository,
			fx.As(new(ports.ItemRepository)),
		),
		fx.Annotate(
			sqliterepo.NewClaimRepository,
			fx.As(new(ports.ClaimRepository)),
		),
		fx.Annotate(
			sqliterepo.NewProfileRepository,
			fx.As(new(ports.ProfileRepository)),
		),
		fx.Annotate(
			sqliterepo.NewNotificationRepository,
			fx.As(new(ports.NotificationRepository)),
		),
		fx.Annotate(
			sqliterepo.NewCollaborationRepository,
			fx.As(new(ports.CollaborationRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(provideGeocoder),
	fx.Provide(provideResolver),
	fx.Provide(provideObjectStore),
	fx.Provide(provideChangeFeed),
	fx.Provide(provideCaches),
	fx.Provide(provideCatalog),
	fx.Provide(provideService),
	fx.Provide(provideHTTPServer),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

func provideGeocoder(cfg config.Config) ports.Geocoder {
	return geocode.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout)
}

func provideResolver(cfg config.Config, geocoder ports.Geocoder) *location.Resolver {
	return location.NewResolver(geocoder, cfg.Resolver.GeocodeTimeout, cfg.Resolver.LocationTimeout)
}

func provideObjectStore(cfg config.Config) ports.ObjectStore {
	return storage.NewStore(cfg.Storage.Root, cfg.Storage.BaseURL)
}

func provideChangeFeed(lc fx.Lifecycle) ports.ChangeFeed {
	broker := feed.NewBroker()
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			broker.Close()
			return nil
		},
	})
	return broker
}

// provideCaches builds the cache namespaces and ties the sweep loop to the
// fx lifecycle, so the loop starts with the app and stops with it.
func provideCaches(lc fx.Lifecycle, ctx context.Context, cfg config.Config) sharing.Caches {
	profiles := cacheinfra.NewMemory("profiles", cfg.Cache.Profiles.MaxEntries, cfg.Cache.Profiles.TTL)
	stats := cacheinfra.NewMemory("stats", cfg.Cache.Stats.MaxEntries, cfg.Cache.Stats.TTL)
	items := cacheinfra.NewMemory("items", cfg.Cache.Items.MaxEntries, cfg.Cache.Items.TTL)
	nearby := cacheinfra.NewMemory("nearby", cfg.Cache.Nearby.MaxEntries, cfg.Cache.Nearby.TTL)

	registry := cacheinfra.NewRegistry(cfg.Cache.SweepInterval, profiles, stats, items, nearby)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			registry.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			registry.Stop()
			return nil
		},
	})

	return sharing.Caches{
		Profiles: profiles,
		Stats:    stats,
		Items:    items,
		Nearby:   nearby,
	}
}

func provideCatalog(cfg config.Config) (sharing.Catalog, error) {
	return sharing.LoadCatalog(cfg.App.CatalogFile)
}

func provideService(
	items ports.ItemRepository,
	claims ports.ClaimRepository,
	profiles ports.ProfileRepository,
	notifications ports.NotificationRepository,
	collaborations ports.CollaborationRepository,
	uow ports.UnitOfWork,
	resolver *location.Resolver,
	store ports.ObjectStore,
	changeFeed ports.ChangeFeed,
	caches sharing.Caches,
	catalog sharing.Catalog,
) *sharing.Service {
	return sharing.NewService(
		items,
		claims,
		profiles,
		notifications,
		collaborations,
		uow,
		resolver,
		store,
		changeFeed,
		caches,
		catalog,
	)
}

func provideHTTPServer(cfg config.Config, svc *sharing.Service, changeFeed ports.ChangeFeed) *httpapi.Server {
	return httpapi.NewServer(cfg.HTTP.Addr, svc, changeFeed, cfg.Storage.Root)
}
