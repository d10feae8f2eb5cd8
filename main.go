// @title                       ABC Hotels API
// @version                     1.0
// @description                 Room booking, catalog, careers and contact endpoints.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"abchotels/commands"
	"abchotels/config"
	"abchotels/constants"
	"abchotels/controllers"
	_ "abchotels/docs"
	"abchotels/dto"
	"abchotels/jobs"
	"abchotels/middleware"
	"abchotels/repository"
	"abchotels/routes"
	"abchotels/services"
	"abchotels/services/logger"
	"abchotels/services/notification"

	"github.com/olahol/melody"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "abchotels",
		Usage:  "hotel booking backend",
		Action: serve,
		Commands: []*cli.Command{
			{Name: "serve", Usage: "run the HTTP server", Action: serve},
			{Name: "migrate", Usage: "create or update tables", Action: migrate},
			{Name: "seed", Usage: "load the bundled sample data", Action: seed},
			{
				Name:   "import",
				Usage:  "upsert catalog and careers data from CSV files",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "dir", Value: "csv", Usage: "directory holding the CSV files"}},
				Action: importCSV,
			},
			{
				Name:   "export",
				Usage:  "write catalog and careers data as CSV files",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "dir", Value: "exports", Usage: "output directory"}},
				Action: exportCSV,
			},
			{
				Name:  "create-staff",
				Usage: "create a staff or admin account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.IntFlag{Name: "role", Value: constants.RoleStaff, Usage: "1 staff, 2 admin"},
				},
				Action: createStaff,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

// bootstrap loads config, connects storage and builds the logger shared by every subcommand
func bootstrap() (*config.App, *logger.DefaultLogger, error) {
	cfg := config.Load()
	appLog := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel), cfg.Env)
	app, err := config.InitApp(cfg)
	if err != nil {
		return nil, nil, err
	}
	return app, appLog, nil
}

func repositories(app *config.App) commands.Repositories {
	return commands.Repositories{
		Cities:    repository.NewCityRepository(app.DB),
		RoomTypes: repository.NewRoomTypeRepository(app.DB),
		Rooms:     repository.NewRoomRepository(app.DB),
		Careers:   repository.NewCareersRepository(app.DB),
		Content:   repository.NewContentRepository(app.DB),
	}
}

func migrate(c *cli.Context) error {
	app, appLog, err := bootstrap()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := config.Migrate(app.DB); err != nil {
		return err
	}
	appLog.Info("migration complete")
	return nil
}

func seed(c *cli.Context) error {
	app, appLog, err := bootstrap()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := config.Migrate(app.DB); err != nil {
		return err
	}
	return commands.Run(c.Context, appLog, commands.NewSeedCommand(repositories(app), appLog))
}

func importCSV(c *cli.Context) error {
	app, appLog, err := bootstrap()
	if err != nil {
		return err
	}
	defer app.Close()

	dir := c.String("dir")
	return commands.Run(c.Context, appLog, commands.NewImportCommand(os.DirFS(dir), repositories(app), appLog))
}

func exportCSV(c *cli.Context) error {
	app, appLog, err := bootstrap()
	if err != nil {
		return err
	}
	defer app.Close()

	return commands.Run(c.Context, appLog, commands.NewExportCommand(c.String("dir"), repositories(app), appLog))
}

func createStaff(c *cli.Context) error {
	app, appLog, err := bootstrap()
	if err != nil {
		return err
	}
	defer app.Close()

	tokens := services.NewTokenService(app.Config.AccessTokenSecret, app.Config.AccessTokenTTL)
	auth := services.NewAuthService(repository.NewUserRepository(app.DB), tokens, nil, appLog)
	input := dto.CreateStaffInput{
		Name:     c.String("name"),
		Email:    c.String("email"),
		Password: c.String("password"),
		Role:     c.Int("role"),
	}
	return commands.Run(c.Context, appLog, commands.NewCreateStaffCommand(auth, input, appLog))
}

func serve(c *cli.Context) error {
	app, appLog, err := bootstrap()
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.Config
	if cfg.AccessTokenSecret == "" {
		return errors.New("SECRET_KEY_ACCESS_TOKEN is required")
	}

	cities := repository.NewCityRepository(app.DB)
	roomTypes := repository.NewRoomTypeRepository(app.DB)
	rooms := repository.NewRoomRepository(app.DB)
	bookings := repository.NewBookingRepository(app.DB)
	careersRepo := repository.NewCareersRepository(app.DB)
	contentRepo := repository.NewContentRepository(app.DB)
	users := repository.NewUserRepository(app.DB)

	media, err := services.NewMediaStore(cfg, appLog)
	if err != nil {
		return err
	}

	notifiers := notification.Multi{notification.NewMelodyService(app.Melody, constants.RoleStaff)}
	var kafkaService *notification.KafkaService
	if len(cfg.KafkaBrokers) > 0 {
		kafkaService = notification.NewKafkaService(notification.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)).
			WithTimeout(cfg.KafkaPublishTimeout)
		notifiers = append(notifiers, kafkaService)
		appLog.Info("publishing events to kafka topic %s", cfg.KafkaTopic)
	}

	var google services.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = services.NewGoogleVerifier(cfg.GoogleClientID)
	}

	tokens := services.NewTokenService(cfg.AccessTokenSecret, cfg.AccessTokenTTL)
	availability := services.NewAvailabilityService(cities, roomTypes, rooms, bookings, services.NewCache(app.Redis), cfg.CacheTTL, appLog)
	bookingService := services.NewBookingService(rooms, bookings, notifiers, appLog, cfg.Location())
	catalog := services.NewCatalogService(cities, roomTypes, rooms, availability, media, appLog)
	careers := services.NewCareersService(careersRepo, media, notifiers, appLog)
	content := services.NewContentService(contentRepo, notifiers, appLog)
	auth := services.NewAuthService(users, tokens, google, appLog)

	if err := jobs.InitCronJobs(app.Cron, bookingService, availability, appLog); err != nil {
		return err
	}

	app.Melody.HandleConnect(func(s *melody.Session) {
		appLog.Debug("staff socket connected from %s", s.Request.RemoteAddr)
	})

	healthChecks := map[string]controllers.Pinger{}
	if sqlDB, err := app.DB.DB(); err == nil {
		healthChecks["database"] = sqlDB
	}
	if app.Redis != nil {
		healthChecks["redis"] = controllers.PingFunc(func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		})
	}

	router := app.Router
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(appLog.Slog()),
		middleware.AccessLog(appLog.Slog()),
		middleware.ErrorHandler(),
	)
	routes.SetupRoutes(router, routes.Handlers{
		Health:   controllers.NewHealthController(healthChecks),
		Catalog:  controllers.NewCatalogController(catalog),
		Bookings: controllers.NewBookingController(bookingService),
		Content:  controllers.NewContentController(content),
		Careers:  controllers.NewCareersController(careers),
		Auth:     controllers.NewAuthController(auth),
	}, tokens, app.Melody)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	appLog.Info("shutting down")
	<-app.Cron.Stop().Done()
	if err := app.Melody.Close(); err != nil {
		appLog.Error("close websocket hub: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("http shutdown: %v", err)
	}
	if kafkaService != nil {
		if err := kafkaService.Close(); err != nil {
			appLog.Error("close kafka writer: %v", err)
		}
	}
	return nil
}
