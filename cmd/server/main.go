package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"farm_market/internal/auth"
	"farm_market/internal/config"
	"farm_market/internal/controllers"
	"farm_market/internal/imagestore"
	"farm_market/internal/logger"
	"farm_market/internal/metrics"
	"farm_market/internal/middleware"
	"farm_market/internal/repository"
	"farm_market/internal/routes"
	"farm_market/internal/services"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Structured logging to a rotating file
	log, accessOut := logger.Setup(logger.Options{
		File:       cfg.LogFile,
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
	})
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDB(cfg, logger.NewGormLogger(log))
	if err != nil {
		return err
	}

	store, uploadDir, err := newImageStore(cfg)
	if err != nil {
		return err
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(cfg, db, store, uploadDir, issuer, log, accessOut),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"port":        cfg.AppPort,
			"image_store": cfg.ImageStore,
		}).Info("server running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newImageStore picks the image backend. uploadDir is non-empty only for the
// local store, whose files the router serves itself.
func newImageStore(cfg *config.Config) (imagestore.Store, string, error) {
	switch cfg.ImageStore {
	case "cloudinary":
		store, err := imagestore.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		return store, "", err
	case "local":
		store, err := imagestore.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	default:
		return nil, "", fmt.Errorf("unknown IMAGE_STORE %q", cfg.ImageStore)
	}
}

// newServer wires repositories, services and controllers into a gin engine.
func newServer(
	cfg *config.Config,
	db *gorm.DB,
	store imagestore.Store,
	uploadDir string,
	issuer *auth.Issuer,
	log *logrus.Logger,
	accessOut io.Writer,
) *gin.Engine {
	users := repository.NewUserRepository(db)
	shops := repository.NewShopRepository(db)
	products := repository.NewProductRepository(db)

	images := services.NewImageLifecycle(store, cfg.ImageFolder, log)
	authSvc := services.NewAuthService(users, issuer, log)
	shopSvc := services.NewShopService(shops, log)
	productSvc := services.NewProductService(shops, products, images, log)

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxImageBytes + 1<<20
	r.Use(
		gin.Recovery(),
		logger.RequestID(),
		logger.AccessLog(accessOut),
		metrics.Instrument(),
		middleware.CORS(cfg.AllowedOrigins()),
	)

	return routes.SetupRouter(r, routes.Deps{
		Auth:        controllers.NewAuthController(authSvc, log),
		Shops:       controllers.NewShopController(shopSvc, log),
		Products:    controllers.NewProductController(productSvc, cfg.MaxImageBytes, log),
		Tokens:      issuer,
		AuthLimiter: middleware.NewRateLimiter(cfg.AuthRatePerSec, cfg.AuthRateBurst),
		UploadDir:   uploadDir,
	})
}
