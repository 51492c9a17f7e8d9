// The kiosk binary hosts the booking data layer behind a local HTTP
// server.  A thin UI in front of it gets the full booking flow while
// all coordination state lives here, in one process, next to the
// accessors for the three backend services.
package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinelux-booking/internal/catalog"
	"github.com/iliyamo/cinelux-booking/internal/config"
	"github.com/iliyamo/cinelux-booking/internal/events"
	"github.com/iliyamo/cinelux-booking/internal/gateway"
	"github.com/iliyamo/cinelux-booking/internal/handler"
	"github.com/iliyamo/cinelux-booking/internal/identity"
	"github.com/iliyamo/cinelux-booking/internal/metadata"
	"github.com/iliyamo/cinelux-booking/internal/router"
	"github.com/iliyamo/cinelux-booking/internal/scheduling"
	"github.com/iliyamo/cinelux-booking/internal/storage"
	"github.com/iliyamo/cinelux-booking/internal/store"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Env == "dev" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	session := storage.NewFileStore(cfg.SessionFile)

	// The Redis read cache is optional; a nil client leaves it off.
	cacheCfg := config.LoadCacheConfig()
	cache := gateway.NewCache(cacheCfg.Connect(), cacheCfg)
	if cache == nil {
		logrus.Info("gateway cache disabled")
	}

	identityGW := gateway.New(cfg.UserAPIURL, session)
	catalogGW := gateway.New(cfg.MovieAPIURL, session, gateway.WithCache(cache))
	schedulingGW := gateway.New(cfg.ScreeningAPIURL, session, gateway.WithCache(cache))

	identityAPI := identity.New(identityGW)
	catalogAPI := catalog.New(catalogGW)
	schedulingAPI := scheduling.New(schedulingGW)

	authStore := store.NewAuthStore(identityAPI, session)
	authStore.Init()
	bookingStore := store.NewBookingStore(schedulingAPI, events.NewPublisher(cfg.AMQPURL))

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(authStore))
	router.RegisterSession(e, handler.NewSessionHandler(bookingStore, authStore, catalogAPI))
	router.RegisterBrowse(e, handler.NewBrowseHandler(catalogAPI, schedulingAPI))

	metaCfg := config.LoadMetadataConfig()
	if metaCfg.APIKey != "" {
		metaGW := gateway.New(metaCfg.APIURL, session, gateway.WithCache(cache))
		router.RegisterMetadata(e, handler.NewMetadataHandler(metadata.New(metaGW, metaCfg)))
	} else {
		logrus.Info("metadata provider disabled (no TMDB_API_KEY)")
	}

	addr := ":" + cfg.KioskPort
	logrus.Infof("kiosk listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		logrus.Fatal(err)
	}
}
