package main

import (
	"os"

	"github.com/AbdulKus/jshop-admin/config"
	"github.com/AbdulKus/jshop-admin/internal/clients"
	"github.com/AbdulKus/jshop-admin/internal/console"
	"github.com/AbdulKus/jshop-admin/internal/handlers"
	"github.com/AbdulKus/jshop-admin/internal/middleware"
	"github.com/AbdulKus/jshop-admin/internal/proxy"
	"github.com/AbdulKus/jshop-admin/internal/settings"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	logger.Info("Starting jshop admin console...")

	store := settings.Open(cfg.SettingsFile, logger)
	catalogClient := clients.NewCatalogHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, logger)
	adminConsole := console.New(catalogClient, store, console.Options{
		APIBaseOverride: cfg.APIBaseURL,
		APIPort:         cfg.APIPort,
	}, logger)

	tmpl, err := handlers.LoadTemplates()
	if err != nil {
		logger.Fatalf("Failed to load templates: %v", err)
	}

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.UseRawPath = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.SetHTMLTemplate(tmpl)

	handlers.NewConsoleHandler(adminConsole, logger).RegisterRoutes(router)
	handlers.NewLotHandler(adminConsole, logger).RegisterRoutes(router)
	handlers.NewCategoryHandler(adminConsole, logger).RegisterRoutes(router)
	handlers.NewContactHandler(adminConsole, logger).RegisterRoutes(router)

	apiProxy := proxy.NewReverseProxy(logger)
	router.Any("/api/*proxyPath", proxy.ProxyHandler(apiProxy, catalogClient.BaseURL, logger))

	logger.Infof("Admin console listening on port %s", cfg.AdminPort)
	if err := router.Run(cfg.AdminPort); err != nil {
		logger.Errorf("Failed to start admin console: %v", err)
		os.Exit(1)
	}
}
