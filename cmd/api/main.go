package main

import (
	"context"
	"log"
	"time"

	"delivery-tracker/internal/core/cache"
	"delivery-tracker/internal/core/config"
	"delivery-tracker/internal/core/logger"
	"delivery-tracker/internal/core/routing"
	"delivery-tracker/internal/core/server"
	orderadapter "delivery-tracker/internal/features/orders/adapters"
	orderhandler "delivery-tracker/internal/features/orders/handler"
	orderservice "delivery-tracker/internal/features/orders/service"
	shippingadapters "delivery-tracker/internal/features/shipping/adapters"
	shippinghandler "delivery-tracker/internal/features/shipping/handler"
	shippingservice "delivery-tracker/internal/features/shipping/service"
	trackingadapters "delivery-tracker/internal/features/tracking/adapters"
	trackinghandler "delivery-tracker/internal/features/tracking/handler"
	trackingservice "delivery-tracker/internal/features/tracking/service"
	"delivery-tracker/internal/geo"

	"go.uber.org/zap"
)

// @title Delivery Tracker API
// @version 1.0
// @description Restaurant delivery tracking, ETA estimation and shipping cost API backed by WooCommerce.
// @contact.name API Support
// @contact.email support@deliverytracker.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx := context.Background()

	// Redis backs agent fixes, delivery zones and the geocode cache
	redisCache, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := redisCache.Ping(pingCtx); err != nil {
		cancel()
		l.Fatal("Redis connection failed", zap.Error(err))
	}
	cancel()
	l.Info("Redis connection verified")

	// Initialize Order Adapter and run Health Check
	wcAdapter := orderadapter.NewWooCommerceAdapter(cfg.WooCommerce)
	if err := wcAdapter.HealthCheck(); err != nil {
		l.Fatal("WooCommerce Health Check Failed", zap.Error(err))
	}
	l.Info("WooCommerce connection verified")

	origin := geo.Coordinate{Lat: cfg.Restaurant.Lat, Lng: cfg.Restaurant.Lng}
	if err := origin.Validate(); err != nil {
		l.Fatal("Invalid restaurant coordinates", zap.Error(err))
	}

	// Routing provider and distance resolver
	var provider routing.RouteProvider
	if cfg.Routing.Enabled {
		provider = routing.NewOpenRouteAdapter(cfg.Routing, redisCache)
		l.Info("Routing service enabled", zap.String("base_url", cfg.Routing.BaseURL))
	} else {
		l.Info("Routing service disabled, using great-circle distances")
	}
	resolver := routing.NewResolver(provider)

	// Seed delivery zones from configuration
	zoneRepo := shippingadapters.NewRedisZoneRepository(redisCache)
	zones, err := shippingadapters.ParseZones(cfg.Shipping.ZonesJSON)
	if err != nil {
		l.Fatal("Invalid DELIVERY_ZONES configuration", zap.Error(err))
	}
	if len(zones) > 0 {
		if err := zoneRepo.Replace(ctx, zones); err != nil {
			l.Fatal("Failed to seed delivery zones", zap.Error(err))
		}
		l.Info("Delivery zones seeded", zap.Int("count", len(zones)))
	}

	// Initialize Order Service & Handler
	orderService := orderservice.NewOrderService(wcAdapter)
	orderHandler := orderhandler.NewOrderHandler(orderService)

	// Initialize Shipping Service & Handler
	shippingSvc := shippingservice.NewShippingService(cfg.Shipping, origin, resolver, provider, zoneRepo)
	shippingHdl := shippinghandler.NewShippingHandler(shippingSvc)

	// Initialize Tracking Service & Handler
	agentRepo := trackingadapters.NewRedisAgentRepository(
		redisCache,
		time.Duration(cfg.Tracking.AgentFixTTLMinutes)*time.Minute,
	)
	trackingSvc := trackingservice.NewTrackingService(orderService, agentRepo, resolver, origin, cfg.Tracking)
	trackingHdl := trackinghandler.NewTrackingHandler(trackingSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/orders/:id", orderHandler.GetOrder)
	srv.App.Get("/orders/:id/track", trackingHdl.TrackOrder)
	srv.App.Post("/shipping/quote", shippingHdl.GetQuote)
	srv.App.Post("/agents/:id/location", trackingHdl.RecordLocation)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
