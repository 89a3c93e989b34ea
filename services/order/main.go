package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func main() {
	_ = godotenv.Load()

	serviceName := getEnv("SERVICE_NAME", "order-service")

	// Initialize OpenTelemetry
	tp, err := initTracer(serviceName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	mp, err := initMetrics(serviceName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize store
	rdb, err := initRedis()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize redis")
	}

	// Initialize dependencies
	repository := NewOrderRepository(rdb)
	stockURL, paymentURL := downstreamBaseURLs()
	stockClient := NewStockClient(stockURL)
	paymentClient := NewPaymentClient(paymentURL)
	tracer := tp.Tracer(serviceName)
	useCase := NewOrderUseCase(repository, stockClient, paymentClient, tracer)
	handler := NewOrderHandler(useCase)

	// Setup Gin router
	r := gin.Default()
	r.Use(otelgin.Middleware(serviceName))

	r.GET("/health", handler.HealthCheck)

	r.POST("/create/:user_id", handler.CreateOrder)
	r.DELETE("/remove/:order_id", handler.RemoveOrder)
	r.POST("/addItem/:order_id/:item_id", handler.AddItem)
	r.DELETE("/removeItem/:order_id/:item_id", handler.RemoveItem)
	r.GET("/find/:order_id", handler.FindOrder)
	r.POST("/checkout/:order_id", handler.Checkout)

	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		log.Info().Str("port", port).Str("stock_url", stockURL).Str("payment_url", paymentURL).Msg("🚀 Order Service listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Release everything in reverse order on shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error shutting down http server")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing redis connection")
	}
	if err := mp.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error shutting down meter")
	}
	if err := tp.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error shutting down tracer")
	}
}

func initRedis() (*redis.Client, error) {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	})

	// Wait for the store to be ready
	ctx := context.Background()
	for i := 0; i < 30; i++ {
		if err := rdb.Ping(ctx).Err(); err == nil {
			log.Info().Msg("✅ Connected to redis")
			return rdb, nil
		}
		log.Info().Int("attempt", i+1).Msg("⏳ Waiting for redis...")
		time.Sleep(1 * time.Second)
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("failed to connect to redis after 30 attempts")
}

func initTracer(serviceName string) (*sdktrace.TracerProvider, error) {
	ctx := context.Background()

	otlpEndpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(otlpEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	otel.SetTracerProvider(tp)

	return tp, nil
}

func initMetrics(serviceName string) (*sdkmetric.MeterProvider, error) {
	ctx := context.Background()

	otlpEndpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(otlpEndpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
