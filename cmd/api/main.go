package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/billing"
	"github.com/jhoicas/Almacen-api/internal/application/ordering"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("tx_isolation", cfg.DB.TxIsolation).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	itemRepo := postgres.NewOrderItemRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.TxIsolation)

	jwtCfg := jwt.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	}
	orderMetrics := metrics.NewOrderMetrics("almacen")

	// Pedidos: pedido + líneas + factura en una sola transacción
	createOrderUC := ordering.NewCreateOrderUseCase(
		txRunner,
		ordering.NewIdentifierGenerator(cfg.Order.MaxNumberAttempts),
		orderMetrics,
		log.Zerolog(),
	)
	orderUC := ordering.NewOrderUseCase(txRunner, orderRepo, itemRepo, invoiceRepo)

	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, itemRepo, orderRepo)
	invoicePDFUC := billing.NewPDFUseCase(
		invoiceUC, orderRepo, companyRepo, customerRepo, productRepo, infrapdf.NewMarotoPDFGenerator(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(txRunner, userRepo, companyRepo, jwtCfg),
		CompanyUC:   usecase.NewCompanyUseCase(companyRepo),
		UserUC:      usecase.NewUserUseCase(userRepo),
		CustomerUC:  usecase.NewCustomerUseCase(customerRepo),
		WarehouseUC: usecase.NewWarehouseUseCase(warehouseRepo),
		ProductUC:   usecase.NewProductUseCase(productRepo),
		CreateOrder: createOrderUC,
		OrderUC:     orderUC,
		InvoiceUC:   invoiceUC,
		InvoicePDF:  invoicePDFUC,
		ReportUC:    usecase.NewReportUseCase(reportRepo),
		JWT:         jwtCfg,
		Metrics:     orderMetrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
