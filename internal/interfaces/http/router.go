package http

import (
	stdhttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/billing"
	"github.com/jhoicas/Almacen-api/internal/application/ordering"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	CustomerUC  *usecase.CustomerUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	CreateOrder *ordering.CreateOrderUseCase
	OrderUC     *ordering.OrderUseCase
	InvoiceUC   *billing.InvoiceUseCase
	InvoicePDF  *billing.PDFUseCase
	ReportUC    *usecase.ReportUseCase
	JWT         jwt.Config
	Metrics     stdhttp.Handler // opcional; nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWT))
	write := RequireWrite()
	owner := RequireOwner()

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/companies/me", companyHandler.Get)
	protected.Put("/companies/me", owner, companyHandler.Update)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", owner, userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", owner, userHandler.Update)
	users.Delete("/:id", owner, userHandler.Delete)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", write, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", write, customerHandler.Update)
	customers.Delete("/:id", write, customerHandler.Delete)
	customers.Delete("/:id/hard", owner, customerHandler.HardDelete)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", write, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", write, warehouseHandler.Update)
	warehouses.Delete("/:id", write, warehouseHandler.Delete)
	warehouses.Delete("/:id/hard", owner, warehouseHandler.HardDelete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", write, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", write, productHandler.Update)
	products.Delete("/:id", write, productHandler.Delete)
	products.Delete("/:id/hard", owner, productHandler.HardDelete)

	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.OrderUC)
	orders.Post("/", write, orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/items", orderHandler.Items)
	orders.Put("/:id", write, orderHandler.Update)
	orders.Delete("/:id", write, orderHandler.SoftDelete)
	orders.Delete("/:id/hard", owner, orderHandler.Delete)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Patch("/:id/status", write, invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", write, invoiceHandler.Delete)
	invoices.Delete("/:id/hard", owner, invoiceHandler.HardDelete)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/bestselling-products", reportHandler.BestsellingProducts)
	reports.Get("/top-customer", reportHandler.TopCustomer)
	reports.Get("/top-product-per-warehouse", reportHandler.TopProductPerWarehouse)
}
