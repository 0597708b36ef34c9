package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fieldops/billing-backend-go/internal/config"
	appHTTP "github.com/fieldops/billing-backend-go/internal/handler/http"
	"github.com/fieldops/billing-backend-go/internal/pkg/cron"
	"github.com/fieldops/billing-backend-go/internal/pkg/database"
	"github.com/fieldops/billing-backend-go/internal/pkg/jwt"
	"github.com/fieldops/billing-backend-go/internal/repository/postgresql"
	billingService "github.com/fieldops/billing-backend-go/internal/service/billing"
	employeeService "github.com/fieldops/billing-backend-go/internal/service/employee"
	invoiceService "github.com/fieldops/billing-backend-go/internal/service/invoice"
	payrollService "github.com/fieldops/billing-backend-go/internal/service/payroll"
	"github.com/fieldops/billing-backend-go/internal/service/timesheet"
	workRecordService "github.com/fieldops/billing-backend-go/internal/service/workrecord"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	workRecordRepo := postgresql.NewWorkRecordRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	aggregator := timesheet.NewAggregator(workRecordRepo, employeeRepo)
	billingSvc := billingService.NewBillingService(aggregator, employeeRepo, workRecordRepo, invoiceRepo, payrollRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	workRecordSvc := workRecordService.NewWorkRecordService(workRecordRepo, employeeRepo, billingSvc)
	invoiceSvc := invoiceService.NewInvoiceService(db, invoiceRepo, billingSvc)
	payrollSvc := payrollService.NewPayrollService(payrollRepo)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	workRecordHandler := appHTTP.NewWorkRecordHandler(workRecordSvc)
	invoiceHandler := appHTTP.NewInvoiceHandler(invoiceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	automationHandler := appHTTP.NewAutomationHandler(billingSvc)

	scheduler := cron.NewScheduler()
	cron.NewBillingJobs(billingSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		employeeHandler,
		workRecordHandler,
		invoiceHandler,
		payrollHandler,
		automationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	_ = server.Close()
}
