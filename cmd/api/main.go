package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/traum0123-design/traum0123/internal/config"
	appHTTP "github.com/traum0123-design/traum0123/internal/handler/http"
	"github.com/traum0123-design/traum0123/internal/pkg/database"
	"github.com/traum0123-design/traum0123/internal/pkg/token"
	"github.com/traum0123-design/traum0123/internal/repository/postgresql"
	companyService "github.com/traum0123-design/traum0123/internal/service/company"
	exportService "github.com/traum0123-design/traum0123/internal/service/export"
	fieldprefService "github.com/traum0123-design/traum0123/internal/service/fieldpref"
	payrollService "github.com/traum0123-design/traum0123/internal/service/payroll"
	policyService "github.com/traum0123-design/traum0123/internal/service/policy"
	withholdingService "github.com/traum0123-design/traum0123/internal/service/withholding"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	if err := postgresql.Migrate(context.Background(), db); err != nil {
		fmt.Println("Error migrating database:", err)
		return
	}

	companyRepo := postgresql.NewCompanyRepository(db)
	sheetRepo := postgresql.NewSheetRepository(db)
	prefRepo := postgresql.NewPreferenceRepository(db)
	extraRepo := postgresql.NewExtraFieldRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	withholdingRepo := postgresql.NewWithholdingRepository(db)

	tokenService := token.NewTokenService(cfg.Auth.Secret, cfg.Auth.AdminExpiration, cfg.Auth.PortalExpiration)

	policySvc := policyService.NewPolicyService(policyRepo, cfg.Insurance)
	companySvc := companyService.NewCompanyService(companyRepo, tokenService)
	payrollSvc := payrollService.NewPayrollService(sheetRepo, prefRepo, extraRepo, withholdingRepo, policySvc, cfg.Insurance)
	fieldConfigSvc := fieldprefService.NewFieldConfigService(prefRepo, extraRepo)
	withholdingSvc := withholdingService.NewWithholdingService(withholdingRepo, policySvc)
	ledgerSvc := exportService.NewLedgerService(sheetRepo, prefRepo, extraRepo, policySvc, cfg.Insurance)

	authHandler := appHTTP.NewAuthHandler(cfg.Auth.AdminPassword, tokenService, companySvc)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	fieldConfigHandler := appHTTP.NewFieldConfigHandler(fieldConfigSvc)
	policyHandler := appHTTP.NewPolicyHandler(policySvc)
	withholdingHandler := appHTTP.NewWithholdingHandler(withholdingSvc)
	exportHandler := appHTTP.NewExportHandler(ledgerSvc)

	router := appHTTP.NewRouter(
		tokenService,
		authHandler,
		companyHandler,
		payrollHandler,
		fieldConfigHandler,
		policyHandler,
		withholdingHandler,
		exportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
