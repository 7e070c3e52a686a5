package app

import (
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/phenrril/cotizador/internal/adapters/httpserver"
	"github.com/phenrril/cotizador/internal/adapters/repo/postgres"
	"github.com/phenrril/cotizador/internal/domain"
	"github.com/phenrril/cotizador/internal/usecase"
)

type App struct {
	DB          *gorm.DB
	QuoteUC     *usecase.QuoteUC
	ConfigUC    *usecase.ConfigUC
	OAuthConfig *oauth2.Config
}

func NewApp(db *gorm.DB) (*App, error) {
	quoteRepo := postgres.NewQuoteRepo(db)
	timelineRepo := postgres.NewTimelineRepo(db)
	configRepo := postgres.NewConfigRepo(db)
	projectRepo := postgres.NewProjectRepo(db)

	var oauthCfg *oauth2.Config
	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if googleID != "" && googleSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	return &App{
		DB:          db,
		QuoteUC:     &usecase.QuoteUC{Quotes: quoteRepo, Timeline: timelineRepo, Config: configRepo},
		ConfigUC:    &usecase.ConfigUC{Config: configRepo, Projects: projectRepo},
		OAuthConfig: oauthCfg,
	}, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.QuoteUC, a.ConfigUC, a.OAuthConfig)
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.CustomerGroup{},
		&domain.MaterialType{},
		&domain.MouldingMachineType{},
		&domain.AssemblyType{},
		&domain.PackagingType{},
		&domain.Project{},
		&domain.Quote{},
		&domain.RawMaterial{},
		&domain.MouldingMachineDetail{},
		&domain.Assembly{},
		&domain.AssemblyRawMaterial{},
		&domain.ManufacturingPrintingCost{},
		&domain.Packaging{},
		&domain.Transport{},
		&domain.TimelineEntry{},
	); err != nil {
		return err
	}
	return seedDefaults(a.DB)
}

// seedDefaults deja un grupo general listo para usar en una base vacía.
func seedDefaults(db *gorm.DB) error {
	var n int64
	if err := db.Model(&domain.CustomerGroup{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	group := domain.CustomerGroup{
		ID:          uuid.New(),
		Name:        "General",
		Value:       "general",
		Description: "Grupo por defecto",
		CreatedBy:   "system",
		Active:      true,
	}
	if err := db.Create(&group).Error; err != nil {
		return err
	}
	materials := []domain.MaterialType{
		{ID: uuid.New(), CustomerGroupID: group.ID, Name: "Polipropileno", Grade: "H110MA", Code: "PP-H110MA", Rate: decimal.RequireFromString("98.50"), CreatedBy: "system", Active: true},
		{ID: uuid.New(), CustomerGroupID: group.ID, Name: "ABS", Grade: "FR15", Code: "ABS-FR15", Rate: decimal.RequireFromString("162.00"), CreatedBy: "system", Active: true},
	}
	for i := range materials {
		if err := db.Create(&materials[i]).Error; err != nil {
			return err
		}
	}
	machines := []domain.MouldingMachineType{
		{ID: uuid.New(), CustomerGroupID: group.ID, Name: "120T", ShiftRate: decimal.RequireFromString("4800.00"), ShiftRateForMTC: decimal.RequireFromString("600.00"), MTCCount: 1, CreatedBy: "system", Active: true},
		{ID: uuid.New(), CustomerGroupID: group.ID, Name: "250T", ShiftRate: decimal.RequireFromString("8200.00"), ShiftRateForMTC: decimal.RequireFromString("950.00"), MTCCount: 1, CreatedBy: "system", Active: true},
	}
	for i := range machines {
		if err := db.Create(&machines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
