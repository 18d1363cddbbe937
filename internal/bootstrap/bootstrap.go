package bootstrap

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	analyticsinadapter "studia/internal/modules/analytics/adapter/in"
	analyticsoutadapter "studia/internal/modules/analytics/adapter/out"
	analyticsdomain "studia/internal/modules/analytics/domain"
	analyticsservice "studia/internal/modules/analytics/service"
	analyticsusecase "studia/internal/modules/analytics/usecase"
	dispatchin "studia/internal/modules/dispatch/port/in"
	dispatchservice "studia/internal/modules/dispatch/service"
	dispatchusecase "studia/internal/modules/dispatch/usecase"
	sessioninadapter "studia/internal/modules/session/adapter/in"
	sessionoutadapter "studia/internal/modules/session/adapter/out"
	sessionservice "studia/internal/modules/session/service"
	sessionusecase "studia/internal/modules/session/usecase"
	"studia/internal/platform/clock"
	"studia/internal/platform/config"
	"studia/internal/platform/id"
	"studia/internal/platform/logging"
	uiapp "studia/internal/ui/app"
)

type App struct {
	SessionCLI   sessioninadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler
	Coordinator  dispatchin.Coordinator
	Log          *slog.Logger
}

func New(cfg config.Config) (*App, error) {
	log := logging.New(cfg.LogLevel)
	clk := clock.SystemClock{}
	ids := id.UUID{}

	recordStore, err := sessionoutadapter.NewSQLiteRecordStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new record store: %w", err)
	}
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, recordStore),
	)

	router := analyticsservice.NewRouter(analyticsdomain.ParamBounds{
		MinLag:       cfg.Bounds.MinLag,
		MaxLag:       cfg.Bounds.MaxLag,
		MinWindow:    cfg.Bounds.MinWindow,
		MaxWindow:    cfg.Bounds.MaxWindow,
		MinThreshold: cfg.Bounds.MinThreshold,
	}, log)
	analyticsUC := analyticsusecase.NewInteractor(
		router,
		analyticsoutadapter.NewSessionSource(sessionUC),
		clk,
		log,
	)

	coordinator := dispatchusecase.NewInteractor(
		dispatchservice.NewCoordinator(analyticsUC, cfg.Workers, log),
	)

	return &App{
		SessionCLI:   sessioninadapter.NewCLIHandler(sessionUC),
		AnalyticsCLI: analyticsinadapter.NewCLIHandler(analyticsUC),
		Coordinator:  coordinator,
		Log:          log,
	}, nil
}

func RunTUI(app *App) error {
	defer app.Coordinator.Close()
	model := uiapp.NewModel(app.SessionCLI, app.Coordinator)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
