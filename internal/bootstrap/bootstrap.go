package bootstrap

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	deckinadapter "flipdeck/internal/modules/deck/adapter/in"
	deckoutadapter "flipdeck/internal/modules/deck/adapter/out"
	deckservice "flipdeck/internal/modules/deck/service"
	deckusecase "flipdeck/internal/modules/deck/usecase"
	historyinadapter "flipdeck/internal/modules/history/adapter/in"
	historyoutadapter "flipdeck/internal/modules/history/adapter/out"
	historyservice "flipdeck/internal/modules/history/service"
	historyusecase "flipdeck/internal/modules/history/usecase"
	importerinadapter "flipdeck/internal/modules/importer/adapter/in"
	importeroutadapter "flipdeck/internal/modules/importer/adapter/out"
	importerservice "flipdeck/internal/modules/importer/service"
	importerusecase "flipdeck/internal/modules/importer/usecase"
	studyinadapter "flipdeck/internal/modules/study/adapter/in"
	studyoutadapter "flipdeck/internal/modules/study/adapter/out"
	studyservice "flipdeck/internal/modules/study/service"
	studyusecase "flipdeck/internal/modules/study/usecase"
	"flipdeck/internal/platform/blob"
	"flipdeck/internal/platform/clock"
	"flipdeck/internal/platform/config"
	"flipdeck/internal/platform/id"
	"flipdeck/internal/platform/logging"
	uiapp "flipdeck/internal/ui/app"
)

type App struct {
	Config      config.Config
	DeckCLI     deckinadapter.CLIHandler
	HistoryCLI  historyinadapter.CLIHandler
	ImporterCLI importerinadapter.CLIHandler
	StudyTUI    studyinadapter.TUIHandler

	closers []io.Closer
}

func New(cfg config.Config, sink *logging.Sink) (*App, error) {
	app := &App{Config: cfg}
	logger := logging.Discard()
	if sink != nil {
		logger = sink.Logger
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	if c, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}

	importerUC := importerusecase.NewInteractor(importerservice.NewImporterService(
		importeroutadapter.NewFileManifestStore(cfg.DataPath),
		importeroutadapter.NewGRPCHost(hcLogger(sink)),
	))

	deckUC := deckusecase.NewInteractor(deckservice.NewDeckService(
		deckoutadapter.NewBlobSnapshotStore(store),
		deckoutadapter.NewImporterParserAdapter(importerUC),
	))

	historyUC := historyusecase.NewInteractor(historyservice.NewHistoryService(
		clock.SystemClock{},
		historyoutadapter.NewBlobHistoryStore(store),
		historyoutadapter.NewMarkdownNoteStore(cfg.DataPath),
	))

	ctrl := studyservice.NewController(
		id.UUID{},
		studyoutadapter.NewDeckStoreAdapter(deckUC),
		studyoutadapter.NewResultsReporterAdapter(historyUC),
		studyservice.WithLogger(logger.With("module", "study")),
		studyservice.WithStrict(cfg.Strict),
	)

	app.DeckCLI = deckinadapter.NewCLIHandler(deckUC)
	app.HistoryCLI = historyinadapter.NewCLIHandler(historyUC)
	app.ImporterCLI = importerinadapter.NewCLIHandler(importerUC)
	app.StudyTUI = studyinadapter.NewTUIHandler(studyusecase.NewInteractor(ctrl))
	return app, nil
}

// Close releases the blob store.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func RunTUI(app *App, launch uiapp.Launch) error {
	model := uiapp.NewModel(app.StudyTUI, app.DeckCLI, app.HistoryCLI, app.ImporterCLI, app.Config.CellWidth).
		WithLaunch(launch)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}

func openStore(cfg config.Config) (blob.Store, error) {
	switch cfg.Store {
	case "file":
		return blob.NewFileStore(cfg.BlobDir()), nil
	default:
		store, err := blob.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	}
}

func hcLogger(sink *logging.Sink) hclog.Logger {
	if sink == nil {
		return hclog.NewNullLogger()
	}
	return sink.HCLogger("importer")
}
