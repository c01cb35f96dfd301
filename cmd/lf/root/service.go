package root

import (
	"github.com/silviuClosca/languageForge/internal/engine"
	"github.com/silviuClosca/languageForge/internal/logging"
	"github.com/silviuClosca/languageForge/internal/storage"
)

// openService builds the domain service for one command invocation.
// Past months are archived here so every surface sees them read-only,
// the same sweep a GUI would run at startup.
func openService() (*engine.Service, error) {
	dir, err := storage.ResolveDataDir(dataDir)
	if err != nil {
		return nil, err
	}
	svc := engine.NewService(dir, logging.New(verbose))
	svc.Init()
	svc.AutoArchivePastGoals(engine.CurrentMonthID())
	return svc, nil
}
