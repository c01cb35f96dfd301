package engine

import (
	"go.uber.org/zap"

	"github.com/silviuClosca/languageForge/internal/storage"
)

// Service is the domain layer. Every operation re-reads what it needs
// through the profile-scoped store and writes back in the same call, so
// the Service holds no entity state and a profile switch is visible to
// the very next operation.
type Service struct {
	reg      *storage.Registry
	profiles *storage.ProfileStore
	root     *storage.Store
	log      *zap.SugaredLogger
}

// NewService builds a Service over the data root directory. A nil
// logger disables logging.
func NewService(dataDir string, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	root := storage.NewStore(dataDir, log)
	reg := storage.NewRegistry(root, log)
	return &Service{
		reg:      reg,
		profiles: storage.NewProfileStore(reg, log),
		root:     root,
		log:      log,
	}
}

func (s *Service) Registry() *storage.Registry     { return s.reg }
func (s *Service) Profiles() *storage.ProfileStore { return s.profiles }

// Init prepares the profile system for use. Safe to call on every
// start.
func (s *Service) Init() {
	s.reg.Init()
}
