package storage

import "go.uber.org/zap"

// ProfileStore reads and writes documents inside a profile's directory.
// The directory is resolved through the registry on every call, so a
// profile switch is visible to the very next load or save. Entity code
// built on it stays unaware of profiles entirely.
type ProfileStore struct {
	reg *Registry
	log *zap.SugaredLogger
}

// NewProfileStore wraps a registry. A nil logger disables logging.
func NewProfileStore(reg *Registry, log *zap.SugaredLogger) *ProfileStore {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ProfileStore{reg: reg, log: log}
}

// Dir returns the active profile's data directory.
func (ps *ProfileStore) Dir() string {
	return ps.reg.ProfileDir(ps.reg.ActiveID())
}

// DirFor returns the data directory for profileID; empty means the
// active profile.
func (ps *ProfileStore) DirFor(profileID string) string {
	if profileID == "" {
		profileID = ps.reg.ActiveID()
	}
	return ps.reg.ProfileDir(profileID)
}

// Store returns a Store bound to the active profile's directory as of
// this call. Callers should not hold it across a profile switch.
func (ps *ProfileStore) Store() *Store {
	return NewStore(ps.Dir(), ps.log)
}

// StoreFor returns a Store bound to profileID's directory; empty means
// the active profile.
func (ps *ProfileStore) StoreFor(profileID string) *Store {
	return NewStore(ps.DirFor(profileID), ps.log)
}
