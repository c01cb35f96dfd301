package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// MaxProfiles caps the registry size.
	MaxProfiles = 50
	// MaxProfileNameLength bounds display names and slugs, in runes.
	MaxProfileNameLength = 30
	// MinProfileNameLength is the shortest accepted display name.
	MinProfileNameLength = 1
	// DefaultProfileID always exists and can never be deleted.
	DefaultProfileID = "default"

	registryFile    = "profiles.json"
	registryVersion = "1.0"
	profilesDirName = "profiles"
)

// invalidNameChars are stripped from display names before slugging.
const invalidNameChars = `/\:*?"<>|`

// reservedNames collide with files or directories at the data root.
var reservedNames = []string{"settings", "profiles", "temp", "backup", DefaultProfileID}

// now is swapped in tests for deterministic timestamps.
var now = time.Now

func timestamp() string {
	return now().Format("2006-01-02T15:04:05")
}

// Result is the outcome of a profile lifecycle operation. Message is
// user-facing and shown verbatim by every surface.
type Result struct {
	OK      bool
	Message string
}

// Registry owns profile identity and the active-profile pointer. The
// registry document is re-read from disk on every operation; only the
// resolved active id is cached, and a successful SetActive replaces it.
type Registry struct {
	store  *Store
	active string
	log    *zap.SugaredLogger
}

// NewRegistry wraps the root store. A nil logger disables logging.
func NewRegistry(store *Store, log *zap.SugaredLogger) *Registry {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Registry{store: store, log: log}
}

// ProfilesRoot returns the directory holding all profile directories,
// creating it if needed.
func (r *Registry) ProfilesRoot() string {
	dir := filepath.Join(r.store.Dir(), profilesDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		r.log.Debugw("create profiles root", "dir", dir, "error", err)
	}
	return dir
}

// ProfileDir returns the data directory for one profile, creating it if
// needed.
func (r *Registry) ProfileDir(id string) string {
	dir := filepath.Join(r.ProfilesRoot(), id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		r.log.Debugw("create profile dir", "dir", dir, "error", err)
	}
	return dir
}

// SanitizeName turns a display name into the filesystem slug used as a
// profile id: invalid characters and ".." sequences removed, lowercase,
// spaces to single underscores, trimmed to MaxProfileNameLength runes.
// The result may be empty when nothing safe remains.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(c rune) rune {
		if strings.ContainsRune(invalidNameChars, c) {
			return -1
		}
		return c
	}, name)
	name = strings.ReplaceAll(name, "..", "")
	if runes := []rune(name); len(runes) > MaxProfileNameLength {
		name = string(runes[:MaxProfileNameLength])
	}
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	for strings.Contains(slug, "__") {
		slug = strings.ReplaceAll(slug, "__", "_")
	}
	return strings.Trim(slug, "_")
}

// List returns every registered profile in registry order.
func (r *Registry) List() []Profile {
	return r.load().Profiles
}

// Exists reports whether id is a registered profile.
func (r *Registry) Exists(id string) bool {
	return profileIndex(r.load().Profiles, id) >= 0
}

// DisplayName resolves a profile id to its display name.
func (r *Registry) DisplayName(id string) (string, bool) {
	profiles := r.load().Profiles
	i := profileIndex(profiles, id)
	if i < 0 {
		return "", false
	}
	return profiles[i].DisplayName, true
}

// ActiveID returns the active profile id. The first call resolves it
// from the registry, falling back to the first listed profile, or to
// the default profile (bootstrapping it) when the registry is empty.
func (r *Registry) ActiveID() string {
	if r.active != "" {
		return r.active
	}
	doc := r.load()
	active := doc.ActiveProfile
	if profileIndex(doc.Profiles, active) < 0 {
		if len(doc.Profiles) > 0 {
			active = doc.Profiles[0].ID
		} else {
			active = DefaultProfileID
			r.ensureDefault()
		}
	}
	r.active = active
	return active
}

// SetActive switches the active profile and stamps its last_used time.
// It reports false when id is not a registered profile.
func (r *Registry) SetActive(id string) bool {
	doc := r.load()
	i := profileIndex(doc.Profiles, id)
	if i < 0 {
		return false
	}
	doc.ActiveProfile = id
	doc.Profiles[i].LastUsed = timestamp()
	r.save(doc)
	r.active = id
	return true
}

// Create validates and registers a new profile, creating its directory.
func (r *Registry) Create(displayName string) Result {
	if utf8.RuneCountInString(displayName) < MinProfileNameLength {
		return Result{Message: "Profile name is too short."}
	}
	if utf8.RuneCountInString(displayName) > MaxProfileNameLength {
		return Result{Message: fmt.Sprintf("Profile name must be %d characters or less.", MaxProfileNameLength)}
	}
	doc := r.load()
	if len(doc.Profiles) >= MaxProfiles {
		return Result{Message: fmt.Sprintf("Maximum profiles (%d) reached. Delete unused profiles first.", MaxProfiles)}
	}
	id := SanitizeName(displayName)
	if id == "" {
		return Result{Message: "Profile name contains only invalid characters."}
	}
	if isReserved(id) {
		return Result{Message: fmt.Sprintf("'%s' is a reserved name.", displayName)}
	}
	if profileIndex(doc.Profiles, id) >= 0 {
		return Result{Message: fmt.Sprintf("Profile '%s' already exists.", displayName)}
	}
	if err := os.MkdirAll(filepath.Join(r.ProfilesRoot(), id), 0o755); err != nil {
		return Result{Message: fmt.Sprintf("Failed to create profile directory: %v", err)}
	}
	ts := timestamp()
	doc.Profiles = append(doc.Profiles, Profile{ID: id, DisplayName: displayName, CreatedAt: ts, LastUsed: ts})
	r.save(doc)
	return Result{OK: true, Message: fmt.Sprintf("Profile '%s' created successfully.", displayName)}
}

// Delete removes a profile from the registry and best-effort deletes
// its directory. The default profile and the active profile are
// protected; a directory that fails to delete leaves the registry
// change standing.
func (r *Registry) Delete(id string) Result {
	if id == DefaultProfileID {
		return Result{Message: "Cannot delete the default profile."}
	}
	if id == r.ActiveID() {
		return Result{Message: "Cannot delete the currently active profile. Switch to another profile first."}
	}
	doc := r.load()
	i := profileIndex(doc.Profiles, id)
	if i < 0 {
		return Result{Message: fmt.Sprintf("Profile '%s' does not exist.", id)}
	}
	doc.Profiles = append(doc.Profiles[:i], doc.Profiles[i+1:]...)
	r.save(doc)

	// Only delete a directory sitting directly under the profiles root;
	// a slug with separators must never reach outside it.
	root := r.ProfilesRoot()
	dir := filepath.Join(root, id)
	if fi, err := os.Stat(dir); err == nil && fi.IsDir() && filepath.Dir(dir) == root {
		if err := os.RemoveAll(dir); err != nil {
			r.log.Debugw("remove profile dir", "dir", dir, "error", err)
		}
	}
	return Result{OK: true, Message: "Profile deleted successfully."}
}

// Rename changes a profile's display name. The id and directory stay.
func (r *Registry) Rename(id, newName string) Result {
	if utf8.RuneCountInString(newName) < MinProfileNameLength {
		return Result{Message: "Profile name is too short."}
	}
	if utf8.RuneCountInString(newName) > MaxProfileNameLength {
		return Result{Message: fmt.Sprintf("Profile name must be %d characters or less.", MaxProfileNameLength)}
	}
	doc := r.load()
	i := profileIndex(doc.Profiles, id)
	if i < 0 {
		return Result{Message: fmt.Sprintf("Profile '%s' does not exist.", id)}
	}
	doc.Profiles[i].DisplayName = newName
	r.save(doc)
	return Result{OK: true, Message: fmt.Sprintf("Profile renamed to '%s'.", newName)}
}

// CleanupOrphans deletes directories under the profiles root that no
// registered profile owns and returns how many were removed. Failures
// are skipped so one bad folder does not abort the sweep.
func (r *Registry) CleanupOrphans() int {
	known := make(map[string]bool)
	for _, p := range r.load().Profiles {
		known[p.ID] = true
	}
	root := r.ProfilesRoot()
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0
	}
	removed := 0
	for _, e := range entries {
		if !e.IsDir() || known[e.Name()] {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
			r.log.Debugw("remove orphaned dir", "name", e.Name(), "error", err)
			continue
		}
		removed++
	}
	return removed
}

// Init makes the profile system usable regardless of prior state: the
// default profile exists, the active pointer references a real profile,
// and unowned directories are swept. Safe to run on every start.
func (r *Registry) Init() {
	r.ensureDefault()
	if !r.Exists(r.ActiveID()) {
		r.SetActive(DefaultProfileID)
	}
	r.CleanupOrphans()
}

func (r *Registry) ensureDefault() {
	if r.Exists(DefaultProfileID) {
		r.ProfileDir(DefaultProfileID)
		return
	}
	doc := r.load()
	ts := timestamp()
	doc.Profiles = append(doc.Profiles, Profile{ID: DefaultProfileID, DisplayName: "Default", CreatedAt: ts, LastUsed: ts})
	if profileIndex(doc.Profiles, doc.ActiveProfile) < 0 {
		doc.ActiveProfile = DefaultProfileID
	}
	r.save(doc)
	r.ProfileDir(DefaultProfileID)
}

// load reads the registry document, substituting a fresh default
// registry when the file is missing, corrupt, or lacks required keys.
func (r *Registry) load() registryDoc {
	doc := Load(r.store, registryFile, registryDoc{})
	if doc.Profiles == nil || doc.ActiveProfile == "" {
		return defaultRegistry()
	}
	return doc
}

func (r *Registry) save(doc registryDoc) {
	r.store.Save(registryFile, doc)
}

func defaultRegistry() registryDoc {
	ts := timestamp()
	return registryDoc{
		ActiveProfile: DefaultProfileID,
		Profiles: []Profile{{
			ID:          DefaultProfileID,
			DisplayName: "Default",
			CreatedAt:   ts,
			LastUsed:    ts,
		}},
		Version: registryVersion,
	}
}

func profileIndex(profiles []Profile, id string) int {
	for i := range profiles {
		if profiles[i].ID == id {
			return i
		}
	}
	return -1
}

func isReserved(id string) bool {
	for _, name := range reservedNames {
		if id == name {
			return true
		}
	}
	return false
}
