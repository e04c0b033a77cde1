// Package registry discovers, validates, and governs extractors. A
// registry is built once per process (or per explicit re-scan), before any
// parallel document processing starts, and is immutable afterwards; it is
// the only state shared across concurrent documents.
package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ledgerlens/statement-extractor/internal/engine"
	"ledgerlens/statement-extractor/internal/extracterror"
	"ledgerlens/statement-extractor/internal/extractor"
	"ledgerlens/statement-extractor/internal/logging"
	"ledgerlens/statement-extractor/internal/spec"
)

// Options configures one registry build.
type Options struct {
	// Dirs are the plugin directories scanned for spec files (*.yaml,
	// *.yml) and native extractor modules (*.so).
	Dirs []string
	// Allow, when non-empty, restricts the dispatch pool to the named
	// extractors (case-insensitive).
	Allow []string
	// Deny removes the named extractors from the dispatch pool.
	Deny []string
	// DisableDiscovery skips the directory scan entirely; only built-ins
	// and programmatically registered natives remain.
	DisableDiscovery bool
	Logger           logging.Logger
}

// Registry is the immutable outcome of discovery and governance.
type Registry struct {
	registrations []extractor.Registration
	loadErrors    []error
}

// registeredNatives collects extractors registered at init time, before
// any Build call.
var registeredNatives []extractor.Extractor

// RegisterNative registers a code-backed extractor. Typically called from
// an init function; every subsequent Build includes the extractor with
// native origin and the same governance as discovered plugins.
func RegisterNative(ext extractor.Extractor) {
	registeredNatives = append(registeredNatives, ext)
}

// Build assembles the registry: built-ins first, then discovered
// declarative specs, then native extractors. A failing plugin is recorded
// and skipped; it never aborts the build.
func Build(builtins, natives []extractor.Extractor, opts Options) *Registry {
	log := opts.Logger
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}

	reg := &Registry{}
	for _, b := range builtins {
		reg.registrations = append(reg.registrations, extractor.Registration{
			Extractor: b,
			Origin:    extractor.OriginBuiltin,
			Source:    "built-in",
		})
	}

	var discoveredNatives []extractor.Registration
	if !opts.DisableDiscovery {
		for _, dir := range opts.Dirs {
			declarative, native := scanDir(dir, log, reg)
			reg.registrations = append(reg.registrations, declarative...)
			discoveredNatives = append(discoveredNatives, native...)
		}
	}

	for _, n := range append(append([]extractor.Extractor{}, registeredNatives...), natives...) {
		discoveredNatives = append(discoveredNatives, extractor.Registration{
			Extractor: n,
			Origin:    extractor.OriginNative,
			Source:    "registered",
		})
	}
	reg.registrations = append(reg.registrations, discoveredNatives...)

	reg.applyShadowing(log)
	reg.applyAllowDeny(opts.Allow, opts.Deny, log)
	return reg
}

// scanDir loads every spec file and native module in one directory.
// Filenames are sorted so registration order is deterministic.
func scanDir(dir string, log logging.Logger, reg *Registry) (declarative, native []extractor.Registration) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		reg.loadErrors = append(reg.loadErrors, &extracterror.PluginLoadError{Path: dir, Err: err})
		log.WithError(err).Warn("Skipping unreadable plugin directory",
			logging.Field{Key: logging.FieldPluginDir, Value: dir})
		return nil, nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			s, err := spec.LoadFile(path)
			if err != nil {
				reg.recordLoadError(path, err, log)
				continue
			}
			eng, err := engine.New(s, log)
			if err != nil {
				reg.recordLoadError(path, err, log)
				continue
			}
			declarative = append(declarative, extractor.Registration{
				Extractor: eng,
				Origin:    extractor.OriginDeclarative,
				Source:    path,
			})
		case ".so":
			ext, err := loadNativeModule(path)
			if err != nil {
				reg.recordLoadError(path, err, log)
				continue
			}
			native = append(native, extractor.Registration{
				Extractor: ext,
				Origin:    extractor.OriginNative,
				Source:    path,
			})
		}
	}
	return declarative, native
}

func (r *Registry) recordLoadError(path string, err error, log logging.Logger) {
	perr := &extracterror.PluginLoadError{Path: path, Err: err}
	r.loadErrors = append(r.loadErrors, perr)
	log.WithError(err).Warn("Skipping plugin that failed to load",
		logging.Field{Key: logging.FieldSpecFile, Value: path})
}

// applyShadowing resolves duplicate names. Registrations are already in
// precedence order (built-in, declarative, native, then registration
// order), so the first holder of a name wins and later ones are marked
// shadowed, never silently dropped.
func (r *Registry) applyShadowing(log logging.Logger) {
	seen := make(map[string]int)
	for i := range r.registrations {
		key := strings.ToLower(r.registrations[i].Name())
		if winner, dup := seen[key]; dup {
			r.registrations[i].Status = extractor.StatusShadowed
			log.Warn("Extractor shadowed by duplicate name",
				logging.Field{Key: logging.FieldExtractor, Value: r.registrations[i].Name()},
				logging.Field{Key: logging.FieldOrigin, Value: r.registrations[winner].Origin.String()})
			continue
		}
		seen[key] = i
	}
}

// applyAllowDeny runs last: it can remove an otherwise valid, non-shadowed
// extractor from the dispatch pool.
func (r *Registry) applyAllowDeny(allow, deny []string, log logging.Logger) {
	allowSet := toNameSet(allow)
	denySet := toNameSet(deny)

	for i := range r.registrations {
		if r.registrations[i].Status != extractor.StatusActive {
			continue
		}
		key := strings.ToLower(r.registrations[i].Name())
		_, denied := denySet[key]
		_, allowed := allowSet[key]
		if denied || (len(allowSet) > 0 && !allowed) {
			r.registrations[i].Status = extractor.StatusBlocked
			log.Info("Extractor blocked by allow/deny configuration",
				logging.Field{Key: logging.FieldExtractor, Value: r.registrations[i].Name()})
		}
	}
}

func toNameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	return set
}

// Registrations returns every registration, including shadowed and
// blocked ones, in precedence order.
func (r *Registry) Registrations() []extractor.Registration {
	return r.registrations
}

// Candidates returns the dispatch pool: active registrations in
// precedence order.
func (r *Registry) Candidates() []extractor.Registration {
	var out []extractor.Registration
	for _, reg := range r.registrations {
		if reg.Status == extractor.StatusActive {
			out = append(out, reg)
		}
	}
	return out
}

// Lookup finds a registration by name, case-insensitively, regardless of
// status.
func (r *Registry) Lookup(name string) (extractor.Registration, bool) {
	key := strings.ToLower(name)
	for _, reg := range r.registrations {
		if strings.ToLower(reg.Name()) == key {
			return reg, true
		}
	}
	return extractor.Registration{}, false
}

// LoadErrors returns the plugins that failed to load during the scan.
func (r *Registry) LoadErrors() []error {
	return r.loadErrors
}
