package resolver

import (
	"context"
	"fmt"
	"go/types"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/apidocgen/internal/parser"
)

// goType is a named Go type found by PackagesResolver.
type goType struct {
	name      string
	constants []string
}

func (t *goType) Name() string            { return t.name }
func (t *goType) IsEnum() bool            { return len(t.constants) > 0 }
func (t *goType) EnumConstants() []string { return t.constants }
func (t *goType) NestedTypes() []Type     { return nil }

// moduleRoot is a module directory and the module path declared in its go.mod.
type moduleRoot struct {
	path string
	dir  string
}

// PackagesResolver resolves "import/path.Name" against the packages of a
// set of Go module directories. Packages are loaded on first use and kept.
type PackagesResolver struct {
	dirs []string
	log  *slog.Logger

	once    sync.Once
	initErr error
	modules []moduleRoot

	mu     sync.Mutex
	loaded map[string]*types.Package // nil entry: package does not load
}

// NewPackages returns a resolver over the modules containing dirs.
func NewPackages(log *slog.Logger, dirs ...string) *PackagesResolver {
	if log == nil {
		log = slog.Default()
	}
	return &PackagesResolver{
		dirs:   dirs,
		log:    log,
		loaded: make(map[string]*types.Package),
	}
}

func (r *PackagesResolver) init() {
	for _, dir := range r.dirs {
		modDir, err := findGoModDir(dir)
		if err != nil {
			r.initErr = fmt.Errorf("%w: %s: %w", ErrOpenLocation, dir, err)
			return
		}
		modPath, err := modulePath(modDir)
		if err != nil {
			r.initErr = fmt.Errorf("%w: %s: %w", ErrOpenLocation, modDir, err)
			return
		}
		r.modules = append(r.modules, moduleRoot{path: modPath, dir: modDir})
	}
	// longest module path first so nested modules win
	sort.SliceStable(r.modules, func(i, j int) bool { return len(r.modules[i].path) > len(r.modules[j].path) })
}

func (r *PackagesResolver) Resolve(ctx context.Context, name string) (Type, error) {
	r.once.Do(r.init)
	if r.initErr != nil {
		return nil, r.initErr
	}

	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	pkgPath, typeName := name[:i], name[i+1:]

	mod, ok := r.moduleFor(pkgPath)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	pkg, err := r.load(ctx, mod, pkgPath)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	tn, ok := pkg.Scope().Lookup(typeName).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	t := &goType{name: name}
	if named, isNamed := tn.Type().(*types.Named); isNamed {
		if _, basic := named.Underlying().(*types.Basic); basic {
			for _, c := range parser.EnumConstants(pkg, named) {
				t.constants = append(t.constants, parser.EnumValueName(c))
			}
		}
	}
	return t, nil
}

func (r *PackagesResolver) moduleFor(pkgPath string) (moduleRoot, bool) {
	for _, m := range r.modules {
		if pkgPath == m.path || strings.HasPrefix(pkgPath, m.path+"/") {
			return m, true
		}
	}
	return moduleRoot{}, false
}

func (r *PackagesResolver) load(ctx context.Context, mod moduleRoot, pkgPath string) (*types.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pkg, ok := r.loaded[pkgPath]; ok {
		return pkg, nil
	}

	r.log.Debug("loading package for type resolution", "package", pkgPath, "module", mod.dir)
	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedTypes,
		Dir:     mod.dir,
	}, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", pkgPath, err)
	}

	var found *types.Package
	for _, p := range pkgs {
		if p.PkgPath == pkgPath && len(p.Errors) == 0 && p.Types != nil {
			found = p.Types
		}
	}
	r.loaded[pkgPath] = found
	return found, nil
}

// findGoModDir walks up from dir until it finds go.mod.
func findGoModDir(dir string) (string, error) {
	from, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err = os.Stat(filepath.Join(from, "go.mod")); err == nil {
			return from, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", fmt.Errorf("no go.mod found")
		}
		from = parent
	}
}

// modulePath reads the module path declared in modDir/go.mod.
func modulePath(modDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(modDir, "go.mod"))
	if err != nil {
		return "", err
	}
	path := modfile.ModulePath(data)
	if path == "" {
		mf, err := modfile.ParseLax("go.mod", data, nil)
		if err != nil {
			return "", err
		}
		if mf.Module == nil {
			return "", fmt.Errorf("go.mod has no module directive")
		}
		path = mf.Module.Mod.Path
	}
	return path, nil
}
