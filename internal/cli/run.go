package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"rpc-dumper/internal/analyze"
	"rpc-dumper/internal/config"
	"rpc-dumper/internal/diagnostic"
	"rpc-dumper/internal/metadata"
	"rpc-dumper/internal/metadata/dump"
	"rpc-dumper/internal/resolve"
	"rpc-dumper/internal/schema"
)

var debugDump = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

type runner struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
	debug  bool

	// diags collects the diagnostics of every stage of the run.
	diags diagnostic.Diagnostics
}

func (r *runner) run(ctx context.Context, path string) error {
	defer func() { logDiagnostics(r.logger, &r.diags) }()

	universe, err := r.load(path)
	if err != nil {
		return err
	}

	provider, err := metadata.NewCachedProvider(universe, r.cfg.CacheSize)
	if err != nil {
		return err
	}

	res := resolve.New(provider,
		resolve.WithConventions(r.cfg.Conventions()),
		resolve.WithLogger(r.logger))

	doc, err := res.Run(ctx)
	r.diags.Merge(*res.Diagnostics())

	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	if r.debug {
		debugDump.Fdump(r.stderr, doc)
	}

	files, err := schema.WriteFiles(doc, r.cfg.Output, r.cfg.OutputFormat())
	if err != nil {
		return err
	}

	r.logger.Info("schema written",
		slog.String("messages", files[0]),
		slog.String("types", files[1]),
		slog.Int("auxiliary", doc.Types.Len()))

	p := message.NewPrinter(language.English)
	p.Fprintf(r.stdout, "Found RPCs: %d\n", doc.Messages.Len())
	p.Fprintln(r.stdout, "Done!")

	return nil
}

// load builds the universe with the configured provider.
func (r *runner) load(path string) (*metadata.Universe, error) {
	kind := r.cfg.Provider
	if kind == config.ProviderAuto {
		kind = config.ProviderGo
		if dump.IsDumpPath(path) {
			kind = config.ProviderDump
		}
	}

	r.logger.Debug("loading metadata", slog.String("path", path), slog.String("provider", kind))

	switch kind {
	case config.ProviderDump:
		u, err := dump.LoadFile(path)
		if err != nil {
			return nil, err
		}

		r.logger.Debug("dump loaded", slog.String("module", u.Module), slog.Int("types", u.Len()))

		return u, nil

	default:
		a := analyze.NewAnalyzer("")

		u, err := a.LoadPackages(goPattern(path))
		r.diags.Merge(*a.Diagnostics())

		if err != nil {
			return nil, err
		}

		r.logger.Debug("packages loaded", slog.String("module", u.Module), slog.Int("types", u.Len()))

		return u, nil
	}
}

// goPattern turns an existing directory into a relative package pattern so
// that "share" is not taken for an import path.
func goPattern(path string) string {
	if filepath.IsAbs(path) || strings.HasPrefix(path, ".") {
		return path
	}

	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return "." + string(filepath.Separator) + path
	}

	return path
}
