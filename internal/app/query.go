package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/lookupgo/internal/ctxlog"
	"github.com/specialistvlad/lookupgo/internal/lookup"
	"github.com/specialistvlad/lookupgo/internal/manifest"
	"github.com/specialistvlad/lookupgo/internal/scene"
)

var (
	// ErrNotLoaded is returned by scene operations called before Load.
	ErrNotLoaded = errors.New("scene not loaded")
	// ErrUnknownQuery is returned for a query name absent from the manifest.
	ErrUnknownQuery = errors.New("unknown query")
	// ErrUnknownType is returned for a type name absent from the catalog.
	ErrUnknownType = errors.New("unknown type name")
)

// Result is the outcome of one query.
type Result struct {
	Query  string
	Type   string
	Mode   string
	Values []string
}

// RunQueries evaluates the named manifest queries, or all of them in
// declaration order when names is empty.
func (a *App) RunQueries(ctx context.Context, names ...string) ([]Result, error) {
	if a.scene == nil {
		return nil, ErrNotLoaded
	}

	specs := a.manifest.Queries
	if len(names) > 0 {
		specs = make([]*manifest.QuerySpec, 0, len(names))
		for _, n := range names {
			q, ok := a.manifest.Query(n)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownQuery, n)
			}
			specs = append(specs, q)
		}
	}

	results := make([]Result, 0, len(specs))
	for _, q := range specs {
		r, err := a.Find(ctx, q.Type, q.Mode)
		if err != nil {
			return nil, fmt.Errorf("query %q (%s): %w", q.Name, q.Pos, err)
		}
		r.Query = q.Name
		results = append(results, r)
	}
	return results, nil
}

// Find evaluates an ad-hoc query against the scene. mode is
// manifest.ModeFirst or manifest.ModeAll.
func (a *App) Find(ctx context.Context, typeName, mode string) (Result, error) {
	if a.scene == nil {
		return Result{}, ErrNotLoaded
	}
	key, ok := a.catalog.Type(typeName)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownType, typeName, strings.Join(a.catalog.TypeNames(), ", "))
	}

	r := Result{Type: typeName, Mode: mode, Values: []string{}}
	switch mode {
	case manifest.ModeAll:
		vals, err := a.scene.FindAll(key)
		if err != nil {
			return Result{}, err
		}
		for _, v := range vals {
			r.Values = append(r.Values, scene.Describe(v))
		}
	default:
		r.Mode = manifest.ModeFirst
		v, err := a.scene.Find(key)
		if err != nil {
			return Result{}, err
		}
		if v != nil {
			r.Values = append(r.Values, scene.Describe(v))
		}
	}
	ctxlog.FromContext(ctx).Debug("Query evaluated.", "type", typeName, "mode", r.Mode, "matches", len(r.Values))
	return r, nil
}

// Query runs the named queries and renders the results.
func (a *App) Query(ctx context.Context, names ...string) error {
	results, err := a.RunQueries(ctx, names...)
	if err != nil {
		return err
	}
	return a.renderResults(results)
}

func (a *App) renderResults(results []Result) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		values := "(none)"
		if len(r.Values) > 0 {
			values = strings.Join(r.Values, ", ")
		}
		rows = append(rows, []string{r.Query, r.Type, r.Mode, values})
	}
	return a.render([]string{"QUERY", "TYPE", "MODE", "RESULT"}, rows)
}

// Inspect renders the bucket layout of the scene registry.
func (a *App) Inspect(_ context.Context) error {
	if a.scene == nil {
		return ErrNotLoaded
	}
	infos := a.scene.Inspect()
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Key.String(), info.Form, strconv.Itoa(info.Count), scene.Describe(info.Current)})
	}
	return a.render([]string{"KEY", "FORM", "COUNT", "CURRENT"}, rows)
}

// Types renders the catalog type names usable in queries.
func (a *App) Types(_ context.Context) error {
	names := a.catalog.TypeNames()
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		t, _ := a.catalog.Type(n)
		rows = append(rows, []string{n, t.String()})
	}
	return a.render([]string{"NAME", "KEY"}, rows)
}

// Simulate advances the scene steps times by dt and renders every drawable
// node after the last step.
func (a *App) Simulate(ctx context.Context, steps int, dt float64) error {
	if a.scene == nil {
		return ErrNotLoaded
	}
	if steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", steps)
	}
	for range steps {
		a.scene.Tick(dt)
	}
	ctxlog.FromContext(ctx).Debug("Scene simulated.", "steps", steps, "dt", dt)

	drawables, err := lookup.All[scene.Drawable](a.scene.Objects())
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(drawables))
	for _, d := range drawables {
		rows = append(rows, []string{d.Draw()})
	}
	return a.render([]string{"FRAME"}, rows)
}

// Pick renders the nodes hit at (x, y).
func (a *App) Pick(ctx context.Context, x, y float64) error {
	if a.scene == nil {
		return ErrNotLoaded
	}
	hits := a.scene.PickAt(x, y)
	ctxlog.FromContext(ctx).Debug("Scene picked.", "x", x, "y", y, "hits", len(hits))
	rows := make([][]string, 0, len(hits))
	for _, n := range hits {
		rows = append(rows, []string{scene.Describe(n)})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"(none)"})
	}
	return a.render([]string{"HIT"}, rows)
}
