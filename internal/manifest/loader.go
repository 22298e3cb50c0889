package manifest

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/lookupgo/internal/ctxlog"
	"github.com/specialistvlad/lookupgo/internal/fsutil"
)

// ErrInvalid wraps every parse, decode and validation failure.
var ErrInvalid = errors.New("manifest: invalid")

// fileRoot decodes every top-level block a manifest file may hold.
type fileRoot struct {
	Scenes  []*sceneBlock  `hcl:"scene,block"`
	Actors  []*actorBlock  `hcl:"actor,block"`
	Cameras []*cameraBlock `hcl:"camera,block"`
	Queries []*queryBlock  `hcl:"query,block"`
}

type sceneBlock struct {
	Name   string   `hcl:"name,label"`
	Remain hcl.Body `hcl:",remain"`
}

type actorBlock struct {
	Name     string          `hcl:"name,label"`
	Kind     string          `hcl:"kind"`
	Supports []*supportBlock `hcl:"support,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

type supportBlock struct {
	Kind   string   `hcl:"kind,label"`
	Remain hcl.Body `hcl:",remain"`
}

type cameraBlock struct {
	Name   string   `hcl:"name,label"`
	Kind   string   `hcl:"kind,optional"`
	Target string   `hcl:"target,optional"`
	Remain hcl.Body `hcl:",remain"`
}

type queryBlock struct {
	Name   string   `hcl:"name,label"`
	Type   string   `hcl:"type"`
	Mode   string   `hcl:"mode,optional"`
	Remain hcl.Body `hcl:",remain"`
}

// Load parses every .hcl file found under paths and merges them into one
// manifest. Directories are walked recursively; missing paths are skipped.
func Load(ctx context.Context, paths ...string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	b := newBuilder()
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: parsing %s: %w", ErrInvalid, file, diags)
		}
		if err := b.merge(ctx, f, file); err != nil {
			return nil, err
		}
	}

	m, err := b.finish()
	if err != nil {
		return nil, err
	}
	logger.Debug("Manifest loading complete.", "scene", m.Name, "actors", len(m.Actors), "cameras", len(m.Cameras), "queries", len(m.Queries))
	return m, nil
}

// Parse decodes a single manifest held in memory. filename is used in
// diagnostics only.
func Parse(ctx context.Context, src []byte, filename string) (*Manifest, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrInvalid, filename, diags)
	}
	b := newBuilder()
	if err := b.merge(ctx, f, filename); err != nil {
		return nil, err
	}
	return b.finish()
}

// builder accumulates blocks across files and enforces name uniqueness.
type builder struct {
	m       *Manifest
	actors  map[string]string
	cameras map[string]string
	queries map[string]string
	scene   string
}

func newBuilder() *builder {
	return &builder{
		m:       &Manifest{},
		actors:  make(map[string]string),
		cameras: make(map[string]string),
		queries: make(map[string]string),
	}
}

func (b *builder) merge(ctx context.Context, f *hcl.File, filename string) error {
	logger := ctxlog.FromContext(ctx)

	var root fileRoot
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("%w: decoding %s: %w", ErrInvalid, filename, diags)
	}

	for _, s := range root.Scenes {
		if err := noExtraAttributes(s.Remain); err != nil {
			return fmt.Errorf("%w: scene %q: %w", ErrInvalid, s.Name, err)
		}
		if b.scene != "" {
			return fmt.Errorf("%w: %s: scene %q already declared at %s", ErrInvalid, pos(s.Remain), s.Name, b.scene)
		}
		b.scene = pos(s.Remain)
		b.m.Name = s.Name
	}

	for _, blk := range root.Actors {
		if prev, dup := b.actors[blk.Name]; dup {
			return fmt.Errorf("%w: %s: actor %q already declared at %s", ErrInvalid, pos(blk.Remain), blk.Name, prev)
		}
		attrs, err := bodyAttributes(blk.Remain)
		if err != nil {
			return fmt.Errorf("%w: actor %q: %w", ErrInvalid, blk.Name, err)
		}
		spec := &ActorSpec{Name: blk.Name, Kind: blk.Kind, Attrs: attrs, Pos: pos(blk.Remain)}
		for _, sb := range blk.Supports {
			sattrs, err := bodyAttributes(sb.Remain)
			if err != nil {
				return fmt.Errorf("%w: actor %q support %q: %w", ErrInvalid, blk.Name, sb.Kind, err)
			}
			spec.Supports = append(spec.Supports, &SupportSpec{Kind: sb.Kind, Attrs: sattrs, Pos: pos(sb.Remain)})
		}
		b.actors[blk.Name] = spec.Pos
		b.m.Actors = append(b.m.Actors, spec)
		logger.Debug("Decoded actor.", "name", spec.Name, "kind", spec.Kind, "supports", len(spec.Supports))
	}

	for _, blk := range root.Cameras {
		if err := noExtraAttributes(blk.Remain); err != nil {
			return fmt.Errorf("%w: camera %q: %w", ErrInvalid, blk.Name, err)
		}
		if prev, dup := b.cameras[blk.Name]; dup {
			return fmt.Errorf("%w: %s: camera %q already declared at %s", ErrInvalid, pos(blk.Remain), blk.Name, prev)
		}
		kind := blk.Kind
		if kind == "" {
			kind = "ortho"
		}
		spec := &CameraSpec{Name: blk.Name, Kind: kind, Target: blk.Target, Pos: pos(blk.Remain)}
		b.cameras[blk.Name] = spec.Pos
		b.m.Cameras = append(b.m.Cameras, spec)
	}

	for _, blk := range root.Queries {
		if err := noExtraAttributes(blk.Remain); err != nil {
			return fmt.Errorf("%w: query %q: %w", ErrInvalid, blk.Name, err)
		}
		if prev, dup := b.queries[blk.Name]; dup {
			return fmt.Errorf("%w: %s: query %q already declared at %s", ErrInvalid, pos(blk.Remain), blk.Name, prev)
		}
		mode := blk.Mode
		switch mode {
		case "":
			mode = ModeFirst
		case ModeFirst, ModeAll:
		default:
			return fmt.Errorf("%w: %s: query %q mode must be %q or %q, got %q", ErrInvalid, pos(blk.Remain), blk.Name, ModeFirst, ModeAll, mode)
		}
		spec := &QuerySpec{Name: blk.Name, Type: blk.Type, Mode: mode, Pos: pos(blk.Remain)}
		b.queries[blk.Name] = spec.Pos
		b.m.Queries = append(b.m.Queries, spec)
	}
	return nil
}

func (b *builder) finish() (*Manifest, error) {
	if b.m.Name == "" {
		b.m.Name = DefaultSceneName
	}
	for _, c := range b.m.Cameras {
		if c.Target == "" {
			continue
		}
		if _, ok := b.actors[c.Target]; !ok {
			return nil, fmt.Errorf("%w: %s: camera %q targets unknown actor %q", ErrInvalid, c.Pos, c.Name, c.Target)
		}
	}
	return b.m, nil
}
