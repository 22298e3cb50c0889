package manifest

import (
	"context"
	"fmt"

	"github.com/specialistvlad/lookupgo/internal/ctxlog"
	"github.com/specialistvlad/lookupgo/internal/scene"
)

// Build instantiates the scene a manifest describes. Actors are created in
// declaration order and their supports attached in block order, then
// cameras are added with their targets resolved by actor name.
func Build(ctx context.Context, m *Manifest, cat *scene.Catalog) (*scene.Scene, error) {
	logger := ctxlog.FromContext(ctx)
	sc := cat.NewScene(m.Name)

	byName := make(map[string]*scene.Actor, len(m.Actors))
	for _, spec := range m.Actors {
		node, err := cat.NewActor(spec.Kind, spec.Name, spec.Attrs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Pos, err)
		}
		base := node.Base()
		for _, sup := range spec.Supports {
			s, err := cat.NewSupport(sup.Kind, base, sup.Attrs)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", sup.Pos, err)
			}
			if err := base.Attach(s); err != nil {
				return nil, fmt.Errorf("%s: attaching %s to %q: %w", sup.Pos, sup.Kind, spec.Name, err)
			}
		}
		if err := sc.AddNode(node); err != nil {
			return nil, err
		}
		byName[spec.Name] = base
		logger.Debug("Actor added to scene.", "actor", spec.Name, "kind", spec.Kind, "supports", len(spec.Supports))
	}

	for _, spec := range m.Cameras {
		var target *scene.Actor
		if spec.Target != "" {
			t, ok := byName[spec.Target]
			if !ok {
				return nil, fmt.Errorf("%w: %s: camera %q targets unknown actor %q", ErrInvalid, spec.Pos, spec.Name, spec.Target)
			}
			target = t
		}
		cam, err := cat.NewCamera(spec.Name, spec.Kind, target)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Pos, err)
		}
		if err := sc.AddCamera(cam); err != nil {
			return nil, err
		}
	}

	logger.Info("Scene built.", "scene", sc.Name(), "objects", sc.Objects().Len())
	return sc, nil
}
