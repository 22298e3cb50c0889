package manifest

// DefaultSceneName is used when no scene block is present.
const DefaultSceneName = "default"

// Query modes.
const (
	ModeFirst = "first"
	ModeAll   = "all"
)

// Manifest is the merged content of one or more manifest files.
type Manifest struct {
	Name    string
	Actors  []*ActorSpec
	Cameras []*CameraSpec
	Queries []*QuerySpec
}

// ActorSpec is an `actor` block.
type ActorSpec struct {
	Name     string
	Kind     string
	Attrs    map[string]any
	Supports []*SupportSpec
	Pos      string
}

// SupportSpec is a `support` block nested in an actor.
type SupportSpec struct {
	Kind  string
	Attrs map[string]any
	Pos   string
}

// CameraSpec is a `camera` block. Target names an actor and may be empty.
type CameraSpec struct {
	Name   string
	Kind   string
	Target string
	Pos    string
}

// QuerySpec is a `query` block. Type is a catalog type name.
type QuerySpec struct {
	Name string
	Type string
	Mode string
	Pos  string
}

// Actor returns the actor spec with the given name.
func (m *Manifest) Actor(name string) (*ActorSpec, bool) {
	for _, a := range m.Actors {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Query returns the query spec with the given name.
func (m *Manifest) Query(name string) (*QuerySpec, bool) {
	for _, q := range m.Queries {
		if q.Name == name {
			return q, true
		}
	}
	return nil, false
}
