package inmemorylookup

import (
	"encoding"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

// ordered stands in for a "comparable" capability.
type ordered interface {
	CompareTo(other any) int
}

type label string

func (l label) String() string { return string(l) }

func (l label) CompareTo(other any) int {
	o, _ := other.(label)
	return strings.Compare(string(l), string(o))
}

func (l label) MarshalText() ([]byte, error) { return []byte(l), nil }

type y interface{ Y() }

type ed interface {
	y
	Ed()
}

type bar struct{ id int }

type foo struct {
	bar
	name string
}

func (*foo) Y()  {}
func (*foo) Ed() {}

type other struct{ id int }

func (*other) Y() {}

func testWalker() *typeclosure.Walker {
	return typeclosure.New(
		typeclosure.KeyOf[fmt.Stringer](),
		typeclosure.KeyOf[ordered](),
		typeclosure.KeyOf[encoding.TextMarshaler](),
		typeclosure.KeyOf[ed](),
		typeclosure.KeyOf[y](),
	)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRegistry() *Registry {
	return New(WithWalker(testWalker()), WithLogger(quietLogger()))
}

func newTestMulti() *MultiRegistry {
	return NewMulti(WithWalker(testWalker()), WithLogger(quietLogger()))
}

// boxed is comparable by type but not by value when v holds a slice or map.
type boxed struct{ v any }
