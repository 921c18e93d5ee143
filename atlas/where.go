package atlas

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/atlasdatatech/mvtread/internal/log"
	"github.com/atlasdatatech/mvtread/mvt"
)

// Where is a compiled boolean feature filter. The expression sees the
// variables id, type, layer and tags, e.g. `type == "Polygon" && tags.class != "canal"`.
type Where struct {
	Source  string
	program *vm.Program
}

type ErrWhereInvalid struct {
	Source string
	Err    error
}

func (e ErrWhereInvalid) Error() string {
	return fmt.Sprintf("atlas: invalid where expression %q: %v", e.Source, e.Err)
}

func (e ErrWhereInvalid) Unwrap() error { return e.Err }

func whereEnv(layer string, f *mvt.Feature) map[string]interface{} {
	tags := make(map[string]interface{}, len(f.Attributes))
	for k, v := range f.Attributes {
		tags[k] = v.Interface()
	}
	return map[string]interface{}{
		"id":    f.ID,
		"type":  f.Type.String(),
		"layer": layer,
		"tags":  tags,
	}
}

// CompileWhere compiles src. An empty src gives a nil Where, which matches
// every feature.
func CompileWhere(src string) (*Where, error) {
	if src == "" {
		return nil, nil
	}

	program, err := expr.Compile(src, expr.Env(whereEnv("", &mvt.Feature{})), expr.AsBool())
	if err != nil {
		return nil, ErrWhereInvalid{Source: src, Err: err}
	}
	return &Where{Source: src, program: program}, nil
}

// Match reports whether f passes the filter. A feature the expression can
// not be evaluated for is kept.
func (w *Where) Match(layer string, f *mvt.Feature) bool {
	if w == nil {
		return true
	}

	out, err := expr.Run(w.program, whereEnv(layer, f))
	if err != nil {
		log.Warnf("atlas: where %q on layer %v feature %v: %v", w.Source, layer, f.ID, err)
		return true
	}
	keep, ok := out.(bool)
	return !ok || keep
}

// Apply drops the features of t that do not match.
func (w *Where) Apply(t *mvt.Tile) {
	if w == nil {
		return
	}
	for _, l := range t.Layers {
		kept := l.Features[:0]
		for _, f := range l.Features {
			if w.Match(l.Name, f) {
				kept = append(kept, f)
			}
		}
		l.Features = kept
	}
}
