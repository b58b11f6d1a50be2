package argfn

import "fmt"

// bindArgs matches positional and keyword arguments against fn's declared
// parameters and returns the resulting argument mapping.
//
// Positional arguments are assigned left to right. Keyword arguments that do
// not match a declared parameter are dropped, unless extra is true, in which
// case they are admitted into the result verbatim so later chain nodes can
// consume them. Declared defaults are applied for parameters still missing
// after structural binding. When partial is true, unfilled required
// parameters are omitted from the result instead of producing a *BindError.
//
// bindArgs is a pure function of its inputs.
func bindArgs(fn *Func, pos []any, kw Values, partial, extra bool) (Values, error) {
	if len(pos) > len(fn.params) {
		return nil, newBindError(fn.name, pos, kw,
			fmt.Sprintf("takes %d parameters but %d positional arguments were given", len(fn.params), len(pos)))
	}

	vals := make(Values, len(fn.params))
	for i, v := range pos {
		name := fn.params[i].name
		if _, dup := kw[name]; dup {
			return nil, newBindError(fn.name, pos, kw,
				fmt.Sprintf("got multiple values for parameter %q", name))
		}
		vals[name] = v
	}

	for _, p := range fn.params {
		if _, ok := vals[p.name]; ok {
			continue
		}
		if v, ok := kw[p.name]; ok {
			vals[p.name] = v
		}
	}

	var missing []string
	for _, p := range fn.params {
		if _, ok := vals[p.name]; ok {
			continue
		}
		if p.hasDef {
			vals[p.name] = p.def
		} else if !partial {
			missing = append(missing, p.name)
		}
	}
	if len(missing) > 0 {
		return nil, &BindError{Target: fn.name, Pos: pos, Kw: kw, Missing: missing}
	}

	if extra {
		declared := make(map[string]bool, len(fn.params))
		for _, p := range fn.params {
			declared[p.name] = true
		}
		for name, v := range kw {
			if !declared[name] {
				vals[name] = v
			}
		}
	}

	return vals, nil
}
