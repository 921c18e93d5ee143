package mvt

import vectorTile "github.com/atlasdatatech/mvtread/mvt/vector_tile"

// valueTable is a layer's value table resolved once, with the fault each
// entry produced.
type valueTable struct {
	values []Value
	faults []FaultKind
}

func resolveTable(raw []*vectorTile.Tile_Value) valueTable {
	t := valueTable{
		values: make([]Value, len(raw)),
		faults: make([]FaultKind, len(raw)),
	}
	for i, v := range raw {
		t.values[i], t.faults[i] = ResolveValue(v)
	}
	return t
}

// AssembleAttributes pairs a feature's tags against a layer's key and value
// tables. Later pairs overwrite earlier ones with the same key. Pairs with an
// out of range index are skipped and reported; the rest of the feature is
// still resolved.
func AssembleAttributes(tags []uint32, keys []string, values []*vectorTile.Tile_Value) (map[string]Value, []Fault) {
	return assembleAttributes(tags, keys, resolveTable(values))
}

func assembleAttributes(tags []uint32, keys []string, table valueTable) (map[string]Value, []Fault) {
	var (
		attrs  = make(map[string]Value, len(tags)/2)
		faults []Fault
	)

	for i := 0; i < len(tags); i += 2 {
		if i+1 >= len(tags) {
			faults = append(faults, Fault{Kind: FaultOddTagCount, Index: i})
			break
		}

		ki, vi := int(tags[i]), int(tags[i+1])
		if ki >= len(keys) {
			faults = append(faults, Fault{Kind: FaultTagIndexOutOfRange, Index: i})
			continue
		}
		if vi >= len(table.values) {
			faults = append(faults, Fault{Kind: FaultTagIndexOutOfRange, Index: i + 1})
			continue
		}

		if fk := table.faults[vi]; fk != FaultNone {
			faults = append(faults, Fault{Kind: fk, Index: i + 1})
		}
		attrs[keys[ki]] = table.values[vi]
	}

	return attrs, faults
}
