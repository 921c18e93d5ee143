package mvt

import (
	"fmt"

	"github.com/atlasdatatech/mvtread/internal/log"
)

// FaultKind identifies a recoverable problem found while decoding a feature.
type FaultKind uint8

const (
	FaultNone FaultKind = iota
	// an integer in the geometry stream carries an unknown command id
	FaultInvalidCommand
	// a MoveTo or LineTo announces more parameters than the stream holds
	FaultTruncatedCommand
	// a ClosePath repeat count larger than the geometry stream itself
	FaultExcessiveCount
	// a command that has no meaning for the feature's geometry type
	FaultUnexpectedCommand
	// a LineTo arrived with no open ring or line
	FaultOrphanLineTo
	// a MoveTo arrived while a ring was still open
	FaultReopenedRing
	// a ring with non-positive area was dropped
	FaultInteriorRing
	// the command list ended with a ring still open
	FaultUnterminatedRing
	// a tag pair points past the layer's keys or values table
	FaultTagIndexOutOfRange
	// the tags array has a trailing key without a value
	FaultOddTagCount
	// a value table entry has none of the known variants populated
	FaultUnresolvedValue
	// an unsigned value does not fit a signed 64 bit integer
	FaultValueOverflow
)

var faultKindNames = [...]string{
	FaultNone:               "none",
	FaultInvalidCommand:     "invalid-command",
	FaultTruncatedCommand:   "truncated-command",
	FaultExcessiveCount:     "excessive-count",
	FaultUnexpectedCommand:  "unexpected-command",
	FaultOrphanLineTo:       "orphan-lineto",
	FaultReopenedRing:       "reopened-ring",
	FaultInteriorRing:       "interior-ring-discarded",
	FaultUnterminatedRing:   "unterminated-ring",
	FaultTagIndexOutOfRange: "tag-index-out-of-range",
	FaultOddTagCount:        "odd-tag-count",
	FaultUnresolvedValue:    "unresolved-value",
	FaultValueOverflow:      "value-overflow",
}

func (k FaultKind) String() string {
	if int(k) < len(faultKindNames) {
		return faultKindNames[k]
	}
	return fmt.Sprintf("fault(%d)", uint8(k))
}

func (k FaultKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Fault is a recoverable problem local to one feature. The meaning of Index
// depends on the stage that found it: geometry faults index the raw geometry
// array, ring and line faults index the decoded command list, and attribute
// faults index the raw tags array.
type Fault struct {
	Kind  FaultKind
	Index int
}

// Diagnostic is a Fault attributed to a feature of a layer.
type Diagnostic struct {
	FeatureID uint64    `json:"feature_id"`
	Layer     string    `json:"layer"`
	Kind      FaultKind `json:"kind"`
	Index     int       `json:"index"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("layer %q feature %d: %v at index %d", d.Layer, d.FeatureID, d.Kind, d.Index)
}

func logDiagnostic(d Diagnostic) {
	log.WithFields(log.Fields{
		"layer":   d.Layer,
		"feature": d.FeatureID,
		"kind":    d.Kind.String(),
		"index":   d.Index,
	}).Warn("recoverable decode fault")
}
