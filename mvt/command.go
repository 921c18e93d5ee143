package mvt

import "fmt"

// CommandID is the 3 bit command part of a Command Integer.
type CommandID uint8

const (
	MoveTo    CommandID = 1
	LineTo    CommandID = 2
	ClosePath CommandID = 7
)

func (c CommandID) String() string {
	switch c {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case ClosePath:
		return "ClosePath"
	default:
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
}

func (c CommandID) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Command is one drawing instruction. X and Y are the cursor relative
// deltas carried by MoveTo and LineTo; they are zero for ClosePath.
type Command struct {
	ID CommandID `json:"cmd"`
	X  int64     `json:"dx"`
	Y  int64     `json:"dy"`
}

func (c Command) String() string {
	if c.ID == ClosePath {
		return c.ID.String()
	}
	return fmt.Sprintf("%v(%d,%d)", c.ID, c.X, c.Y)
}

// DecodeZigZag maps a zig-zag encoded parameter integer back to its signed value.
func DecodeZigZag(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

func parseCommandInteger(v uint32) (CommandID, int) {
	return CommandID(v & 0x7), int(v >> 3)
}

// DecodeCommands turns a feature's raw geometry array into drawing commands.
//
// Unknown command ids are skipped one integer at a time and reported with
// FaultInvalidCommand. A MoveTo or LineTo that announces more parameters
// than remain keeps the complete pairs it has, reports FaultTruncatedCommand
// at the command integer and ends decoding. A ClosePath is repeated count
// times. All ClosePath repeats of a feature share one budget of len(geometry)
// commands; repeats past it are dropped and reported with FaultExcessiveCount,
// so the output never holds more commands than the stream has integers.
//
// The function is pure: the same input always yields the same commands and
// faults.
func DecodeCommands(geometry []uint32) ([]Command, []Fault) {
	var (
		cmds   = make([]Command, 0, len(geometry)/2)
		faults []Fault
		// ClosePath repeats left for the whole feature
		closeBudget = len(geometry)
	)

	for i := 0; i < len(geometry); {
		id, count := parseCommandInteger(geometry[i])

		switch id {
		case MoveTo, LineTo:
			params := geometry[i+1:]
			if len(params) < 2*count {
				for j := 0; j+1 < len(params); j += 2 {
					cmds = append(cmds, Command{
						ID: id,
						X:  int64(DecodeZigZag(params[j])),
						Y:  int64(DecodeZigZag(params[j+1])),
					})
				}
				faults = append(faults, Fault{Kind: FaultTruncatedCommand, Index: i})
				return cmds, faults
			}
			for j := 0; j < count; j++ {
				cmds = append(cmds, Command{
					ID: id,
					X:  int64(DecodeZigZag(params[2*j])),
					Y:  int64(DecodeZigZag(params[2*j+1])),
				})
			}
			i += 1 + 2*count

		case ClosePath:
			if count > closeBudget {
				faults = append(faults, Fault{Kind: FaultExcessiveCount, Index: i})
				count = closeBudget
			}
			closeBudget -= count
			for j := 0; j < count; j++ {
				cmds = append(cmds, Command{ID: ClosePath})
			}
			i++

		default:
			faults = append(faults, Fault{Kind: FaultInvalidCommand, Index: i})
			i++
		}
	}

	return cmds, faults
}
