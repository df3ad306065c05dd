package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgKey
	MsgPointer
	MsgEquationSet
	MsgPresetSelect
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgKey:
		return "key"
	case MsgPointer:
		return "pointer"
	case MsgEquationSet:
		return "equation_set"
	case MsgPresetSelect:
		return "preset_select"
	default:
		return "unknown"
	}
}
