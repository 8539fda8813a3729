package command

import (
	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// pingCmd implements PING [message], carried over from the teacher's own
// argument-less pingCmd but generalized to accept the optional message
// argument real Redis supports.
type pingCmd struct {
	hasMsg bool
	msg    resp.Frame
}

func newPingCmd(args []resp.Frame) (Command, error) {
	switch len(args) {
	case 0:
		return pingCmd{}, nil
	case 1:
		if args[0].Kind != resp.KindBulkString || args[0].IsNull() {
			return nil, wrongType("ping", "message")
		}
		return pingCmd{hasMsg: true, msg: args[0]}, nil
	default:
		return nil, wrongArity("ping")
	}
}

func (c pingCmd) Execute(s *store.Store) resp.Frame {
	if c.hasMsg {
		return c.msg
	}
	return resp.SimpleString("PONG")
}
