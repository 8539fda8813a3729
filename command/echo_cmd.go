package command

import (
	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// echoCmd implements ECHO msg: the response is the same BulkString frame
// the client sent.
type echoCmd struct {
	msg resp.Frame
}

func newEchoCmd(args []resp.Frame) (Command, error) {
	if len(args) != 1 {
		return nil, wrongArity("echo")
	}
	if args[0].Kind != resp.KindBulkString || args[0].IsNull() {
		return nil, wrongType("echo", "msg")
	}
	return echoCmd{msg: args[0]}, nil
}

func (c echoCmd) Execute(s *store.Store) resp.Frame {
	return c.msg
}
