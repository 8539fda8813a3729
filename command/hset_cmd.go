package command

import (
	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// hsetCmd implements HSET key field value.
type hsetCmd struct {
	key, field string
	value      resp.Frame
}

func newHSetCmd(args []resp.Frame) (Command, error) {
	if len(args) != 3 {
		return nil, wrongArity("hset")
	}
	key, err := bulkStringArg("hset", args, 0, "key")
	if err != nil {
		return nil, err
	}
	field, err := bulkStringArg("hset", args, 1, "field")
	if err != nil {
		return nil, err
	}
	if args[2].Kind != resp.KindBulkString || args[2].IsNull() {
		return nil, wrongType("hset", "value")
	}
	return hsetCmd{key: key, field: field, value: args[2]}, nil
}

func (c hsetCmd) Execute(s *store.Store) resp.Frame {
	s.HSet(c.key, c.field, c.value)
	return okFrame
}
