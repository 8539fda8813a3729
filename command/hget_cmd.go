package command

import (
	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// hgetCmd implements HGET key field.
type hgetCmd struct {
	key, field string
}

func newHGetCmd(args []resp.Frame) (Command, error) {
	if len(args) != 2 {
		return nil, wrongArity("hget")
	}
	key, err := bulkStringArg("hget", args, 0, "key")
	if err != nil {
		return nil, err
	}
	field, err := bulkStringArg("hget", args, 1, "field")
	if err != nil {
		return nil, err
	}
	return hgetCmd{key: key, field: field}, nil
}

func (c hgetCmd) Execute(s *store.Store) resp.Frame {
	if v, ok := s.HGet(c.key, c.field); ok {
		return v
	}
	return resp.Null()
}
