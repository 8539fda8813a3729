package command

import (
	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// getCmd implements GET key.
type getCmd struct {
	key string
}

func newGetCmd(args []resp.Frame) (Command, error) {
	if len(args) != 1 {
		return nil, wrongArity("get")
	}
	key, err := bulkStringArg("get", args, 0, "key")
	if err != nil {
		return nil, err
	}
	return getCmd{key: key}, nil
}

func (c getCmd) Execute(s *store.Store) resp.Frame {
	if v, ok := s.Get(c.key); ok {
		return v
	}
	return resp.Null()
}
