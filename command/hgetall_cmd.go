package command

import (
	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// hgetallCmd implements HGETALL key, returning a flat array alternating
// field, value in insertion order.
type hgetallCmd struct {
	key string
}

func newHGetAllCmd(args []resp.Frame) (Command, error) {
	if len(args) != 1 {
		return nil, wrongArity("hgetall")
	}
	key, err := bulkStringArg("hgetall", args, 0, "key")
	if err != nil {
		return nil, err
	}
	return hgetallCmd{key: key}, nil
}

func (c hgetallCmd) Execute(s *store.Store) resp.Frame {
	entries, ok := s.HGetAll(c.key)
	if !ok {
		return resp.Null()
	}
	items := make([]resp.Frame, 0, len(entries)*2)
	for _, e := range entries {
		items = append(items, resp.BulkStringFromString(e.Field), e.Value)
	}
	return resp.Array(items)
}
