package command

import (
	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// hmgetCmd implements HMGET key field [field ...]. Arity is fixed at 1
// (key) plus n fields, n >= 1 — the original arity check this command was
// modeled from used the argument count itself as the expected count, which
// is self-referential; this is the corrected contract.
type hmgetCmd struct {
	key    string
	fields []string
}

func newHMGetCmd(args []resp.Frame) (Command, error) {
	if len(args) < 2 {
		return nil, wrongArity("hmget")
	}
	key, err := bulkStringArg("hmget", args, 0, "key")
	if err != nil {
		return nil, err
	}
	fields := make([]string, len(args)-1)
	for i := range args[1:] {
		f, err := bulkStringArg("hmget", args, i+1, "field")
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return hmgetCmd{key: key, fields: fields}, nil
}

func (c hmgetCmd) Execute(s *store.Store) resp.Frame {
	values, ok := s.HMGet(c.key, c.fields)
	if !ok {
		return resp.Null()
	}
	return resp.Array(values)
}
