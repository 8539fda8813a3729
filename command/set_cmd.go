package command

import (
	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// setCmd implements SET key value. The value may be any frame; the wire
// protocol only ever hands us BulkStrings (requests are restricted to
// arrays of bulk strings), but the command model itself does not narrow it
// further.
type setCmd struct {
	key   string
	value resp.Frame
}

func newSetCmd(args []resp.Frame) (Command, error) {
	if len(args) != 2 {
		return nil, wrongArity("set")
	}
	key, err := bulkStringArg("set", args, 0, "key")
	if err != nil {
		return nil, err
	}
	return setCmd{key: key, value: args[1]}, nil
}

func (c setCmd) Execute(s *store.Store) resp.Frame {
	s.Set(c.key, c.value)
	return okFrame
}
