package command

import (
	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// commandCmd implements the argument-less COMMAND introspection command,
// carried over from the teacher's own commandCmd: it costs nothing and
// answers "what can this server do".
type commandCmd struct{}

func newCommandCmd(args []resp.Frame) (Command, error) {
	if len(args) != 0 {
		return nil, wrongArity("command")
	}
	return commandCmd{}, nil
}

func (c commandCmd) Execute(s *store.Store) resp.Frame {
	items := make([]resp.Frame, len(names))
	for i, n := range names {
		items[i] = resp.BulkStringFromString(n)
	}
	return resp.Array(items)
}
