package command

import (
	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// unknownCommand is returned by FromFrame for any command name not present
// in the dispatch table. It is not itself an error: per this protocol's
// policy, an unrecognized command produces a SimpleError response and the
// connection continues.
type unknownCommand struct {
	name string
}

func (c unknownCommand) Execute(s *store.Store) resp.Frame {
	return unknownCmdFrame
}
