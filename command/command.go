// Package command implements the typed representation of every command
// this server supports, and the dispatcher that converts a decoded RESP
// array frame into one.
package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// Command is implemented by every supported command. Execute is total: it
// always returns a response frame and never an error, since conversion
// failures are reported earlier, by FromFrame.
type Command interface {
	Execute(s *store.Store) resp.Frame
}

// InvalidCommandError is returned by FromFrame when the outer frame is not
// an Array of at least one element, or its first element is not a
// BulkString.
type InvalidCommandError struct {
	Msg string
}

func (e *InvalidCommandError) Error() string { return "ERR " + e.Msg }

// InvalidCommandArgumentsError is returned by FromFrame when a command name
// matched, but its arguments have the wrong count or the wrong frame type.
type InvalidCommandArgumentsError struct {
	Cmd string
	Msg string
}

func (e *InvalidCommandArgumentsError) Error() string {
	return fmt.Sprintf("ERR %s for '%s' command", e.Msg, e.Cmd)
}

func wrongArity(cmd string) error {
	return &InvalidCommandArgumentsError{Cmd: cmd, Msg: "wrong number of arguments"}
}

func wrongType(cmd, arg string) error {
	return &InvalidCommandArgumentsError{Cmd: cmd, Msg: fmt.Sprintf("%s must be a bulk string", arg)}
}

// names is the sorted list of command names this server supports, used to
// answer the COMMAND introspection command. Assigned in init, following the
// teacher's direct-match dispatch table idiom rather than dynamic
// registration.
var names []string

func init() {
	for n := range dispatch {
		names = append(names, n)
	}
	sort.Strings(names)
}

// dispatch maps a lowercased command name to the constructor that validates
// and builds the typed Command for it.
var dispatch = map[string]func(args []resp.Frame) (Command, error){
	"get":      newGetCmd,
	"set":      newSetCmd,
	"hget":     newHGetCmd,
	"hset":     newHSetCmd,
	"hgetall":  newHGetAllCmd,
	"hmget":    newHMGetCmd,
	"echo":     newEchoCmd,
	"command":  newCommandCmd,
	"ping":     newPingCmd,
}

// FromFrame converts a decoded Array frame into a typed Command. The frame
// must be a non-null Array whose first element is a non-null BulkString
// naming the command; dispatch on that name is case-insensitive.
//
// An unrecognized command name is not an error: it produces the
// unknownCommand, whose Execute returns the "Unknown command" SimpleError
// per this protocol's policy.
func FromFrame(f resp.Frame) (Command, error) {
	if f.Kind != resp.KindArray || f.IsNull() {
		return nil, &InvalidCommandError{Msg: "expected an array of bulk strings"}
	}
	items := f.Items()
	if len(items) < 1 {
		return nil, &InvalidCommandError{Msg: "empty command"}
	}

	nameFrame := items[0]
	if nameFrame.Kind != resp.KindBulkString || nameFrame.IsNull() {
		return nil, &InvalidCommandError{Msg: "command name must be a bulk string"}
	}
	name := strings.ToLower(string(nameFrame.Bytes()))

	ctor, ok := dispatch[name]
	if !ok {
		return unknownCommand{name: name}, nil
	}
	return ctor(items[1:])
}

// bulkStringArg extracts the payload of args[i] as a string, failing with
// InvalidCommandArgumentsError if it is not a non-null BulkString.
func bulkStringArg(cmd string, args []resp.Frame, i int, label string) (string, error) {
	if args[i].Kind != resp.KindBulkString || args[i].IsNull() {
		return "", wrongType(cmd, label)
	}
	return string(args[i].Bytes()), nil
}

var (
	okFrame         = resp.SimpleString("OK")
	unknownCmdFrame = resp.SimpleError("Unknown command")
)
