// Package js provides client-side commands pushed over a live socket.
// These commands execute in the browser without another server roundtrip.
package js

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event is the socket event that carries command ops to the client.
const Event = "js"

// Command represents a JavaScript command to execute on the client.
type Command interface {
	// ToJS returns equivalent JavaScript, used for inline handlers.
	ToJS() string

	// Op returns the structured form sent over the socket.
	Op() Op
}

// Op is one client instruction: a name plus its arguments.
type Op struct {
	Name string
	Args map[string]any
}

// Map returns the op in wire form.
func (o Op) Map() map[string]any {
	m := map[string]any{"op": o.Name}
	if len(o.Args) > 0 {
		m["args"] = o.Args
	}
	return m
}

// Commands holds a sequence of commands.
type Commands []Command

// ToJS returns the JavaScript for all commands.
func (cs Commands) ToJS() string {
	var parts []string
	for _, c := range cs {
		parts = append(parts, c.ToJS())
	}
	return strings.Join(parts, ";")
}

// String implements fmt.Stringer.
func (cs Commands) String() string {
	return cs.ToJS()
}

// Ops returns the commands in wire form.
func (cs Commands) Ops() []map[string]any {
	ops := make([]map[string]any, 0, len(cs))
	for _, c := range cs {
		ops = append(ops, c.Op().Map())
	}
	return ops
}

// Payload builds the socket payload for cmds.
func Payload(cmds ...Command) map[string]any {
	return map[string]any{"ops": Commands(cmds).Ops()}
}

type jsCommand struct {
	op   Op
	code string
}

func (c jsCommand) ToJS() string   { return c.code }
func (c jsCommand) Op() Op         { return c.op }
func (c jsCommand) String() string { return c.code }

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// Navigate sends the browser to href.
func Navigate(href string) Command {
	return jsCommand{
		op:   Op{Name: "navigate", Args: map[string]any{"href": href}},
		code: fmt.Sprintf(`launchpad.js.navigate(%s)`, quote(href)),
	}
}

// ScrollTo scrolls the element matching selector into view.
func ScrollTo(selector string, opts ...ScrollOption) Command {
	config := scrollConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	args := map[string]any{"target": selector}
	if config.smooth {
		args["smooth"] = true
	}
	if config.duration > 0 {
		args["duration"] = config.duration
	}
	return jsCommand{
		op: Op{Name: "scroll", Args: args},
		code: fmt.Sprintf(`launchpad.js.scrollTo(%s,{smooth:%t,duration:%d})`,
			quote(selector), config.smooth, config.duration),
	}
}

type scrollConfig struct {
	smooth   bool
	duration int
}

type ScrollOption func(*scrollConfig)

func Smooth() ScrollOption {
	return func(c *scrollConfig) {
		c.smooth = true
	}
}

// Duration sets the scroll animation length in milliseconds.
func Duration(ms int) ScrollOption {
	return func(c *scrollConfig) {
		c.duration = ms
	}
}
