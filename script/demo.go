// ABOUTME: Built-in demonstration program
// ABOUTME: Walks a self-reference, a rooted leaf and a two-chunk structure through collections

package script

import "strings"

const demoSource = `
[heap]
semispace = 1024
roots = 512

# A self-referencing chunk with nothing rooted is garbage.
[[step]]
op = "alloc"
name = "c"
[[step]]
op = "set"
name = "c"
ref = "c"
[[step]]
op = "dump"
label = "self reference"
[[step]]
op = "gc"
[[step]]
op = "expect"
live = 0
[[step]]
op = "dump"
label = "after collecting garbage"

# A rooted leaf survives.
[[step]]
op = "alloc"
name = "c"
leaf = 23
[[step]]
op = "dump"
label = "leaf"
[[step]]
op = "push"
name = "c"
[[step]]
op = "gc"
[[step]]
op = "expect"
live = 1
depth = 1
[[step]]
op = "dump"
label = "rooted leaf"

# Once popped it goes.
[[step]]
op = "pop"
[[step]]
op = "gc"
[[step]]
op = "expect"
live = 0
depth = 0
[[step]]
op = "dump"
label = "after pop"

# A reference and its target survive repeated collections.
[[step]]
op = "alloc"
name = "c"
[[step]]
op = "alloc"
name = "d"
leaf = 42
[[step]]
op = "set"
name = "c"
ref = "d"
[[step]]
op = "dump"
label = "reference to leaf"
[[step]]
op = "push"
name = "c"
[[step]]
op = "gc"
[[step]]
op = "expect"
live = 2
[[step]]
op = "dump"
label = "first collection"
[[step]]
op = "gc"
[[step]]
op = "expect"
live = 2
depth = 1
[[step]]
op = "dump"
label = "second collection"

# Handles taken before a collection are stale; peek recovers the root.
[[step]]
op = "set"
name = "c"
leaf = 1
error = "stale_handle"
[[step]]
op = "peek"
name = "c"
[[step]]
op = "set"
name = "d"
ref = "c"
error = "stale_handle"
`

// Demo returns the demonstration program.
func Demo() *Program {
	p, err := Parse(strings.NewReader(demoSource))
	if err != nil {
		panic("script: demo program does not parse: " + err.Error())
	}
	return p
}
