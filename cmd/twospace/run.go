// ABOUTME: The body of the twospace command, separated from flag handling for tests
// ABOUTME: Wires configuration, logging, the script runner, dump codecs and analysis

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/inhies/go-bytesize"
	"github.com/tliron/commonlog"

	"github.com/prateek/twospace/configuration"
	"github.com/prateek/twospace/graph"
	"github.com/prateek/twospace/heap"
	"github.com/prateek/twospace/heapdump"
	"github.com/prateek/twospace/script"
)

func run(c configuration.Configuration, out io.Writer) error {
	var logPath *string
	if c.LogFile != "" {
		logPath = &c.LogFile
	}
	commonlog.Configure(c.Verbose, logPath)
	log := commonlog.GetLogger("twospace")

	if err := c.Validate(); err != nil {
		return err
	}
	codec, err := heapdump.Lookup(c.Format)
	if err != nil {
		return err
	}

	prog := script.Demo()
	if c.Script != "" {
		if prog, err = script.Load(c.Script); err != nil {
			return err
		}
	}

	cfg := prog.Config(c.Heap())
	cfg.Logger = commonlog.GetLogger("twospace.heap")
	col, err := heap.New(cfg)
	if err != nil {
		return err
	}
	log.Info("running program", "steps", len(prog.Steps), "heap", col.ID(), "semispace", cfg.SemispaceSize)

	hooks := script.Hooks{
		Dump: func(step int, label string, snap heap.Snapshot) error {
			return dump(c, codec, out, step, label, snap)
		},
		Collected: func(step int, st heap.Stats) {
			fmt.Fprintf(out, "# step %d: gc epoch=%d live=%d reclaimed=%d copied=%d\n",
				step, st.Epoch, st.Live, st.Reclaimed, st.ChunksRelocated)
		},
	}
	if err := script.Run(prog, col, hooks); err != nil {
		return err
	}

	fmt.Fprintf(out, "# occupancy %s\n", col.Occupancy())
	if c.Analyze {
		analyze(out, col.Snapshot(), c.Top)
	}
	return nil
}

func dump(c configuration.Configuration, codec heapdump.Codec, out io.Writer, step int, label string, snap heap.Snapshot) error {
	if c.Output == "" {
		fmt.Fprintf(out, "# step %d: %s\n", step, label)
		return codec.Encode(out, snap)
	}

	if err := os.MkdirAll(c.Output, 0o755); err != nil {
		return err
	}
	path := filepath.Join(c.Output, fmt.Sprintf("%03d.%s", step, codec.Name()))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := codec.Encode(f, snap); err != nil {
		f.Close()
		return err
	}
	fmt.Fprintf(out, "# step %d: %s -> %s\n", step, label, path)
	return f.Close()
}

// analyze prints the live chunks retaining the most memory.
func analyze(out io.Writer, snap heap.Snapshot, top int) {
	g := graph.FromSnapshot(snap)
	retained := graph.RetainedSize(g)

	ids := make([]graph.ObjID, 0, len(retained))
	for id := range retained {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if retained[ids[i]] != retained[ids[j]] {
			return retained[ids[i]] > retained[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > top {
		ids = ids[:top]
	}

	depth := graph.DominatorDepth(graph.DominatorTree(graph.Dominators(g)))
	fmt.Fprintf(out, "# retained sizes (%d live, %d garbage)\n", len(retained), len(graph.Garbage(g)))
	for _, id := range ids {
		obj := g.GetObject(id)
		fmt.Fprintf(out, "slot %-6d %-4s retained %-10s depth %d\n",
			id.Slot(), obj.Kind, bytesize.New(float64(retained[id])), depth[id])
	}
}
