package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivanprosh/Mod-Petri/env"
	"github.com/ivanprosh/Mod-Petri/petrinet"
)

// newDataflowCmd builds the split/get/prepare/process/post pipeline: n items
// enter at id, split fans each into id1/id2/id3, get and prepare run
// concurrently as long jobs feeding process, post closes the loop and shares
// a one-token "channel" place with get so the two never run at once.
func newDataflowCmd() *cobra.Command {
	var n int
	var seed int64
	var workMillis int

	cmd := &cobra.Command{
		Use:   "dataflow",
		Short: "Run the split/get/prepare/process/post dataflow pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			runDataflow(n, seed, time.Duration(workMillis)*time.Millisecond)
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 10, "number of items to push through the pipeline")
	cmd.Flags().Int64Var(&seed, "seed", 1, "thread environment tie-break seed")
	cmd.Flags().IntVar(&workMillis, "work-ms", 20, "simulated work duration per long job invocation")
	return cmd
}

func runDataflow(n int, seed int64, work time.Duration) {
	te := env.NewThreadEnvironment(seed)

	named := func(label string) env.LongJob {
		return env.LongJobFunc(func() {
			petrinet.Logger.Info().Str("job", label).Msg("🚀 begin")
			time.Sleep(work)
			petrinet.Logger.Info().Str("job", label).Msg("✅ end")
		})
	}

	content := petrinet.NewContent()
	id := petrinet.NewPlace("id", "id")
	id1 := petrinet.NewPlace("id1", "id1")
	id2 := petrinet.NewPlace("id2", "id2")
	id3 := petrinet.NewPlace("id3", "id3")
	rules := petrinet.NewPlace("rules", "rules")
	state := petrinet.NewPlace("state", "state")
	control := petrinet.NewPlace("control", "control")
	result := petrinet.NewPlace("result", "result")
	channel := petrinet.NewPlace("channel", "channel")
	for _, p := range []*petrinet.Place{id, id1, id2, id3, rules, state, control, result, channel} {
		must(content.AddPlace(p))
	}

	split := petrinet.NewAtomicTransition("split", "split")
	get := te.NewLongTransition("get", "get", named("get"))
	prepare := te.NewLongTransition("prepare", "prepare", named("prepare"))
	process := te.NewLongTransition("process", "process", named("process"))
	post := te.NewLongTransition("post", "post", named("post"))
	must(content.AddTransition(split))
	must(content.AddTransition(get))
	must(content.AddTransition(prepare))
	must(content.AddTransition(process))
	must(content.AddTransition(post))

	must(content.AddInputArc(id, split))
	must(content.AddOutputArc(split, id1))
	must(content.AddOutputArc(split, id2))
	must(content.AddOutputArc(split, id3))

	must(content.AddInputArc(id1, get))
	must(content.AddOutputArc(get, state))
	must(content.AddInputArc(state, process))

	must(content.AddInputArc(id2, prepare))
	must(content.AddOutputArc(prepare, rules))
	must(content.AddInputArc(rules, process))

	must(content.AddOutputArc(process, control))

	must(content.AddInputArc(id3, post))
	must(content.AddInputArc(control, post))
	must(content.AddOutputArc(post, result))

	must(content.AddInputArc(channel, get))
	must(content.AddOutputArc(get, channel))
	must(content.AddInputArc(channel, post))
	must(content.AddOutputArc(post, channel))

	must(content.AddToken(id, n))
	must(content.AddToken(channel))

	net := petrinet.NewPetriNet("dataflow", content)
	petrinet.Logger.Info().Int("items", n).Msg("📋 dataflow pipeline starting")
	net.Live(te)
	must(te.WaitAll())

	petrinet.Logger.Info().Int("result", net.Marked()[result]).Msg("✅ dataflow pipeline complete")
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("petrisim: building dataflow net: %v", err))
	}
}
