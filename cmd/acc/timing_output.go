package main

import (
	"fmt"
	"io"
	"time"

	"ashlang/internal/pipeline"
)

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	verbs := map[pipeline.Stage]string{
		pipeline.StageLocate:   "located",
		pipeline.StageCompile:  "compiled",
		pipeline.StageEmit:     "emitted",
		pipeline.StageAssemble: "assembled",
		pipeline.StageProve:    "proved",
	}
	for _, st := range pipeline.Stages {
		if !timings.Has(st) {
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", verbs[st], toMillis(timings.Duration(st)))
	}
	fmt.Fprintf(out, "total %.1f ms\n", toMillis(timings.Total()))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
