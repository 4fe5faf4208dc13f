package main

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/starfall/ecs"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Enemies  int
	Bullets  int
	Stars    int
	Workers  int

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	SoundCues      int
	Compactions    int
	Systems        *ecs.SchedulerStats
	Storage        *ecs.StorageStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Starfall Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Enemies:** {{.Enemies}}
- **Initial Bullets:** {{.Bullets}}
- **Stars:** {{.Stars}}
- **Workers:** {{if .Workers}}{{.Workers}}{{else}}GOMAXPROCS{{end}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Sound Cues Queued:** {{.SoundCues}}
- **Storage Compactions:** {{.Compactions}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Systems.Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## Storage
- **Archetypes:** {{.Storage.ArchetypeCount}}
- **Live Entities:** {{.Storage.TotalEntityCount}}
{{- range .Storage.ArchetypeBreakdown}}
  - {{.EntityCount}} x {{join .Types}}
{{- end}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MiB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MiB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc | mb}} MiB
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MiB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MiB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc | mb}} MiB
- Sys Memory:     {{mb .MemStatsStart.Sys}} MiB (start) -> {{mb .MemStatsEnd.Sys}} MiB (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"join": func(types []reflect.Type) string {
			names := make([]string, len(types))
			for i, t := range types {
				names[i] = t.String()
			}
			return strings.Join(names, ", ")
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
