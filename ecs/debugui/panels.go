package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/starfall/ecs"
)

const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY

type entityRow struct {
	Id         ecs.EntityId
	Archetype  uint32
	Components string
}

// listEntities returns every live entity whose id, archetype or component
// names contain filter, case-insensitively.
func listEntities(storage *ecs.Storage, filter string) []entityRow {
	filter = strings.ToLower(filter)
	var rows []entityRow
	for _, archetype := range storage.Archetypes() {
		components := typeNames(archetype)
		match := filter == "" ||
			strings.Contains(strings.ToLower(components), filter) ||
			strings.Contains(fmt.Sprintf("0x%x", archetype.ID()), filter)

		for id := range archetype.Iter() {
			if match || strings.Contains(fmt.Sprint(uint64(id)), filter) {
				rows = append(rows, entityRow{Id: id, Archetype: archetype.ID(), Components: components})
			}
		}
	}
	return rows
}

func typeNames(archetype *ecs.Archetype) string {
	names := make([]string, len(archetype.Types()))
	for i, t := range archetype.Types() {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// describeEntity renders each of the entity's components as "type: value".
// It returns nil for a dead entity.
func describeEntity(storage *ecs.Storage, id ecs.EntityId) []string {
	if !storage.Alive(id) {
		return nil
	}
	var out []string
	for _, archetype := range storage.Archetypes() {
		if archetype.ID() != id.ArchetypeId() {
			continue
		}
		for _, t := range archetype.Types() {
			out = append(out, fmt.Sprintf("%s: %+v", t, storage.GetComponent(id, t)))
		}
	}
	return out
}

type entityBrowser struct {
	pageSize int
	page     int
	filter   string
	selected ecs.EntityId
}

func newEntityBrowser(pageSize int) *entityBrowser {
	return &entityBrowser{pageSize: pageSize}
}

func (b *entityBrowser) render(storage *ecs.Storage) {
	if storage == nil {
		return
	}
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 360), imgui.CondOnce)
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter...", &b.filter, imgui.InputTextFlagsNone, nil)
	rows := listEntities(storage, b.filter)
	pages := max(1, (len(rows)+b.pageSize-1)/b.pageSize)
	b.page = min(b.page, pages-1)

	imgui.Text(fmt.Sprintf("%d entities, page %d/%d", len(rows), b.page+1, pages))
	imgui.SameLine()
	if imgui.Button("Prev") && b.page > 0 {
		b.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && b.page < pages-1 {
		b.page++
	}

	if imgui.BeginTableV("entities", 3, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		start := b.page * b.pageSize
		for _, row := range rows[start:min(start+b.pageSize, len(rows))] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", uint64(row.Id)), b.selected == row.Id, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				b.selected = row.Id
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", row.Archetype))
			imgui.TableNextColumn()
			imgui.Text(row.Components)
		}
		imgui.EndTable()
	}

	imgui.Separator()
	if fields := describeEntity(storage, b.selected); fields != nil {
		for _, field := range fields {
			imgui.BulletText(field)
		}
	} else {
		imgui.Text("No entity selected")
	}
	imgui.End()
}

type archetypeViewer struct{}

func (v *archetypeViewer) render(storage *ecs.Storage) {
	if storage == nil {
		return
	}
	if !imgui.BeginV("Archetypes", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("%d entities in %d archetypes, %d singletons",
		stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

	if imgui.BeginTableV("archetypes", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()
		for _, arch := range stats.ArchetypeBreakdown {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", arch.Id))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			imgui.TableNextColumn()
			names := make([]string, len(arch.Types))
			for i, t := range arch.Types {
				names[i] = t.String()
			}
			imgui.Text(strings.Join(names, ", "))
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, t := range stats.SingletonTypes {
			imgui.BulletText(t.String())
		}
		imgui.TreePop()
	}
	imgui.End()
}

// frameHistory is a ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func (h *frameHistory) push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, s := range h.samples[:h.filled] {
		total += s
	}
	return total / float32(h.filled)
}

// frameTime sums the last run of every system.
func frameTime(stats *ecs.SchedulerStats) time.Duration {
	var total time.Duration
	for _, s := range stats.Systems {
		total += s.LastDuration
	}
	return total
}

type systemTimings struct {
	history  frameHistory
	lastTick uint64
}

func newSystemTimings(frames int) *systemTimings {
	return &systemTimings{history: frameHistory{samples: make([]float32, frames)}}
}

func (t *systemTimings) render(scheduler *ecs.Scheduler) {
	if scheduler == nil {
		return
	}
	stats := scheduler.GetStats()
	// Only record a sample when the simulation actually stepped.
	if tick := scheduler.Tick(); tick != t.lastTick {
		t.lastTick = tick
		t.history.push(float32(frameTime(stats).Seconds() * 1000))
	}

	if !imgui.BeginV("Systems", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Tick %d, avg simulation frame %.3f ms", t.lastTick, t.history.average()))
	imgui.PlotLinesFloatPtr("##frametime", &t.history.samples[0], int32(len(t.history.samples)))

	if imgui.BeginTableV("systems", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()
		for _, s := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(s.LastDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
		}
		imgui.EndTable()
	}
	imgui.End()
}
