package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/taskfall/store"
	"github.com/lixenwraith/taskfall/task"
	"github.com/lixenwraith/taskfall/visual"
)

// dueFilter selects tasks by due date for inspect
type dueFilter uint8

const (
	dueAll dueFilter = iota
	dueAvailable
	dueOverdue
)

// archivedLister is a source that keeps archived tasks
type archivedLister interface {
	ListArchived(ctx context.Context) ([]task.Task, error)
}

func addInspect(topLevel *cobra.Command, opts *rootOptions) {
	var (
		width     float64
		height    float64
		overdue   bool
		available bool
		archived  bool
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the body every task maps to.",
		Example: `
taskfall inspect
taskfall inspect --overdue
taskfall inspect --archived
taskfall inspect --source ~/tasks.yaml --width 160 --height 90
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			setupLogging(false)

			src, err := store.Open(cfg.Source())
			if err != nil {
				return fmt.Errorf("open source: %w", err)
			}
			defer store.Close(src)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			tasks, err := listInspect(ctx, src, archived)
			if err != nil {
				return err
			}
			filter := dueAll
			switch {
			case overdue:
				filter = dueOverdue
			case available:
				filter = dueAvailable
			}
			now := time.Now()
			tasks = filterDue(tasks, filter, now)
			task.SortStack(tasks)

			if f, ok := cmd.OutOrStdout().(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
				color.NoColor = true
			}
			writeInspect(cmd.OutOrStdout(), tasks, width, height, now)
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 100, "Viewport width used for sizing")
	cmd.Flags().Float64Var(&height, "height", 60, "Viewport height used for sizing")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only tasks whose due date has passed")
	cmd.Flags().BoolVar(&available, "available", false, "Only tasks that are not overdue")
	cmd.Flags().BoolVar(&archived, "archived", false, "List archived tasks instead (database sources only)")
	cmd.MarkFlagsMutuallyExclusive("overdue", "available")
	topLevel.AddCommand(cmd)
}

// listInspect lists the live tasks of src, or its archived ones
func listInspect(ctx context.Context, src store.Source, archived bool) ([]task.Task, error) {
	if !archived {
		tasks, err := src.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		return tasks, nil
	}
	lister, ok := src.(archivedLister)
	if !ok {
		return nil, errors.New("inspect: --archived needs a database source")
	}
	tasks, err := lister.ListArchived(ctx)
	if err != nil {
		return nil, fmt.Errorf("list archived tasks: %w", err)
	}
	return tasks, nil
}

// filterDue keeps the tasks matching f; tasks without a due date are never overdue
func filterDue(tasks []task.Task, f dueFilter, now time.Time) []task.Task {
	if f == dueAll {
		return tasks
	}
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Overdue(now) == (f == dueOverdue) {
			out = append(out, t)
		}
	}
	return out
}

// writeInspect prints one row per task with its mapped body options
// The stack order is kept, so the last row is the first task added
func writeInspect(w io.Writer, tasks []task.Task, width, height float64, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "no tasks")
		return
	}

	bold := color.New(color.Bold).SprintFunc()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 32
	tbl.AddRow(bold("ID"), bold("Title"), bold("Type"), bold("Importance"), bold("Shape"),
		bold("Size"), bold("Density"), bold("Bounce"), bold("Opacity"), bold("Color"))

	for _, t := range tasks {
		o := visual.MapTask(t, width, height, now)
		id := "-"
		if t.ID != nil {
			id = strconv.FormatInt(*t.ID, 10)
		}
		title := t.Title
		if title == "" {
			title = "(untitled)"
		}
		tbl.AddRow(id, title, t.EffectiveType(), importance(t.EffectiveImportance()), o.Shape,
			fmt.Sprintf("%.1f", o.Size),
			fmt.Sprintf("%.2f", o.Density),
			fmt.Sprintf("%.2f", o.Restitution),
			fmt.Sprintf("%.2f", o.Style.Opacity),
			o.Style.Fill.Hex())
	}
	fmt.Fprintln(w, tbl)
}

func importance(i task.Importance) string {
	switch i {
	case task.ImportanceHigh:
		return color.New(color.FgRed, color.Bold).Sprint(i)
	case task.ImportanceMedium:
		return color.New(color.FgYellow).Sprint(i)
	}
	return color.New(color.FgGreen).Sprint(i)
}
