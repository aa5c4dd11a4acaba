package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/taskfall/store"
	"github.com/lixenwraith/taskfall/task"
)

func addSeed(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "seed [path]",
		Short: "Write sample tasks to a database or a .yaml file.",
		Example: `
taskfall seed
taskfall seed ~/tasks.yaml
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			setupLogging(cfg.Debug)

			path := cfg.SourceDB
			if len(args) == 1 {
				path = args[0]
			}
			n, err := seed(cmd.Context(), path, sampleTasks(time.Now()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tasks into %s\n", n, path)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

// seed appends tasks to a SQLite database, or replaces the contents of a .yaml file
func seed(ctx context.Context, path string, tasks []task.Task) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		for i := range tasks {
			tasks[i].ID = task.Int64Ptr(int64(i + 1))
		}
		if err := store.WriteYAML(path, tasks); err != nil {
			return 0, err
		}
		return len(tasks), nil
	}

	db, err := store.OpenSQLite(path)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	for i, t := range tasks {
		if _, err := db.Insert(ctx, t); err != nil {
			return i, err
		}
	}
	return len(tasks), nil
}

// sampleTasks spans the task types and importances with due dates around now
func sampleTasks(now time.Time) []task.Task {
	at := func(d time.Duration) *time.Time { return task.TimePtr(now.Add(d)) }
	day := 24 * time.Hour
	return []task.Task{
		{Title: "Team standup", Duration: task.IntPtr(15), Type: task.TypeMeeting, Importance: task.ImportanceMedium, DueDate: at(2 * time.Hour), CreatedAt: at(-day)},
		{Title: "Write design review", Duration: task.IntPtr(180), Type: task.TypeWork, Importance: task.ImportanceHigh, DueDate: at(6 * time.Hour), CreatedAt: at(-8 * day)},
		{Title: "Fix flaky build", Duration: task.IntPtr(90), Type: task.TypeWork, Importance: task.ImportanceHigh, DueDate: at(day), CreatedAt: at(-3 * day)},
		{Title: "Call the bank", Duration: task.IntPtr(20), Type: task.TypePersonal, Importance: task.ImportanceLow, DueDate: at(3 * day), CreatedAt: at(-2 * day)},
		{Title: "Read chapter 4", Duration: task.IntPtr(60), Type: task.TypeLearning, Importance: task.ImportanceMedium, CreatedAt: at(-5 * day)},
		{Title: "Untyped errand", Duration: task.IntPtr(30), CreatedAt: at(-12 * time.Hour)},
		{Title: "Run", Duration: task.IntPtr(45), Type: task.TypeHealth, Importance: task.ImportanceLow, DueDate: at(10 * time.Hour), CreatedAt: at(-time.Hour)},
	}
}
