package store

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/taskfall/task"
)

// yamlTask is one entry of a task file
type yamlTask struct {
	ID         *int64 `yaml:"id,omitempty"`
	Title      string `yaml:"title"`
	Duration   *int   `yaml:"duration,omitempty"`
	Type       string `yaml:"type,omitempty"`
	Importance string `yaml:"importance,omitempty"`
	DueDate    string `yaml:"due_date,omitempty"`
	CreatedAt  string `yaml:"created_at,omitempty"`
}

// yamlFile is either a bare list or a document with a tasks key
type yamlFile struct {
	Tasks []yamlTask `yaml:"tasks"`
}

// YAMLFile is a read-only task source backed by a YAML file
type YAMLFile struct {
	path string
}

// NewYAMLFile creates a source reading path on every List
func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

// Path returns the file path
func (y *YAMLFile) Path() string { return y.path }

// List reads and parses the file; unparseable timestamps become absent
func (y *YAMLFile) List(ctx context.Context) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(y.path)
	if err != nil {
		return nil, fmt.Errorf("read tasks %s: %w", y.path, err)
	}
	entries, err := decodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse tasks %s: %w", y.path, err)
	}

	tasks := make([]task.Task, 0, len(entries))
	for _, e := range entries {
		t := task.Task{
			ID:         e.ID,
			Title:      e.Title,
			Duration:   e.Duration,
			Type:       task.ParseType(e.Type),
			Importance: task.ParseImportance(e.Importance),
		}
		if e.DueDate != "" {
			t.DueDate = task.ParseTimestampPtr(e.DueDate)
		}
		if e.CreatedAt != "" {
			t.CreatedAt = task.ParseTimestampPtr(e.CreatedAt)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func decodeYAML(data []byte) ([]yamlTask, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var list []yamlTask
		if err := node.Content[0].Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var doc yamlFile
	if err := node.Content[0].Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// WriteYAML writes tasks to path in the format List reads
func WriteYAML(path string, tasks []task.Task) error {
	doc := yamlFile{Tasks: make([]yamlTask, 0, len(tasks))}
	for _, t := range tasks {
		e := yamlTask{
			ID:         t.ID,
			Title:      t.Title,
			Duration:   t.Duration,
			Type:       string(t.Type),
			Importance: string(t.Importance),
		}
		if t.DueDate != nil {
			e.DueDate = t.DueDate.Format(timestampLayout)
		}
		if t.CreatedAt != nil {
			e.CreatedAt = t.CreatedAt.Format(timestampLayout)
		}
		doc.Tasks = append(doc.Tasks, e)
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write tasks %s: %w", path, err)
	}
	return nil
}
