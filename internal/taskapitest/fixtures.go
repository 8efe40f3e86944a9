package taskapitest

import (
	"fmt"
	"os"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/radosmm6/task-app-rodion-samokhvalov-68614/domain"
)

type fixtureTask struct {
	ID          int64  `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Category    string `yaml:"category"`
	Priority    string `yaml:"priority"`
	DueDate     string `yaml:"due_date"`
}

type fixtureFile struct {
	Tasks []fixtureTask `yaml:"tasks"`
}

// LoadFixtures reads seed tasks from a YAML file. Empty optional fields are
// left nil.
func LoadFixtures(path string) ([]domain.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	tasks := make([]domain.Task, 0, len(f.Tasks))
	for _, ft := range f.Tasks {
		task := domain.Task{ID: ft.ID, Title: ft.Title, Status: domain.Status(ft.Status)}
		if ft.Description != "" {
			task.Description = domain.StringPtr(ft.Description)
		}
		if ft.Category != "" {
			task.Category = domain.CategoryPtr(domain.Category(ft.Category))
		}
		if ft.Priority != "" {
			task.Priority = domain.PriorityPtr(domain.Priority(ft.Priority))
		}
		if ft.DueDate != "" {
			task.DueDate = domain.StringPtr(ft.DueDate)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// MustLoadFixtures is LoadFixtures for tests.
func MustLoadFixtures(t testing.TB, path string) []domain.Task {
	t.Helper()
	tasks, err := LoadFixtures(path)
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	return tasks
}
