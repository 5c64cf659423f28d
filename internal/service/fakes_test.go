package service

import (
	"context"

	"tasklog/internal/models"
	"tasklog/internal/repository"
)

type fakeUserStore struct {
	byUsername map[string]models.User
	taskCounts map[string]int
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	f := &fakeUserStore{
		byUsername: make(map[string]models.User),
		taskCounts: make(map[string]int),
	}
	for _, user := range users {
		f.byUsername[user.Username] = user
	}
	return f
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) error {
	if _, ok := f.byUsername[user.Username]; ok {
		return repository.ErrUsernameTaken
	}
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	for _, user := range f.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) ListSummaries(_ context.Context) ([]models.UserSummary, error) {
	summaries := make([]models.UserSummary, 0, len(f.byUsername))
	for _, user := range f.byUsername {
		summaries = append(summaries, models.UserSummary{
			ID:        user.ID,
			Username:  user.Username,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
			TaskCount: f.taskCounts[user.ID],
		})
	}
	return summaries, nil
}

type fakeTaskStore struct {
	tasks   map[string]models.Task
	entries []models.AuditEntry
}

func newFakeTaskStore(tasks ...models.Task) *fakeTaskStore {
	f := &fakeTaskStore{tasks: make(map[string]models.Task)}
	for _, task := range tasks {
		f.tasks[task.ID] = task
	}
	return f
}

func (f *fakeTaskStore) CreateWithAudit(_ context.Context, task models.Task, entry *models.AuditEntry) error {
	f.tasks[task.ID] = task
	if entry != nil {
		f.entries = append(f.entries, *entry)
	}
	return nil
}

func (f *fakeTaskStore) UpdateWithAudit(_ context.Context, task models.Task, entry *models.AuditEntry) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return repository.ErrTaskNotFound
	}
	f.tasks[task.ID] = task
	if entry != nil {
		f.entries = append(f.entries, *entry)
	}
	return nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id string) (models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return models.Task{}, repository.ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) ListAll(_ context.Context) ([]models.Task, error) {
	tasks := make([]models.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (f *fakeTaskStore) ListByOwner(_ context.Context, ownerID string) ([]models.Task, error) {
	var tasks []models.Task
	for _, task := range f.tasks {
		if task.OwnerID == ownerID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// ListByTask returns entries newest-first, mirroring the repository order.
func (f *fakeTaskStore) ListByTask(_ context.Context, taskID string) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].TaskID == taskID {
			entries = append(entries, f.entries[i])
		}
	}
	return entries, nil
}

func (f *fakeTaskStore) entriesFor(taskID string) []models.AuditEntry {
	var entries []models.AuditEntry
	for _, entry := range f.entries {
		if entry.TaskID == taskID {
			entries = append(entries, entry)
		}
	}
	return entries
}
