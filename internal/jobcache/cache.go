package jobcache

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/umutgultepe/recruiting-analyst/internal/greenhouse"
	"github.com/umutgultepe/recruiting-analyst/internal/pipeline"
)

// Manager is the on-disk job cache: load-on-start, explicit-refresh-to-mutate.
// A refresh must complete before any of the jobs' applications are hydrated.
type Manager struct {
	path   string
	logger *zap.Logger
	byID   map[string]*pipeline.Job
	order  []*pipeline.Job
}

// New creates a Manager backed by the given cache file, loading it when it
// already exists.
func New(path string, logger *zap.Logger) (*Manager, error) {
	m := &Manager{
		path:   path,
		logger: logger,
		byID:   make(map[string]*pipeline.Job),
	}

	if _, err := os.Stat(path); err == nil {
		if err := m.load(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// GetByID returns the cached job with the given id, or nil.
func (m *Manager) GetByID(id string) *pipeline.Job {
	return m.byID[id]
}

// All returns the cached jobs in file order.
func (m *Manager) All() []*pipeline.Job {
	return m.order
}

func (m *Manager) Len() int {
	return len(m.order)
}

// Refresh fetches open jobs for each relevant department, fills their stage
// templates, saves everything to the cache file and rebuilds the id index.
func (m *Manager) Refresh(client *greenhouse.Client, departments []string) error {
	var all []*pipeline.Job

	for _, department := range departments {
		jobs, err := client.GetJobs(department, false)
		if err != nil {
			return fmt.Errorf("refreshing department %q: %w", department, err)
		}

		for _, job := range jobs {
			if err := client.FillStages(job); err != nil {
				return err
			}
			all = append(all, job)
		}
	}

	if err := m.save(all); err != nil {
		return err
	}

	m.order = all
	m.byID = make(map[string]*pipeline.Job, len(all))
	for _, job := range all {
		m.byID[job.ID] = job
	}

	m.logger.Info("cache refreshed",
		zap.Int("jobs", len(all)),
		zap.String("path", m.path),
	)

	return nil
}

func (m *Manager) save(jobs []*pipeline.Job) error {
	cached := make([]cachedJob, 0, len(jobs))
	for _, job := range jobs {
		cached = append(cached, toCached(job))
	}

	data, err := yaml.Marshal(cached)
	if err != nil {
		return fmt.Errorf("serializing job cache: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("writing job cache: %w", err)
	}

	return nil
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("reading job cache: %w", err)
	}

	var cached []cachedJob
	if err := yaml.Unmarshal(data, &cached); err != nil {
		return fmt.Errorf("parsing job cache %s: %w", m.path, err)
	}

	if len(cached) == 0 {
		m.logger.Warn("no jobs found in cache file", zap.String("path", m.path))
		return nil
	}

	// Individually malformed entries are skipped with a warning: one stale
	// record must not take the whole cache down.
	for i := range cached {
		job, err := fromCached(&cached[i])
		if err != nil {
			m.logger.Warn("could not load cached job",
				zap.String("job_id", cached[i].ID),
				zap.Error(err),
			)
			continue
		}
		m.byID[job.ID] = job
		m.order = append(m.order, job)
	}

	m.logger.Debug("loaded jobs from cache",
		zap.Int("jobs", len(m.order)),
		zap.String("path", m.path),
	)

	return nil
}

// Cache file shapes. Stage and interview ids are serialized on purpose:
// hydration correlates scheduled-interview and scorecard records by id, so a
// reloaded job must reproduce them exactly.

type cachedUser struct {
	ID        string `yaml:"id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
}

type cachedIDName struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type cachedInterview struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Schedulable bool   `yaml:"schedulable"`
}

type cachedStage struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Interviews []cachedInterview `yaml:"interviews"`
}

type cachedJob struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Location       cachedIDName   `yaml:"location"`
	CreatedAt      string         `yaml:"created_at"`
	OpenedAt       *string        `yaml:"opened_at"`
	HiringManagers []cachedUser   `yaml:"hiring_managers"`
	Recruiters     []cachedUser   `yaml:"recruiters"`
	Coordinators   []cachedUser   `yaml:"coordinators"`
	Sourcers       []cachedUser   `yaml:"sourcers"`
	Departments    []cachedIDName `yaml:"departments"`
	Role           struct {
		Function  string `yaml:"function"`
		Seniority string `yaml:"seniority"`
	} `yaml:"role"`
	Stages []cachedStage `yaml:"stages"`
}

func toCached(job *pipeline.Job) cachedJob {
	cached := cachedJob{
		ID:             job.ID,
		Name:           job.Name,
		Location:       cachedIDName{ID: job.Location.ID, Name: job.Location.Name},
		CreatedAt:      job.CreatedAt.Format(time.RFC3339),
		HiringManagers: toCachedUsers(job.HiringManagers),
		Recruiters:     toCachedUsers(job.Recruiters),
		Coordinators:   toCachedUsers(job.Coordinators),
		Sourcers:       toCachedUsers(job.Sourcers),
	}

	if job.OpenedAt != nil {
		opened := job.OpenedAt.Format(time.RFC3339)
		cached.OpenedAt = &opened
	}

	for _, dept := range job.Departments {
		cached.Departments = append(cached.Departments, cachedIDName{ID: dept.ID, Name: dept.Name})
	}

	cached.Role.Function = string(job.Role.Function)
	cached.Role.Seniority = string(job.Role.Seniority)

	for _, stage := range job.Stages {
		cachedSt := cachedStage{ID: stage.ID, Name: stage.Name}
		for _, interview := range stage.Interviews {
			cachedSt.Interviews = append(cachedSt.Interviews, cachedInterview{
				ID:          interview.ID,
				Name:        interview.Name,
				Schedulable: interview.Schedulable,
			})
		}
		cached.Stages = append(cached.Stages, cachedSt)
	}

	return cached
}

func fromCached(cached *cachedJob) (*pipeline.Job, error) {
	createdAt, err := time.Parse(time.RFC3339, cached.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	job := &pipeline.Job{
		ID:             cached.ID,
		Name:           cached.Name,
		Location:       pipeline.Location{ID: cached.Location.ID, Name: cached.Location.Name},
		CreatedAt:      createdAt.UTC(),
		HiringManagers: fromCachedUsers(cached.HiringManagers),
		Recruiters:     fromCachedUsers(cached.Recruiters),
		Coordinators:   fromCachedUsers(cached.Coordinators),
		Sourcers:       fromCachedUsers(cached.Sourcers),
		Role: pipeline.Role{
			Function:  pipeline.RoleFunction(cached.Role.Function),
			Seniority: pipeline.Seniority(cached.Role.Seniority),
		},
	}

	if cached.OpenedAt != nil {
		opened, err := time.Parse(time.RFC3339, *cached.OpenedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing opened_at: %w", err)
		}
		openedUTC := opened.UTC()
		job.OpenedAt = &openedUTC
	}

	for _, dept := range cached.Departments {
		job.Departments = append(job.Departments, pipeline.Department{ID: dept.ID, Name: dept.Name})
	}

	for _, cachedSt := range cached.Stages {
		stage := pipeline.JobStage{ID: cachedSt.ID, Name: cachedSt.Name}
		for _, interview := range cachedSt.Interviews {
			stage.Interviews = append(stage.Interviews, pipeline.Interview{
				ID:          interview.ID,
				Name:        interview.Name,
				Schedulable: interview.Schedulable,
			})
		}
		job.Stages = append(job.Stages, stage)
	}

	return job, nil
}

func toCachedUsers(users []pipeline.User) []cachedUser {
	cached := make([]cachedUser, 0, len(users))
	for _, user := range users {
		cached = append(cached, cachedUser{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName})
	}
	return cached
}

func fromCachedUsers(cached []cachedUser) []pipeline.User {
	users := make([]pipeline.User, 0, len(cached))
	for _, user := range cached {
		users = append(users, pipeline.User{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName})
	}
	return users
}
