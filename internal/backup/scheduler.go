package backup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/readvoyage/internal/entities"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Snapshotter is satisfied by library.Repository.
type Snapshotter interface {
	GetSettings(ctx context.Context) (entities.Settings, error)
	ExportSnapshot(ctx context.Context) ([]byte, error)
}

// Scheduler runs RunOnce on a cron schedule.
type Scheduler struct {
	source   Snapshotter
	sinks    []Sink
	schedule string
	now      func() time.Time

	cron    *cron.Cron
	entryID cron.EntryID
	mu      sync.RWMutex
	running bool
}

func NewScheduler(source Snapshotter, schedule string, sinks ...Sink) *Scheduler {
	return &Scheduler{
		source:   source,
		sinks:    sinks,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// ValidateSchedule validates a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if len(s.sinks) == 0 {
		log.Printf("[BACKUP] no sinks configured, scheduler not started")
		return nil
	}
	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			log.Printf("[BACKUP] run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.running = true
	log.Printf("[BACKUP] scheduler started with schedule '%s' to %v", s.schedule, s.sinks)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop waits for a running backup to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.running = false
	log.Printf("[BACKUP] scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// NextRun returns when the next backup will occur, or nil when stopped.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunOnce writes one snapshot to every sink and returns its name. It returns
// an empty name without writing anything while autoSave is off.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	settings, err := s.source.GetSettings(ctx)
	if err != nil {
		return "", fmt.Errorf("read settings: %w", err)
	}
	if !settings.AutoSave {
		log.Printf("[BACKUP] skipped (autoSave is off)")
		return "", nil
	}

	data, err := s.source.ExportSnapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("export snapshot: %w", err)
	}

	name := SnapshotName(s.now())
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Put(ctx, name, data); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink, err))
			continue
		}
		log.Printf("[BACKUP] wrote %s to %s (%d bytes)", name, sink, len(data))
	}
	if err := errors.Join(errs...); err != nil {
		return "", err
	}
	return name, nil
}

// SnapshotName is the file or object name for a snapshot taken at t.
func SnapshotName(t time.Time) string {
	return snapshotPrefix + t.UTC().Format("20060102T150405Z") + ".json"
}
