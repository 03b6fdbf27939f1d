package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ProgressManagerImpl renders one progress bar per named task (cloneradar
// currently only runs one, "extract", but the map-of-tasks shape costs
// nothing idle and matches how a future multi-phase run — e.g. a separate
// LSH-prefilter pass — would report progress without a rewrite).
type ProgressManagerImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	tasks       map[string]*TaskProgress
	totalFiles  int
	interactive bool
	initialized bool
}

// TaskProgress tracks the progress of a single task.
type TaskProgress struct {
	Name        string
	ProgressBar *progressbar.ProgressBar
	Started     bool
	Completed   bool
	Success     bool
	Processed   int
	Total       int
}

// NewProgressManager creates a new progress manager, defaulting to stderr
// and auto-detecting whether stderr is an interactive terminal.
func NewProgressManager() *ProgressManagerImpl {
	return &ProgressManagerImpl{
		tasks:       make(map[string]*TaskProgress),
		writer:      os.Stderr,
		interactive: IsInteractiveEnvironment(),
	}
}

// Initialize sets up progress tracking for the given number of files.
func (pm *ProgressManagerImpl) Initialize(totalFiles int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.totalFiles = totalFiles
	pm.initialized = true
	pm.tasks = make(map[string]*TaskProgress)
}

// StartTask marks a task as started and creates its progress bar if running
// interactively.
func (pm *ProgressManagerImpl) StartTask(taskName string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if !pm.initialized {
		return
	}

	task, exists := pm.tasks[taskName]
	if !exists {
		task = &TaskProgress{Name: taskName, Total: pm.totalFiles}
		pm.tasks[taskName] = task
	}
	task.Started = true

	if pm.interactive && task.ProgressBar == nil {
		task.ProgressBar = pm.createProgressBar(taskName, pm.totalFiles)
	}
}

// CompleteTask marks a task as completed.
func (pm *ProgressManagerImpl) CompleteTask(taskName string, success bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	task, exists := pm.tasks[taskName]
	if !exists {
		return
	}
	task.Completed = true
	task.Success = success
	if task.ProgressBar != nil {
		_ = task.ProgressBar.Finish()
	}
}

// UpdateProgress updates the progress for a specific task.
func (pm *ProgressManagerImpl) UpdateProgress(taskName string, processed, total int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	task, exists := pm.tasks[taskName]
	if !exists {
		task = &TaskProgress{Name: taskName, Total: total}
		pm.tasks[taskName] = task
	}
	task.Processed = processed
	task.Total = total
	if task.ProgressBar != nil {
		_ = task.ProgressBar.Set(processed)
	}
}

// SetWriter sets the output writer for progress bars and re-derives
// interactivity from it.
func (pm *ProgressManagerImpl) SetWriter(writer io.Writer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.writer = writer
	if file, ok := writer.(*os.File); ok {
		pm.interactive = term.IsTerminal(int(file.Fd()))
	} else {
		pm.interactive = false
	}
}

// IsInteractive returns true if progress bars should be shown.
func (pm *ProgressManagerImpl) IsInteractive() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.interactive
}

// Close finishes any progress bars still running.
func (pm *ProgressManagerImpl) Close() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	for _, task := range pm.tasks {
		if task.ProgressBar != nil && !task.Completed {
			_ = task.ProgressBar.Finish()
		}
	}
}

func (pm *ProgressManagerImpl) createProgressBar(description string, max int) *progressbar.ProgressBar {
	writer := pm.writer
	if writer == nil {
		writer = io.Discard
	}

	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(writer)
		}),
	)
}

// GetTaskStatus returns a snapshot of all tasks' status for reporting.
func (pm *ProgressManagerImpl) GetTaskStatus() map[string]*TaskProgress {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	status := make(map[string]*TaskProgress)
	for name, task := range pm.tasks {
		taskCopy := *task
		status[name] = &taskCopy
	}
	return status
}
