package pretty_log

import (
	"fmt"
	"github.com/google/uuid"
	"strings"
	"sync"
	"time"
)

const (
	bold       = "\033[1m"
	brightBlue = "\033[94m"
	orange     = "\033[38;5;208m"
	green      = "\033[32m"
	red        = "\033[31m"
	cyan       = "\033[36m"
	grey       = "\033[90m"
	reset      = "\033[0m"
)

var (
	mut     sync.Mutex
	tasks   = make(map[string]string)
	verbose bool
)

func timestamp() string {
	return time.Now().Format("2006/01/02 15:04:05")
}

// SetVerbose enables Debug output. Benchmark tools are chatty, so per-line
// diagnostics are off by default.
func SetVerbose(v bool) {
	mut.Lock()
	verbose = v
	mut.Unlock()
}

// TaskGroup prints the title of a group of tasks in bright blue color.
func TaskGroup(format string, a ...interface{}) {
	title := fmt.Sprintf(format, a...)
	fmt.Printf("[%s] %s%s%s%s\n", timestamp(), brightBlue, bold, title, reset)
}

// BeginTask prints the beginning of a task with its name in orange, without marking it done.
func BeginTask(format string, a ...interface{}) string {
	taskName := fmt.Sprintf(format, a...)

	mut.Lock()
	id := uuid.NewString()
	tasks[id] = taskName
	mut.Unlock()

	fmt.Printf("[%s] %s%s%s %s%s\n", timestamp(), orange, taskName, reset, grey, reset)

	return id
}

// CompleteTask prints the task again in green to mark it done.
func CompleteTask(id string) {
	mut.Lock()
	beginTask := tasks[id]
	delete(tasks, id)
	mut.Unlock()

	fmt.Printf("[%s] %s%s%s\n", timestamp(), green, beginTask, reset)
}

// FailTask prints the task again in red to mark it failed.
func FailTask(id string) {
	mut.Lock()
	beginTask := tasks[id]
	delete(tasks, id)
	mut.Unlock()

	fmt.Printf("[%s] %s%s%s\n", timestamp(), red, beginTask, reset)
}

// TaskResult prints the result of a task in cyan color.
func TaskResult(format string, a ...interface{}) {
	format = strings.TrimSuffix(format, "\n")
	result := fmt.Sprintf(format, a...)
	fmt.Printf("[%s] %s%s%s\n", timestamp(), cyan, result, reset)
}

// TaskResultBad prints the result of a task in red color.
func TaskResultBad(format string, a ...interface{}) {
	format = strings.TrimSuffix(format, "\n")
	result := fmt.Sprintf(format, a...)
	fmt.Printf("[%s] %s%s%s\n", timestamp(), red, result, reset)
}

// Debug prints a diagnostic line in grey. No-op unless SetVerbose(true) was called.
func Debug(format string, a ...interface{}) {
	mut.Lock()
	v := verbose
	mut.Unlock()
	if !v {
		return
	}

	format = strings.TrimSuffix(format, "\n")
	line := fmt.Sprintf(format, a...)
	fmt.Printf("[%s] %s%s%s\n", timestamp(), grey, line, reset)
}
