package ipc

import (
	"os"
	"sync"
)

// StatusResponse is what an in-flight generation run reports about
// itself.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
	PID     int    `json:"pid"`
	Socket  string `json:"socket"`
	Stage   string `json:"stage"`
	Input   string `json:"input"`
}

// Tracker records how far a generation run has progressed. It is the
// single piece of state the status endpoint serves.
type Tracker struct {
	sync.Mutex
	stage string
	input string
}

func NewTracker(input string) *Tracker {
	return &Tracker{stage: "starting", input: input}
}

func (t *Tracker) SetStage(stage string) {
	t.Lock()
	defer t.Unlock()
	t.stage = stage
}

func (t *Tracker) Stage() string {
	t.Lock()
	defer t.Unlock()
	return t.stage
}

func (t *Tracker) Input() string {
	t.Lock()
	defer t.Unlock()
	return t.input
}

// SocketPath is where the status server listens while a generation run
// is active.
func SocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return dir + "/quotepaper.sock"
}
