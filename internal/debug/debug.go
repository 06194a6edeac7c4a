package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar names the variable holding the log file path.
const EnvVar = "MFT_DEBUG"

var (
	logFile *os.File
	mu      sync.Mutex
	once    sync.Once
)

// open creates the log file named by EnvVar. Failures leave logging off.
func open() {
	path := os.Getenv(EnvVar)
	if path == "" {
		return
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}
	logFile = f
}

// Enabled reports whether messages are being written.
func Enabled() bool {
	once.Do(open)
	return logFile != nil
}

// Log writes a message to the debug log with a timestamp.
func Log(format string, args ...any) {
	if !Enabled() {
		return
	}
	mu.Lock()
	defer mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(logFile, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// Close closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
