package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const maxBufferSize = 1000

type Level string

const (
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
	LevelFile  Level = "FILE_OPEN"
)

var (
	instance *Logger
	once     sync.Once
)

type LogEntry struct {
	Timestamp time.Time
	Level     Level
	Message   string
}

// Logger keeps the last maxBufferSize entries in memory for the logs view
// and mirrors them to a file when one was configured.
type Logger struct {
	file    *os.File
	logger  *log.Logger
	mu      sync.Mutex
	buffer  []LogEntry
	enabled bool
}

// Init attaches logPath to the logger, replacing any file attached
// earlier. Entries logged before Init stay in the buffer only. An empty
// path keeps the logger memory-only.
func Init(logPath string) error {
	EnsureInit()
	if logPath == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()
	if instance.file != nil {
		instance.file.Close()
	}
	instance.file = file
	instance.logger = log.New(file, "", log.LstdFlags)
	instance.enabled = true
	return nil
}

func EnsureInit() {
	once.Do(func() {
		instance = &Logger{
			buffer: make([]LogEntry, 0, maxBufferSize),
		}
	})
}

// Close detaches and closes the log file. The buffer is kept.
func Close() error {
	if instance == nil {
		return nil
	}
	instance.mu.Lock()
	defer instance.mu.Unlock()
	if instance.file == nil {
		return nil
	}
	err := instance.file.Close()
	instance.file = nil
	instance.logger = nil
	instance.enabled = false
	return err
}

func write(level Level, message string) {
	EnsureInit()
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if len(instance.buffer) >= maxBufferSize {
		instance.buffer = instance.buffer[1:]
	}
	instance.buffer = append(instance.buffer, LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	})

	if instance.enabled && instance.logger != nil {
		instance.logger.Printf("[%s] %s", level, message)
	}
}

func GetLogs() []LogEntry {
	EnsureInit()
	instance.mu.Lock()
	defer instance.mu.Unlock()

	logs := make([]LogEntry, len(instance.buffer))
	copy(logs, instance.buffer)
	return logs
}

func LogFileOpen(path string) {
	write(LevelFile, path)
}

func LogError(operation, target string, err error) {
	write(LevelError, fmt.Sprintf("%s: %s - %v", operation, target, err))
}

func Log(message string, args ...interface{}) {
	write(LevelInfo, fmt.Sprintf(message, args...))
}
