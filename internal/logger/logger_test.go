package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogAppendsToBuffer(t *testing.T) {
	Log("picked %s", "octocat/hello-world")

	logs := GetLogs()
	if len(logs) == 0 {
		t.Fatal("expected at least one log entry")
	}

	last := logs[len(logs)-1]
	if last.Level != LevelInfo {
		t.Errorf("expected level %s, got %s", LevelInfo, last.Level)
	}
	if last.Message != "picked octocat/hello-world" {
		t.Errorf("unexpected message %q", last.Message)
	}
}

func TestLogErrorFormatsOperationAndTarget(t *testing.T) {
	LogError("FETCH_REPOS", "octocat", errors.New("dial tcp: i/o timeout"))

	logs := GetLogs()
	last := logs[len(logs)-1]
	if last.Level != LevelError {
		t.Errorf("expected level %s, got %s", LevelError, last.Level)
	}
	if !strings.Contains(last.Message, "FETCH_REPOS: octocat - dial tcp: i/o timeout") {
		t.Errorf("unexpected message %q", last.Message)
	}
}

func TestBufferIsBounded(t *testing.T) {
	for i := 0; i < maxBufferSize+50; i++ {
		Log("entry %d", i)
	}

	logs := GetLogs()
	if len(logs) != maxBufferSize {
		t.Fatalf("expected %d entries, got %d", maxBufferSize, len(logs))
	}
	if logs[len(logs)-1].Message != "entry 1049" {
		t.Errorf("expected newest entry last, got %q", logs[len(logs)-1].Message)
	}
}

func TestGetLogsReturnsCopy(t *testing.T) {
	Log("original")

	logs := GetLogs()
	logs[len(logs)-1].Message = "mutated"

	fresh := GetLogs()
	if fresh[len(fresh)-1].Message != "original" {
		t.Error("GetLogs should return a copy of the buffer")
	}
}

func TestInitAttachesFileAfterEarlierLogging(t *testing.T) {
	Log("before file")

	path := filepath.Join(t.TempDir(), "logs", "session.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	LogError("FETCH_REPOS", "octocat", errors.New("unexpected payload"))
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(data), "[ERROR] FETCH_REPOS: octocat - unexpected payload") {
		t.Errorf("log file missing error entry: %q", data)
	}
	if strings.Contains(string(data), "before file") {
		t.Errorf("entries logged before Init should stay in memory, got %q", data)
	}

	Log("after close")
	data, _ = os.ReadFile(path)
	if strings.Contains(string(data), "after close") {
		t.Error("closed logger should not write to the file")
	}
}

func TestInitEmptyPathIsMemoryOnly(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	Log("memory only")

	logs := GetLogs()
	if logs[len(logs)-1].Message != "memory only" {
		t.Errorf("unexpected last entry %q", logs[len(logs)-1].Message)
	}
}
