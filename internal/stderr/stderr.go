//go:build !windows

// Package stderr captures output written directly to file descriptor 2
// while the picker owns the terminal. Stray lines from decoders or the
// runtime would otherwise corrupt the screen; they go to the log instead.
package stderr

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
)

// Start redirects fd 2 to a pipe and logs every non-empty line read from
// it at warn level. The program can continue without capture when it
// fails.
func Start(logger *slog.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead != nil {
		return nil
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		_ = unix.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	done = make(chan struct{})

	go drain(r, logger.With("component", "stderr"), done)
	return nil
}

func drain(r *os.File, logger *slog.Logger, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			logger.Warn("captured stderr", "line", line)
		}
	}
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Use it for fatal errors that must reach the user.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()
	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = unix.Write(fd, []byte(msg))
}

// Stop restores the original stderr and waits for captured lines to be
// logged.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead == nil {
		return
	}

	_ = unix.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(origStderr)
	origStderr = -1

	// Closing the write end lets the reader see EOF once fd 2 is restored.
	pipeWrite.Close()
	<-done
	pipeRead.Close()
	pipeRead, pipeWrite = nil, nil
}
