package store

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/diegok/pixcatch/internal/record"
)

// File persists the high score to disk. Reads come from memory; writes are
// handed to a background goroutine so callers never wait on the disk.
type File struct {
	path   string
	logger *log.Logger

	mu     sync.Mutex
	value  int
	closed bool

	pending chan int // Latest value waiting to be written
	done    chan struct{}
	wg      sync.WaitGroup
}

// Open loads the high score at path and starts the writer. A missing or
// unreadable file counts as no high score yet.
func Open(path string, logger *log.Logger) *File {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	f := &File{
		path:    path,
		logger:  logger,
		pending: make(chan int, 1),
		done:    make(chan struct{}),
	}

	hs, err := load(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Printf("store: no high score at %s yet", path)
	case err != nil:
		logger.Printf("store: ignoring %s: %v", path, err)
	default:
		f.value = hs.Value
		logger.Printf("store: loaded high score %d set %s", hs.Value, hs.SetAt.Format(time.RFC3339))
	}

	f.wg.Add(1)
	go f.writer()

	return f
}

// Read returns the best known score
func (f *File) Read() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Write queues v for saving if it beats the current value. Only the most
// recent pending value is kept.
func (f *File) Write(v int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || v <= f.value {
		return
	}
	f.value = v

	select {
	case <-f.pending:
	default:
	}
	f.pending <- v
}

// Close flushes any pending write and stops the writer
func (f *File) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	close(f.done)
	f.mu.Unlock()

	f.wg.Wait()
}

func (f *File) writer() {
	defer f.wg.Done()

	for {
		select {
		case v := <-f.pending:
			f.persist(v)
		case <-f.done:
			select {
			case v := <-f.pending:
				f.persist(v)
			default:
			}
			return
		}
	}
}

func (f *File) persist(v int) {
	hs := record.HighScore{Value: v, SetAt: time.Now()}
	if err := save(f.path, hs); err != nil {
		f.logger.Printf("store: saving high score: %v", err)
		return
	}
	f.logger.Printf("store: saved high score %d", v)
}

func load(path string) (record.HighScore, error) {
	file, err := os.Open(path)
	if err != nil {
		return record.HighScore{}, err
	}
	defer file.Close()

	hs, err := record.NewDecoder(file).DecodeHighScore()
	if err != nil {
		return record.HighScore{}, fmt.Errorf("decode high score: %w", err)
	}
	if hs.Value < 0 {
		return record.HighScore{}, fmt.Errorf("negative high score %d", hs.Value)
	}
	return hs, nil
}

// save writes to a temp file and renames it over path so a crash never
// leaves a half-written score behind
func save(path string, hs record.HighScore) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := record.NewEncoder(tmp).EncodeHighScore(hs); err != nil {
		tmp.Close()
		return fmt.Errorf("encode high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
