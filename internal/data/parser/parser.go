// Package parser reads spool files of externally recorded timer events. Each
// line is one JSON object: {"user": "a@example.ch", "type": "start",
// "time": "2020-02-20T09:00:00Z", "notes": "..."}.
package parser

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/wbx/go-timer-workbench/internal/core/model"
	"github.com/wbx/go-timer-workbench/internal/util"
)

// spoolLine is the raw wire form of one event before validation.
type spoolLine struct {
	User  string `json:"user"`
	Type  string `json:"type"`
	Time  string `json:"time"`
	Notes string `json:"notes,omitempty"`
}

// SpoolEvent is a validated event ready for the store.
type SpoolEvent struct {
	User      string
	Kind      model.Kind
	CreatedAt time.Time
	Notes     string
}

// ParseResult represents the result of parsing a single file.
type ParseResult struct {
	File   string
	Events []SpoolEvent
	Error  error
}

// Parser parses spool files with bounded concurrency.
type Parser struct {
	concurrency int
	mu          sync.Mutex
	cache       map[string][]SpoolEvent
}

// NewParser creates a new Parser instance.
func NewParser(concurrency int) *Parser {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		cache:       make(map[string][]SpoolEvent),
	}
}

// ParseFile parses the spool file at the specified path. Lines that are not
// valid JSON, carry an unknown kind or an unparseable time are skipped with a
// debug log; external feeds are not trusted to be clean.
func (p *Parser) ParseFile(filepath string) ([]SpoolEvent, error) {
	p.mu.Lock()
	if cached, ok := p.cache[filepath]; ok {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	util.LogDebug(fmt.Sprintf("Start parsing spool file: %s", filepath))

	file, err := os.Open(filepath)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Failed to open file: %s - %v", filepath, err))
		return nil, err
	}
	defer file.Close()

	var events []SpoolEvent
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var line spoolLine
		if err := sonic.Unmarshal(scanner.Bytes(), &line); err != nil {
			util.LogDebug(fmt.Sprintf("Skip invalid JSON line %s:%d - %v", filepath, lineCount, err))
			continue
		}

		event, err := validate(line)
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip invalid event %s:%d - %v", filepath, lineCount, err))
			continue
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		util.LogDebug(fmt.Sprintf("Error scanning file: %s - %v", filepath, err))
		return nil, err
	}

	p.mu.Lock()
	p.cache[filepath] = events
	p.mu.Unlock()

	return events, nil
}

func validate(line spoolLine) (SpoolEvent, error) {
	if line.User == "" {
		return SpoolEvent{}, fmt.Errorf("missing user")
	}
	kind, err := model.ParseKind(line.Type)
	if err != nil {
		return SpoolEvent{}, err
	}
	at, err := time.Parse(time.RFC3339, line.Time)
	if err != nil {
		return SpoolEvent{}, fmt.Errorf("invalid time %q: %w", line.Time, err)
	}
	return SpoolEvent{
		User:      line.User,
		Kind:      kind,
		CreatedAt: at,
		Notes:     line.Notes,
	}, nil
}

// ParseFiles parses multiple files concurrently and returns a channel of
// ParseResult.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebug(fmt.Sprintf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency))

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			events, err := p.ParseFile(f)
			if err != nil {
				util.LogDebug(fmt.Sprintf("Spool file parsing failed: %s - %v", f, err))
			}

			results <- ParseResult{
				File:   f,
				Events: events,
				Error:  err,
			}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)

		util.LogDebug(fmt.Sprintf("Concurrent parsing finished, total duration: %v", time.Since(start)))
	}()

	return results
}
