// Package highscore keeps the flat-text top-10 table shown in the menu.
//
// File format, one entry per line:
//
//	<score> <YYYY-MM-DD> <name>
//
// Entries are kept sorted by score, highest first. Lines that do not parse
// are skipped on load and dropped on the next save.
package highscore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
)

// MaxEntries is the size of the table.
const MaxEntries = 10

// MaxNameLen is the longest name SanitizeName keeps.
const MaxNameLen = 10

const dateLayout = "2006-01-02"

// Entry is one row of the table.
type Entry struct {
	Score int
	Date  string
	Name  string
}

// Defaults seed a missing file.
var Defaults = []Entry{
	{5000, "2025-01-01", "CLAUDIA"},
	{4500, "2025-01-01", "ANTONIO"},
	{4000, "2025-01-01", "SOFIA"},
	{3500, "2025-01-01", "CARLOS"},
	{3000, "2025-01-01", "MARIA"},
}

// Manager owns one highscore file.
type Manager struct {
	mu      sync.Mutex
	path    string
	entries []Entry
	now     func() time.Time
}

// Open loads the table at path, seeding it with Defaults when the file
// does not exist yet.
func Open(path string) (*Manager, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("highscore: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	m := &Manager{path: path, now: time.Now}
	if err := m.Load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Path returns the backing file path.
func (m *Manager) Path() string {
	return m.path
}

// Load rereads the file.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, err := os.Open(m.path)
	if os.IsNotExist(err) {
		m.entries = append([]Entry(nil), Defaults...)
		return m.save()
	}
	if err != nil {
		return fmt.Errorf("highscore: cannot open %s: %w", m.path, err)
	}
	defer f.Close()

	entries, err := parse(f)
	if err != nil {
		return fmt.Errorf("highscore: cannot read %s: %w", m.path, err)
	}
	m.entries = entries
	m.rank()
	return nil
}

func parse(f *os.File) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if e, ok := parseLine(sc.Text()); ok {
			entries = append(entries, e)
		}
	}
	return entries, sc.Err()
}

// parseLine reads "<score> <date> <name>". Extra fields are ignored.
func parseLine(line string) (Entry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Entry{}, false
	}
	score, err := strconv.Atoi(fields[0])
	if err != nil {
		return Entry{}, false
	}
	return Entry{Score: score, Date: fields[1], Name: fields[2]}, true
}

// Save writes the table back to disk.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save()
}

func (m *Manager) save() error {
	if dir := filepath.Dir(m.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
		}
	}

	var sb strings.Builder
	for _, e := range m.entries {
		fmt.Fprintf(&sb, "%d %s %s\n", e.Score, e.Date, e.Name)
	}
	if err := os.WriteFile(m.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("highscore: cannot write %s: %w", m.path, err)
	}
	return nil
}

// rank orders the table highest first and drops everything past MaxEntries.
func (m *Manager) rank() {
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.entries[i].Score > m.entries[j].Score
	})
	if len(m.entries) > MaxEntries {
		m.entries = m.entries[:MaxEntries]
	}
}

// Entries returns a copy of the table, highest score first.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}

// IsHighscore reports whether score would enter the table.
func (m *Manager) IsHighscore(score int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isHighscore(score)
}

func (m *Manager) isHighscore(score int) bool {
	if len(m.entries) < MaxEntries {
		return true
	}
	return score > m.entries[len(m.entries)-1].Score
}

// Add inserts score under name, dated today, and saves the file.
// Returns false without touching the file when the score does not qualify.
func (m *Manager) Add(score int, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isHighscore(score) {
		return false, nil
	}

	name = SanitizeName(name)
	if name == "" {
		name = "PLAYER"
	}

	m.entries = append(m.entries, Entry{
		Score: score,
		Date:  m.now().Format(dateLayout),
		Name:  name,
	})
	m.rank()
	return true, m.save()
}

// Clear empties the table and saves it.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return m.save()
}

// SanitizeName keeps letters only, upper-cased, at most MaxNameLen of them.
// The result never contains whitespace, so it survives the line format.
func SanitizeName(name string) string {
	var sb strings.Builder
	n := 0
	for _, r := range name {
		if n == MaxNameLen {
			break
		}
		if unicode.IsLetter(r) {
			sb.WriteRune(unicode.ToUpper(r))
			n++
		}
	}
	return sb.String()
}
