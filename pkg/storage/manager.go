package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// exportExtensions are the file types the manager tracks in its directory
var exportExtensions = map[string]bool{".csv": true, ".xlsx": true}

// Manager writes export files into one output directory
type Manager struct {
	outputDir string
	existing  map[string]bool
	mu        sync.RWMutex
}

// NewManager creates a new storage manager
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manager := &Manager{
		outputDir: outputDir,
		existing:  make(map[string]bool),
	}

	if err := manager.scanExistingFiles(); err != nil {
		return nil, fmt.Errorf("failed to scan existing files: %w", err)
	}

	return manager, nil
}

// scanExistingFiles records export files already in the output directory
func (m *Manager) scanExistingFiles() error {
	entries, err := os.ReadDir(m.outputDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && exportExtensions[filepath.Ext(entry.Name())] {
			m.existing[entry.Name()] = true
		}
	}

	return nil
}

// Exists reports whether an export named name is already in the directory
func (m *Manager) Exists(name string) bool {
	m.mu.RLock()
	known := m.existing[name]
	m.mu.RUnlock()
	if known {
		return true
	}

	if _, err := os.Stat(m.Path(name)); err == nil {
		m.mu.Lock()
		m.existing[name] = true
		m.mu.Unlock()
		return true
	}

	return false
}

// Save writes the file name through write and returns its path.
// Readers never see a partial file: the data goes to a temporary file
// that is renamed into place once write succeeds.
func (m *Manager) Save(name string, write func(w io.Writer) error) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	filename := m.Path(name)
	tempFile := filename + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}

	err = write(out)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.mu.Lock()
	m.existing[name] = true
	m.mu.Unlock()

	return filename, nil
}

// Path returns the full path for name inside the output directory
func (m *Manager) Path(name string) string {
	return filepath.Join(m.outputDir, name)
}

