package treehash

import (
	"bytes"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// memFS is an in-memory FileSystem with per-path error injection.
type memFS struct {
	nodes    map[string]*memNode
	children map[string][]string

	statErr    map[string]error
	readDirErr map[string]error
	openErr    map[string]error
	readErr    map[string]error
}

type memNode struct {
	name string
	data []byte
	mode fs.FileMode
}

func newMemFS() *memFS {
	return &memFS{
		nodes:      make(map[string]*memNode),
		children:   make(map[string][]string),
		statErr:    make(map[string]error),
		readDirErr: make(map[string]error),
		openErr:    make(map[string]error),
		readErr:    make(map[string]error),
	}
}

func (m *memFS) add(path string, node *memNode) {
	path = filepath.Clean(path)
	if _, ok := m.nodes[path]; ok {
		return
	}
	m.nodes[path] = node
	parent := filepath.Dir(path)
	if parent == path {
		return
	}
	m.addDir(parent)
	m.children[parent] = append(m.children[parent], filepath.Base(path))
}

func (m *memFS) addDir(path string) {
	m.add(path, &memNode{name: filepath.Base(path), mode: fs.ModeDir | 0o755})
}

func (m *memFS) addFile(path, content string) {
	m.add(path, &memNode{name: filepath.Base(path), data: []byte(content), mode: 0o644})
}

func (m *memFS) addSpecial(path string) {
	m.add(path, &memNode{name: filepath.Base(path), mode: fs.ModeNamedPipe | 0o644})
}

func (m *memFS) Stat(name string) (fs.FileInfo, error) {
	name = filepath.Clean(name)
	if err, ok := m.statErr[name]; ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	node, ok := m.nodes[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return memInfo{node}, nil
}

func (m *memFS) ReadDir(name string) ([]fs.DirEntry, error) {
	name = filepath.Clean(name)
	if err, ok := m.readDirErr[name]; ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	node, ok := m.nodes[name]
	if !ok || !node.mode.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	names := slices.Clone(m.children[name])
	slices.Sort(names)
	entries := make([]fs.DirEntry, 0, len(names))
	for _, child := range names {
		entries = append(entries, fs.FileInfoToDirEntry(memInfo{m.nodes[filepath.Join(name, child)]}))
	}
	return entries, nil
}

func (m *memFS) Open(name string) (io.ReadCloser, error) {
	name = filepath.Clean(name)
	if err, ok := m.openErr[name]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	node, ok := m.nodes[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	var r io.Reader = bytes.NewReader(node.data)
	if err, ok := m.readErr[name]; ok {
		r = io.MultiReader(r, failingReader{err})
	}
	return io.NopCloser(r), nil
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

type memInfo struct{ n *memNode }

func (i memInfo) Name() string       { return i.n.name }
func (i memInfo) Size() int64        { return int64(len(i.n.data)) }
func (i memInfo) Mode() fs.FileMode  { return i.n.mode }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.n.mode.IsDir() }
func (i memInfo) Sys() any           { return nil }

// drain collects everything a queue yields until it reports end of work.
func drain(q *Queue[string]) []string {
	var out []string
	for {
		item, ok := q.Get()
		if !ok {
			return out
		}
		out = append(out, item)
	}
}

// lineRecorder records every Write call it receives.
type lineRecorder struct {
	mu     sync.Mutex
	writes []string
}

func (l *lineRecorder) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writes = append(l.writes, string(p))
	return len(p), nil
}

func (l *lineRecorder) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.writes)
}
