package file

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"personality-quiz/internal/domain"
)

//go:embed builtin/*
var builtinFS embed.FS

// extensions are tried in this order for every name.
var extensions = []string{".json", ".yaml", ".yml"}

// Loader reads quiz documents named <name>.json, <name>.yaml or
// <name>.yml from a file system.
type Loader struct {
	fsys fs.FS
}

func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// NewDirLoader serves documents from a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir))
}

// Builtin serves the quizzes compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	return NewLoader(sub)
}

func (l *Loader) LoadQuiz(_ context.Context, name string) (domain.QuizDefinition, error) {
	if !domain.ValidIdentifier(name) {
		return domain.QuizDefinition{}, fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	for _, ext := range extensions {
		data, err := fs.ReadFile(l.fsys, name+ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return domain.QuizDefinition{}, fmt.Errorf("read %s: %w", name+ext, err)
		}
		format, _ := domain.FormatFromExt(ext)
		return domain.ParseDefinition(data, format)
	}
	return domain.QuizDefinition{}, domain.ErrQuizNotFound
}

// List returns the names of all documents, sorted.
func (l *Loader) List() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if _, ok := domain.FormatFromExt(ext); !ok {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if _, dup := seen[name]; dup || !domain.ValidIdentifier(name) {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
