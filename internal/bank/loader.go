package bank

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed data/*.json
var embedded embed.FS

// Embedded returns the banks compiled into the binary, rooted so that
// each file is named "<subject-id>.json".
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // static path
	}
	return sub
}

// Loader reads and parses question banks from a filesystem.
type Loader struct {
	fsys   fs.FS
	logger *zap.Logger
}

// NewLoader creates a Loader over fsys. A nil logger disables logging.
func NewLoader(fsys fs.FS, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fsys: fsys, logger: logger.Named("bank")}
}

// NewDefaultLoader reads from dataDir when set, otherwise from the
// embedded banks.
func NewDefaultLoader(dataDir string, logger *zap.Logger) *Loader {
	if dataDir != "" {
		return NewLoader(os.DirFS(dataDir), logger)
	}
	return NewLoader(Embedded(), logger)
}

// Load resolves subjectID to its full ordered question list. Unknown ids
// yield an error wrapping ErrSubjectNotFound. Every call decodes a fresh
// copy, so callers may modify the result freely.
func (l *Loader) Load(subjectID string) (*Bank, error) {
	name := subjectID + ".json"
	if subjectID == "" || strings.ContainsAny(subjectID, `/\`) || !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %q", ErrSubjectNotFound, subjectID)
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrSubjectNotFound, subjectID)
		}
		return nil, fmt.Errorf("read bank %s: %w", subjectID, err)
	}

	b, err := Parse(subjectID, data)
	if err != nil {
		return nil, err
	}

	issues := Validate(b)
	l.logger.Debug("loaded bank",
		zap.String("subject", subjectID),
		zap.Int("questions", b.Len()),
		zap.Int("issues", len(issues)),
	)
	for _, is := range issues {
		l.logger.Warn("bank issue",
			zap.String("subject", subjectID),
			zap.Int("position", is.Position),
			zap.String("kind", string(is.Kind)),
		)
	}
	return b, nil
}

// Subjects lists the subject ids with a bank file, sorted.
func (l *Loader) Subjects() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Parse validates and decodes a bank file.
func Parse(subjectID string, data []byte) (*Bank, error) {
	if err := validateFile(data); err != nil {
		return nil, fmt.Errorf("bank %s: %w", subjectID, err)
	}

	var raw rawBank
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode bank %s: %w", subjectID, err)
	}

	b := &Bank{
		SubjectID: subjectID,
		Questions: make([]Question, len(raw.Questions)),
	}
	for i, rq := range raw.Questions {
		b.Questions[i] = parseQuestion(i, rq)
	}
	return b, nil
}
