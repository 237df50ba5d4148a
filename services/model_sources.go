// services/model_sources.go
package services

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/ndelgado/flight-delay-api/ml"
)

// ModelSource is one place a previously trained classifier may be recovered
// from. Sources are tried in an explicit ordered chain at construction time;
// each answers found/not-found and an error is just not-found with a warning.
type ModelSource interface {
	Name() string
	Load() (ml.Classifier, bool)
}

type fileSource struct {
	path string
}

// NewFileSource loads the model blob from a local file path.
func NewFileSource(path string) ModelSource {
	return fileSource{path: path}
}

func (s fileSource) Name() string { return "local file " + s.path }

func (s fileSource) Load() (ml.Classifier, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Str("path", s.path).Err(err).Msg("could not read local model file")
		}
		return nil, false
	}
	clf, err := ml.Unmarshal(data)
	if err != nil {
		log.Warn().Str("path", s.path).Err(err).Msg("could not decode local model file")
		return nil, false
	}
	return clf, true
}

// FetchFunc retrieves a named artifact blob; (nil, nil) means not found.
type FetchFunc func(name string) ([]byte, error)

type dbSource struct {
	artifact string
	fetch    FetchFunc
}

// NewDatabaseSource loads the model blob from the artifact store, keyed by a
// fixed artifact name. Read-only: nothing in this process ever writes there.
func NewDatabaseSource(artifact string, fetch FetchFunc) ModelSource {
	return dbSource{artifact: artifact, fetch: fetch}
}

func (s dbSource) Name() string { return "database artifact " + s.artifact }

func (s dbSource) Load() (ml.Classifier, bool) {
	data, err := s.fetch(s.artifact)
	if err != nil {
		log.Warn().Str("artifact", s.artifact).Err(err).Msg("could not fetch model artifact")
		return nil, false
	}
	if data == nil {
		log.Warn().Str("artifact", s.artifact).Msg("model artifact not found in store")
		return nil, false
	}
	clf, err := ml.Unmarshal(data)
	if err != nil {
		log.Warn().Str("artifact", s.artifact).Err(err).Msg("could not decode model artifact")
		return nil, false
	}
	return clf, true
}

// SaveLocal persists a trained classifier as a single blob at path, creating
// the parent directory if needed. Saving only ever targets local storage;
// promoting a blob into the artifact store is an operational step elsewhere.
func SaveLocal(path string, clf *ml.BoostedTrees) error {
	data, err := ml.Marshal(clf)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
