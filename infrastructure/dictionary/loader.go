// Package dictionary locates and reads Hunspell dictionary files from disk.
package dictionary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"writecoach-backend/domain/dictionary"
	"writecoach-backend/pkg/observability"
)

const compressedSuffix = ".zst"

// Files are the resolved paths of one dictionary
type Files struct {
	Aff string
	Dic string
}

// Resolve finds <dir>/<locale>.aff and .dic, preferring plain files over
// their .zst variants.
func Resolve(dir, locale string) (Files, error) {
	aff, err := find(filepath.Join(dir, locale+".aff"))
	if err != nil {
		return Files{}, err
	}
	dic, err := find(filepath.Join(dir, locale+".dic"))
	if err != nil {
		return Files{}, err
	}
	return Files{Aff: aff, Dic: dic}, nil
}

func find(path string) (string, error) {
	for _, candidate := range []string{path, path + compressedSuffix} {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("%s: %w", path, fs.ErrNotExist)
}

// NewLoadFunc returns a loader for the locale's dictionary under dir. The
// load time is recorded in metrics when metrics is non-nil.
func NewLoadFunc(dir, locale string, metrics *observability.Metrics, logger *zap.Logger) dictionary.LoadFunc {
	return func() (*dictionary.Dictionary, error) {
		start := time.Now()

		files, err := Resolve(dir, locale)
		if err != nil {
			logger.Error("Dictionary files not found",
				zap.String("dir", dir),
				zap.String("locale", locale),
				zap.Error(err),
			)
			return nil, err
		}

		dict, err := Load(files)
		if err != nil {
			logger.Error("Failed to load dictionary",
				zap.String("aff", files.Aff),
				zap.String("dic", files.Dic),
				zap.Error(err),
			)
			return nil, err
		}

		elapsed := time.Since(start)
		if metrics != nil {
			metrics.RecordDictionaryLoad(elapsed)
		}
		logger.Info("Dictionary loaded",
			zap.String("locale", locale),
			zap.Int("words", dict.WordCount()),
			zap.Duration("duration", elapsed),
		)
		return dict, nil
	}
}

// Load reads and parses a dictionary
func Load(files Files) (*dictionary.Dictionary, error) {
	var dict *dictionary.Dictionary
	err := withContents(files.Aff, func(aff []byte) error {
		return withContents(files.Dic, func(dic []byte) error {
			var err error
			dict, err = dictionary.Parse(aff, dic)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return dict, nil
}

// withContents hands fn the file's bytes: memory-mapped for plain files,
// decompressed for .zst files. The bytes are only valid during fn.
func withContents(path string, fn func([]byte) error) error {
	if filepath.Ext(path) == compressedSuffix {
		data, err := decompress(path)
		if err != nil {
			return err
		}
		return fn(data)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fn(nil)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("map %s: %w", path, err)
	}
	defer m.Unmap()

	return fn(m)
}

func decompress(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	data, err := decoder.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return data, nil
}
