package dictionary

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDictionaryUnavailable marks a dictionary that could not be loaded.
var ErrDictionaryUnavailable = errors.New("dictionary unavailable")

// LoadFunc reads and parses a dictionary.
type LoadFunc func() (*Dictionary, error)

// Source hands out the process-wide lexicon.
type Source interface {
	Lexicon() (Lexicon, error)
}

// Provider loads its dictionary on first use and serves the same instance
// afterwards. A failed load is remembered and never retried.
type Provider struct {
	load LoadFunc
	once sync.Once
	dict *Dictionary
	err  error
}

// NewProvider creates a provider around load.
func NewProvider(load LoadFunc) *Provider {
	return &Provider{load: load}
}

// Dictionary returns the loaded dictionary, loading it if necessary.
func (p *Provider) Dictionary() (*Dictionary, error) {
	p.once.Do(func() {
		if p.load == nil {
			p.err = fmt.Errorf("%w: no loader configured", ErrDictionaryUnavailable)
			return
		}
		dict, err := p.load()
		if err != nil {
			p.err = fmt.Errorf("%w: %w", ErrDictionaryUnavailable, err)
			return
		}
		p.dict = dict
	})
	return p.dict, p.err
}

// Lexicon implements Source.
func (p *Provider) Lexicon() (Lexicon, error) {
	dict, err := p.Dictionary()
	if err != nil {
		return nil, err
	}
	return dict, nil
}
