package lexicon

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordtile/config"
)

// A Cache loads each lexicon once. A server that builds one engine per
// request shares a Cache between them; it is owned by the caller and safe
// for concurrent use.
type Cache struct {
	sync.Mutex
	cfg    *config.Config
	lexica map[cacheKey]*Lexicon
}

type cacheKey struct {
	name, letterDistribution string
}

func NewCache(cfg *config.Config) *Cache {
	return &Cache{cfg: cfg, lexica: map[cacheKey]*Lexicon{}}
}

// Get returns the lexicon, loading it on first use.
func (c *Cache) Get(name, letterDistribution string) (*Lexicon, error) {
	key := cacheKey{name, letterDistribution}
	c.Lock()
	defer c.Unlock()
	if lex, ok := c.lexica[key]; ok {
		log.Debug().Str("key", name).Msg("getting lexicon from cache")
		return lex, nil
	}
	log.Debug().Str("key", name).Msg("loading into cache")
	lex, err := Load(c.cfg, name, letterDistribution)
	if err != nil {
		return nil, err
	}
	c.lexica[key] = lex
	return lex, nil
}
