package phone

import (
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultRegexCacheSize bounds the number of compiled metadata patterns
// kept around. A hundred covers the working set of a typical region mix.
const defaultRegexCacheSize = 100

// regexCache memoizes compiled patterns by source string. The underlying
// LRU is safe for concurrent use; a duplicate compile on a racing miss is
// harmless.
type regexCache struct {
	lru *lru.Cache[string, *regexp.Regexp]
}

func newRegexCache(size int) *regexCache {
	if size < 1 {
		size = defaultRegexCacheSize
	}
	c, _ := lru.New[string, *regexp.Regexp](size)
	return &regexCache{lru: c}
}

// get returns the compiled, case-insensitive form of pattern. Patterns
// come from decoded metadata; one that fails to compile is an invariant
// violation in the data file.
func (c *regexCache) get(pattern string) *regexp.Regexp {
	if re, ok := c.lru.Get(pattern); ok {
		return re
	}
	re := regexp.MustCompile("(?i)" + pattern)
	c.lru.Add(pattern, re)
	return re
}
