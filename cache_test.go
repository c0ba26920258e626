package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegexCacheReusesCompiledPatterns(t *testing.T) {
	t.Parallel()

	c := newRegexCache(2)
	a := c.get(`\d{3}`)
	b := c.get(`\d{3}`)
	assert.Same(t, a, b)
}

func TestRegexCacheEvicts(t *testing.T) {
	t.Parallel()

	c := newRegexCache(2)
	a := c.get(`\d{1}`)
	c.get(`\d{2}`)
	c.get(`\d{3}`) // evicts \d{1}
	assert.NotSame(t, a, c.get(`\d{1}`))
}

func TestRegexCacheCompilesCaseInsensitive(t *testing.T) {
	t.Parallel()

	c := newRegexCache(0)
	assert.True(t, c.get("abc").MatchString("ABC"))
}
