package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHash(t *testing.T) {
	assert.Equal(t, ContentHash("a", "b"), ContentHash("a", "b"))
	assert.NotEqual(t, ContentHash("a", "b"), ContentHash("a", "c"))

	// part boundaries matter, concatenation does not collide
	assert.NotEqual(t, ContentHash("ab", ""), ContentHash("a", "b"))
	assert.NotEqual(t, ContentHash("ab"), ContentHash("a", "b"))
}

func TestComputeContentHash(t *testing.T) {
	page := &Page{Name: "Home", Slug: "home"}
	page.ComputeContentHash()
	first := page.ContentHash

	page.ComputeContentHash()
	assert.Equal(t, first, page.ContentHash)

	page.Meta = `{"title":"Home"}`
	page.ComputeContentHash()
	assert.NotEqual(t, first, page.ContentHash)
}
