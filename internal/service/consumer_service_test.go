package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkDocumentEmpty(t *testing.T) {
	assert.Nil(t, chunkDocument("", 100))
	assert.Nil(t, chunkDocument("  \n\n  ", 100))
}

func TestChunkDocumentSingleParagraph(t *testing.T) {
	chunks := chunkDocument("a short paragraph", 100)
	assert.Equal(t, []string{"a short paragraph"}, chunks)
}

func TestChunkDocumentPacksParagraphs(t *testing.T) {
	chunks := chunkDocument("first para\n\nsecond para\n\nthird para", 100)
	// All three fit inside one chunk and stay joined.
	assert.Equal(t, []string{"first para\n\nsecond para\n\nthird para"}, chunks)
}

func TestChunkDocumentSplitsAtCap(t *testing.T) {
	first := strings.Repeat("a", 60)
	second := strings.Repeat("b", 60)
	chunks := chunkDocument(first+"\n\n"+second, 100)
	assert.Equal(t, []string{first, second}, chunks)
}

func TestChunkDocumentHardSplitsOversizedParagraph(t *testing.T) {
	para := strings.Repeat("x", 250)
	chunks := chunkDocument(para, 100)
	assert.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("x", 100), chunks[0])
	assert.Equal(t, strings.Repeat("x", 100), chunks[1])
	assert.Equal(t, strings.Repeat("x", 50), chunks[2])
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 100)
	}
}
