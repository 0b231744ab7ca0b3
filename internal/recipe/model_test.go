package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRecipe_VisibleTo(t *testing.T) {
	author := uuid.New()
	stranger := uuid.New()

	public := &Recipe{AuthorID: author, IsPublic: true}
	private := &Recipe{AuthorID: author, IsPublic: false}

	assert.True(t, public.VisibleTo(nil))
	assert.True(t, public.VisibleTo(&stranger))
	assert.True(t, private.VisibleTo(&author))
	assert.False(t, private.VisibleTo(&stranger))
	assert.False(t, private.VisibleTo(nil))
}
