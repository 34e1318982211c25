package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/flowstate/internal/model"
)

func TestExtractHandles(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"no handles here", nil},
		{"@Sam can you look?", []string{"Sam"}},
		{"ping @sam and @Jamie, then @SAM again", []string{"sam", "Jamie"}},
		{"mail alex@example.com is not a handle", nil},
		{"trailing dot @Taylor.", []string{"Taylor"}},
		{"single @x", []string{"x"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractHandles(tc.text), tc.text)
	}
}

func TestResolve(t *testing.T) {
	users := []model.User{
		{ID: "user-1", Name: "Alex"},
		{ID: "user-2", Name: "Sam"},
		{ID: "user-3", Name: "Jamie Lee"},
	}

	got := Resolve("@jamie and @Sam, also @Alex and @nobody", users, "user-1")
	ids := make([]string, len(got))
	for i, u := range got {
		ids[i] = u.ID
	}
	assert.Equal(t, []string{"user-3", "user-2"}, ids)

	assert.Len(t, Resolve("@JamieLee", users, ""), 1)
	assert.Empty(t, Resolve("hello", users, ""))
}
