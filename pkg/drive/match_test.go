package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestMatchingFolder(t *testing.T) {
	folders := []Folder{
		{ID: "f1", Name: "Panda Express - San Antonio"},
		{ID: "f2", Name: "O'Reilly Auto Parts"},
	}

	t.Run("near-identical name matches", func(t *testing.T) {
		match := BestMatchingFolder(folders, "Panda Express San Antonio")
		require.NotNil(t, match)
		assert.Equal(t, "f1", match.ID)
	})

	t.Run("substring containment boosts short names", func(t *testing.T) {
		match := BestMatchingFolder(folders, "Panda Express - San Antonio Phase 2")
		require.NotNil(t, match)
		assert.Equal(t, "f1", match.ID)
	})

	t.Run("unrelated name rejected below threshold", func(t *testing.T) {
		assert.Nil(t, BestMatchingFolder(folders, "Completely Unrelated Name"))
	})

	t.Run("empty project name never matches", func(t *testing.T) {
		assert.Nil(t, BestMatchingFolder(folders, ""))
		assert.Nil(t, BestMatchingFolder(folders, "   "))
	})

	t.Run("no folders", func(t *testing.T) {
		assert.Nil(t, BestMatchingFolder(nil, "Panda Express"))
	})

	t.Run("tie keeps first listed", func(t *testing.T) {
		dupes := []Folder{
			{ID: "a", Name: "Yogurtland"},
			{ID: "b", Name: "Yogurtland"},
		}
		match := BestMatchingFolder(dupes, "Yogurtland")
		require.NotNil(t, match)
		assert.Equal(t, "a", match.ID)
	})
}

func TestBuildFileName(t *testing.T) {
	tests := []struct {
		trade, company, original string
		want                     string
	}{
		{"Plumbing", "Acme Plumbing", "proposal.pdf", "Plumbing_Acme Plumbing.pdf"},
		{"Concrete", "AcmeCo", "bid.docx", "Concrete_AcmeCo.docx"},
		{"Concrete", "AcmeCo", "bid.DOC", "Concrete_AcmeCo.doc"},
		{"Concrete", "AcmeCo", "photo.png", "Concrete_AcmeCo.pdf"},
		{"Concrete", "AcmeCo", "noextension", "Concrete_AcmeCo.pdf"},
		{"A/V: Systems", "Smith\\Sons", "bid.pdf", "A-V- Systems_Smith-Sons.pdf"},
		{"", "", "bid.pdf", "unknown_unknown.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildFileName(tt.trade, tt.company, tt.original), "BuildFileName(%q, %q, %q)", tt.trade, tt.company, tt.original)
	}
}
