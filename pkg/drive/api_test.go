package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFolderListQueryWithParent(t *testing.T) {
	query := folderListQuery("folder-123")
	assert.Equal(t, "'folder-123' in parents and mimeType='application/vnd.google-apps.folder' and trashed=false", query)
}

func TestFolderListQueryWithoutParent(t *testing.T) {
	// An empty parent spans the whole drive instead of producing the
	// invalid clause '' in parents.
	query := folderListQuery("")
	assert.Equal(t, "mimeType='application/vnd.google-apps.folder' and trashed=false", query)
	assert.NotContains(t, query, "in parents")
}

func TestFolderListQueryEscapesQuotes(t *testing.T) {
	query := folderListQuery("o'reilly")
	assert.Contains(t, query, `'o\'reilly' in parents`)
}
