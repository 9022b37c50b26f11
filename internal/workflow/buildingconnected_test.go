package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBuildingConnectedNotification(t *testing.T) {
	assert.True(t, IsBuildingConnectedNotification("team@buildingconnected.com", "Proposal Submitted - Yogurtland #42"))
	assert.True(t, IsBuildingConnectedNotification("BuildingConnected <noreply@BuildingConnected.com>", "Proposal Submitted"))

	// Both conditions are required.
	assert.False(t, IsBuildingConnectedNotification("team@buildingconnected.com", "Invitation to bid"))
	assert.False(t, IsBuildingConnectedNotification("sub@acme.com", "Proposal Submitted - Yogurtland #42"))
}

func TestExtractBuildingConnectedFromHTML(t *testing.T) {
	html := `<html><body>
<p><strong>Smith Electric</strong> has submitted a proposal for your project.</p>
<p>Trade: <span class="label">Electrical</span></p>
<a href="https://app.buildingconnected.com/download/file-1">Download proposal</a>
<a href="https://app.buildingconnected.com/download/file-2">Download bid form</a>
</body></html>`

	data := ExtractBuildingConnected("Proposal Submitted - Panda Express - San Antonio", html, "")

	assert.Equal(t, "Panda Express - San Antonio", data.ProjectName)
	assert.Equal(t, "Smith Electric", data.CompanyName)
	assert.Equal(t, "Electrical", data.Trade)
	assert.Equal(t, []string{
		"https://app.buildingconnected.com/download/file-1",
		"https://app.buildingconnected.com/download/file-2",
	}, data.DownloadLinks)
}

func TestExtractBuildingConnectedScopePhrase(t *testing.T) {
	html := `<p>A proposal from <strong>Jones Concrete</strong> for the Concrete scope is ready.</p>`

	data := ExtractBuildingConnected("Proposal Submitted - Store 12", html, "")

	assert.Equal(t, "Jones Concrete", data.CompanyName)
	assert.Equal(t, "Concrete", data.Trade)
}

func TestExtractBuildingConnectedTextFallback(t *testing.T) {
	text := "Acme Roofing has submitted a proposal.\nTrade: Roofing\n"

	data := ExtractBuildingConnected("Proposal Submitted - Store 12", "", text)

	assert.Equal(t, "Store 12", data.ProjectName)
	assert.Equal(t, "Acme Roofing", data.CompanyName)
	assert.Equal(t, "Roofing", data.Trade)
	assert.Empty(t, data.DownloadLinks)
}

func TestExtractBuildingConnectedPartial(t *testing.T) {
	data := ExtractBuildingConnected("Proposal Submitted", "<p>nothing useful</p>", "")

	assert.Empty(t, data.ProjectName)
	assert.Empty(t, data.CompanyName)
	assert.Empty(t, data.Trade)
}
