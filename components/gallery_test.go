package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/blackfish/content"
	"github.com/yeremiapane/blackfish/models"
)

func fixtureGallery(t *testing.T) (*Gallery, []models.GalleryImage) {
	t.Helper()
	site, err := content.Default()
	require.NoError(t, err)
	return NewGallery(site.Gallery), site.Gallery
}

func ids(images []models.GalleryImage) []int {
	out := make([]int, 0, len(images))
	for _, img := range images {
		out = append(out, img.ID)
	}
	return out
}

func TestGalleryFilterIsStable(t *testing.T) {
	g, fixtures := fixtureGallery(t)

	assert.Equal(t, models.CategoryAll, g.Snapshot().Active)
	assert.Equal(t, fixtures, g.Visible())

	want := map[models.GalleryCategory][]int{
		models.CategoryInterior:  {1, 3, 6},
		models.CategoryCocktails: {2, 5},
		models.CategoryEvents:    {4},
		models.CategoryAll:       {1, 2, 3, 4, 5, 6},
	}
	for category, expected := range want {
		require.NoError(t, g.SelectCategory(category))
		visible := g.Visible()
		assert.Equal(t, expected, ids(visible), "category %s", category)
		for _, img := range visible {
			if category != models.CategoryAll {
				assert.Equal(t, category, img.Category)
			}
		}
	}
}

func TestGalleryRejectsUnknownCategory(t *testing.T) {
	g, _ := fixtureGallery(t)
	require.NoError(t, g.SelectCategory(models.CategoryEvents))

	err := g.SelectCategory("bathrooms")
	assert.True(t, models.IsValidation(err))
	assert.Equal(t, models.CategoryEvents, g.Snapshot().Active)
}

func TestLightboxCloseAffordances(t *testing.T) {
	for _, via := range []CloseAffordance{CloseButton, CloseBackdrop} {
		t.Run(string(via), func(t *testing.T) {
			g, _ := fixtureGallery(t)
			require.NoError(t, g.Open(2))
			require.NotNil(t, g.Snapshot().Selected)
			assert.Equal(t, 2, g.Snapshot().Selected.ID)

			require.NoError(t, g.Close(via))
			assert.Nil(t, g.Snapshot().Selected)
		})
	}
}

func TestLightboxClickInsideKeepsSelection(t *testing.T) {
	g, _ := fixtureGallery(t)
	require.NoError(t, g.Open(5))

	g.ClickInside()
	g.ClickInside()

	selected := g.Snapshot().Selected
	require.NotNil(t, selected)
	assert.Equal(t, 5, selected.ID)
}

func TestLightboxOpensOnlyVisibleImages(t *testing.T) {
	g, _ := fixtureGallery(t)
	require.NoError(t, g.SelectCategory(models.CategoryCocktails))

	err := g.Open(1)
	assert.True(t, models.IsNotFound(err))
	assert.Nil(t, g.Snapshot().Selected)

	assert.NoError(t, g.Open(5))
	assert.True(t, models.IsNotFound(g.Open(42)))
	assert.Equal(t, 5, g.Snapshot().Selected.ID)
}

func TestLightboxCloseValidation(t *testing.T) {
	g, _ := fixtureGallery(t)
	require.NoError(t, g.Open(1))

	assert.True(t, models.IsValidation(g.Close("escape_hatch")))
	assert.NotNil(t, g.Snapshot().Selected)

	// closing twice is harmless
	assert.NoError(t, g.Close(CloseBackdrop))
	assert.NoError(t, g.Close(CloseBackdrop))
	assert.Nil(t, g.Snapshot().Selected)
}

func TestGallerySnapshotIsACopy(t *testing.T) {
	g, fixtures := fixtureGallery(t)
	require.NoError(t, g.Open(3))

	snap := g.Snapshot()
	snap.Visible[0].Alt = "changed"
	snap.Selected.Alt = "changed"

	assert.Equal(t, fixtures[0].Alt, g.Visible()[0].Alt)
	assert.NotEqual(t, "changed", g.Snapshot().Selected.Alt)
}

func TestPlaceholderColorIsDeterministic(t *testing.T) {
	assert.Equal(t, "bg-gray-800", models.PlaceholderColor(1))
	assert.Equal(t, "bg-gray-900", models.PlaceholderColor(6))
	assert.Equal(t, models.PlaceholderColor(2), models.PlaceholderColor(8))
}
