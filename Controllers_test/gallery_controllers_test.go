package Controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/blackfish/components"
	"github.com/yeremiapane/blackfish/models"
)

func visibleIDs(images []models.GalleryImage) []int {
	ids := make([]int, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	return ids
}

func TestGalleryFilterForm(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)

	tests := []struct {
		category models.GalleryCategory
		ids      []int
	}{
		{models.CategoryInterior, []int{1, 3, 6}},
		{models.CategoryCocktails, []int{2, 5}},
		{models.CategoryEvents, []int{4}},
		{models.CategoryAll, []int{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		w := v.postForm("/gallery/category", url.Values{"category": {string(tt.category)}})
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/?page="+v.pageID+"#gallery", w.Header().Get("Location"))

		state := v.state()
		assert.Equal(t, tt.category, state.Gallery.Active)
		assert.Equal(t, tt.ids, visibleIDs(state.Gallery.Visible))
	}
}

func TestGalleryFilterRendersActiveButton(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)

	v.postForm("/gallery/category", url.Values{"category": {"events"}})
	body := v.do(http.MethodGet, "/", "", nil).Body.String()

	assert.Contains(t, body, "Jazz night performance")
	assert.NotContains(t, body, "Intimate dining area")
}

func TestGalleryFilterRejectsUnknownCategory(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)
	v.postForm("/gallery/category", url.Values{"category": {"cocktails"}})

	w := v.postForm("/gallery/category", url.Values{"category": {"kitchen"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var snap components.GallerySnapshot
	env2 := decode(t, v.postJSON(http.MethodPost, "/api/gallery/category", map[string]string{"category": "kitchen"}), &snap)
	assert.False(t, env2.Status)
	assert.Equal(t, models.CategoryCocktails, snap.Active)
}

func TestLightboxForm(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)

	w := v.postForm("/gallery/images/4/open", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	selected := v.state().Gallery.Selected
	require.NotNil(t, selected)
	assert.Equal(t, 4, selected.ID)
	assert.Contains(t, v.do(http.MethodGet, "/", "", nil).Body.String(), `id="lightbox"`)

	for _, via := range []string{"backdrop", "close_button"} {
		v.postForm("/gallery/images/2/open", url.Values{})
		w = v.postForm("/gallery/close", url.Values{"via": {via}})
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Nil(t, v.state().Gallery.Selected, via)
	}
}

func TestLightboxOpenErrors(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)

	assert.Equal(t, http.StatusNotFound, v.postForm("/gallery/images/99/open", url.Values{}).Code)
	assert.Equal(t, http.StatusBadRequest, v.postForm("/gallery/images/abc/open", url.Values{}).Code)

	// an image hidden by the filter cannot be opened
	v.postForm("/gallery/category", url.Values{"category": {"events"}})
	assert.Equal(t, http.StatusNotFound, v.postJSON(http.MethodPost, "/api/gallery/images/1/open", nil).Code)
	assert.Nil(t, v.state().Gallery.Selected)
}

func TestLightboxJSON(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)

	var snap components.GallerySnapshot
	w := v.postJSON(http.MethodPost, "/api/gallery/images/3/open", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &snap)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "Private lounge area with vintage furniture", snap.Selected.Alt)

	// clicks on the enlarged image leave it open
	decode(t, v.postJSON(http.MethodPost, "/api/gallery/inside", nil), &snap)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, 3, snap.Selected.ID)

	w = v.postJSON(http.MethodPost, "/api/gallery/close", map[string]string{"via": "elsewhere"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotNil(t, v.state().Gallery.Selected)

	decode(t, v.postJSON(http.MethodPost, "/api/gallery/close", map[string]string{"via": "backdrop"}), &snap)
	assert.Nil(t, snap.Selected)
}
