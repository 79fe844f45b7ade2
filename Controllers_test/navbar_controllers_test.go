package Controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/blackfish/components"
)

func TestScrollThreshold(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)

	tests := []struct {
		y        float64
		scrolled bool
	}{
		{0, false},
		{50, false},
		{50.5, true},
		{400, true},
		{12, false},
	}
	for _, tt := range tests {
		w := v.postJSON(http.MethodPost, "/api/navbar/scroll", map[string]float64{"y": tt.y})
		require.Equal(t, http.StatusOK, w.Code)
		var snap components.NavbarSnapshot
		decode(t, w, &snap)
		assert.Equal(t, tt.scrolled, snap.Scrolled, "y=%v", tt.y)
	}
}

func TestScrollRequiresOffset(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)

	w := v.postJSON(http.MethodPost, "/api/navbar/scroll", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScrolledNavbarRenders(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)

	v.postJSON(http.MethodPost, "/api/navbar/scroll", map[string]float64{"y": 120})
	w := v.do(http.MethodGet, "/", "", nil)
	assert.Contains(t, w.Body.String(), "navbar--scrolled")
}

func TestToggleMenuForm(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)

	w := v.postForm("/navbar/menu", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?page="+v.pageID+"#navbar", w.Header().Get("Location"))
	assert.True(t, v.state().Navbar.MenuOpen)

	w = v.do(http.MethodGet, "/", "", nil)
	assert.Contains(t, w.Body.String(), "navbar__mobile--open")

	v.postForm("/navbar/menu", url.Values{})
	assert.False(t, v.state().Navbar.MenuOpen)
}

func TestToggleMenuJSON(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)

	var snap components.NavbarSnapshot
	decode(t, v.postJSON(http.MethodPost, "/api/navbar/menu", nil), &snap)
	assert.True(t, snap.MenuOpen)
	decode(t, v.postJSON(http.MethodPost, "/api/navbar/menu", nil), &snap)
	assert.False(t, snap.MenuOpen)
}

func TestNavbarStateIsPerVisitor(t *testing.T) {
	env := setupEnv(t, envOptions{})
	alice := env.newVisitor(t)
	bob := env.newVisitor(t)

	alice.postForm("/navbar/menu", url.Values{})

	assert.True(t, alice.state().Navbar.MenuOpen)
	assert.False(t, bob.state().Navbar.MenuOpen)
}

func TestToggleMenuFormWithoutScript(t *testing.T) {
	env := setupEnv(t, envOptions{})
	v := env.newVisitor(t)
	page := v.pageID

	// without script the page id travels in the form action, not the header
	v.pageID = ""
	w := v.postForm("/navbar/menu?page="+page, url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, page, v.pageID)
	assert.Equal(t, "/?page="+page+"#navbar", w.Header().Get("Location"))
	assert.True(t, v.state().Navbar.MenuOpen)
	assert.Equal(t, 1, env.Store.Len())
}
