package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/toastui/internal/model"
)

func TestStylesheet_Defaults(t *testing.T) {
	css := Stylesheet("toast-01", model.DefaultConfig())

	assert.Contains(t, css, "#toast-01 { background-color: #1c1c1c; }")
	assert.Contains(t, css, "#toast-01 .toast-title { color: #FFFFFF; }")
	assert.Contains(t, css, "#toast-01 .toast-message, #toast-01 .toast-appname { color: #b0b0b0; }")
	assert.Contains(t, css, "#toast-01 .toast-icon { border-radius: 50%; }")
}

func TestStylesheet_CustomColors(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.TitleColor = "red"
	cfg.MessageColor = "rgb(1, 2, 3)"
	cfg.BackgroundColor = "#ffffff"
	cfg.IconBorder = model.BorderSquare

	css := Stylesheet("t", cfg)
	assert.Contains(t, css, "#t { background-color: #ffffff; }")
	assert.Contains(t, css, "#t .toast-title { color: red; }")
	assert.Contains(t, css, "color: rgb(1, 2, 3);")
	assert.Contains(t, css, "border-radius: 0;")
}

func TestStylesheet_SanitizesValues(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.TitleColor = "red; } window { opacity: 0"
	cfg.BackgroundColor = "  "

	css := Stylesheet("t", cfg)
	assert.Equal(t, 4, strings.Count(css, "{"))
	assert.Equal(t, 4, strings.Count(css, "}"))
	assert.Contains(t, css, "#t { background-color: #1c1c1c; }")
}

func TestBorderClass(t *testing.T) {
	assert.Equal(t, ClassCircle, BorderClass(model.BorderCircle))
	assert.Equal(t, ClassSquare, BorderClass(model.BorderSquare))
}
