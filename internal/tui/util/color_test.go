package util

import "testing"

func TestSceneStylesPlainWithoutColor(t *testing.T) {
	menu, content := SceneStyles(true)
	if got := menu.Render("Home"); got != "Home" {
		t.Fatalf("menu style should be plain, got %q", got)
	}
	if got := content.Render("Recent:"); got != "Recent:" {
		t.Fatalf("content style should be plain, got %q", got)
	}
}

func TestSceneStylesUsePalette(t *testing.T) {
	p := DefaultPalette()
	menu, content := SceneStyles(false)
	if menu.GetBackground() != p.Menu || menu.GetForeground() != p.MenuText {
		t.Fatalf("menu style not from palette")
	}
	if content.GetBackground() != p.Content {
		t.Fatalf("content style not from palette")
	}
}
