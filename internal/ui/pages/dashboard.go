package pages

import (
	"github.com/a-h/templ"
	"github.com/pixelplaque/pixelplaque/internal/ui"
)

const (
	TabPortfolio = "portfolio"
	TabBlog      = "blog"
)

var dashboardTabs = []struct{ ID, Label string }{
	{TabPortfolio, "Portfolio"},
	{TabBlog, "Blog"},
}

func tabURL(id string) templ.SafeURL {
	return templ.SafeURL("/admin/dashboard?tab=" + id)
}

func tabClass(id, current string) string {
	class := "border-b-2 border-transparent px-4 py-2 text-sm"
	if id == current {
		return ui.Class(class, "border-fuchsia-500 font-semibold")
	}
	return class
}
