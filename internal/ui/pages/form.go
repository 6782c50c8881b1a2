package pages

import (
	"github.com/a-h/templ"
	"github.com/pixelplaque/pixelplaque/internal/model"
	"github.com/pixelplaque/pixelplaque/internal/ui"
)

const (
	inputClass  = "w-full rounded-md border border-zinc-300 bg-white px-3 py-2 text-sm dark:border-zinc-700 dark:bg-zinc-900"
	labelClass  = "mb-1 block text-sm font-medium"
	buttonClass = "inline-flex items-center justify-center rounded-md bg-fuchsia-600 px-4 py-2 text-sm font-medium text-white hover:bg-fuchsia-500 disabled:opacity-50"
	ghostClass  = "inline-flex items-center justify-center rounded-md border border-zinc-300 px-4 py-2 text-sm hover:bg-zinc-100 dark:border-zinc-700 dark:hover:bg-zinc-800"
	featureTint = "bg-fuchsia-100 text-fuchsia-700 dark:bg-fuchsia-950 dark:text-fuchsia-300"
)

type input struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	ID          string
}

func (in input) id() string {
	if in.ID == "" {
		return in.Name
	}
	return in.ID
}

func (in input) inputType() string {
	if in.Type == "" {
		return "text"
	}
	return in.Type
}

// filterOptions puts "All" ahead of a category list
func filterOptions(options []model.Option) []model.Option {
	return append([]model.Option{{Value: "all", Label: "All"}}, options...)
}

func filterURL(base, value string) templ.SafeURL {
	if value == "all" {
		return templ.SafeURL(base)
	}
	return templ.SafeURL(base + "?category=" + value)
}

func filterClass(value, selected string) string {
	if selected == "" {
		selected = "all"
	}
	if value == selected {
		return ui.Class(buttonClass, "px-3 py-1")
	}
	return ui.Class(ghostClass, "px-3 py-1")
}
