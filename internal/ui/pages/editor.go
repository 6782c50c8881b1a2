package pages

import "github.com/pixelplaque/pixelplaque/internal/model"

var featuredOptions = []model.Option{{Value: "no", Label: "No"}, {Value: "yes", Label: "Yes"}}

var statusOptions = []model.Option{
	{Value: model.StatusDraft.String(), Label: model.StatusDraft.Label()},
	{Value: model.StatusPublished.String(), Label: model.StatusPublished.Label()},
}

func dialogTitle(isNew bool, create, edit string) string {
	if isNew {
		return create
	}
	return edit
}
