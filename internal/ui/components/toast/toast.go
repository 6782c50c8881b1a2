package toast

import "github.com/a-h/templ"

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
)

// Target is the htmx out-of-band target that appends a toast to the page's container
const Target = "beforeend:#toast-container"

type Props struct {
	Title       string
	Description string
	Variant     Variant
	Icon        bool
	Dismissible bool
}

var variantClasses = map[Variant]string{
	VariantDefault: "border-zinc-700",
	VariantSuccess: "border-emerald-500",
	VariantError:   "border-red-500",
	VariantInfo:    "border-sky-500",
}

var variantIcons = map[Variant]string{
	VariantSuccess: "✓",
	VariantError:   "!",
	VariantInfo:    "i",
}

// variant falls back to the default style for an unset Variant
func (p Props) variant() Variant {
	if p.Variant == "" {
		return VariantDefault
	}
	return p.Variant
}

func Success(description string) templ.Component {
	return Toast(Props{Title: "Success", Description: description, Variant: VariantSuccess, Icon: true, Dismissible: true})
}

func Error(description string) templ.Component {
	return Toast(Props{Title: "Error", Description: description, Variant: VariantError, Icon: true, Dismissible: true})
}
