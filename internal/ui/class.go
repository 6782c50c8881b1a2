package ui

import twmerge "github.com/Oudwins/tailwind-merge-go"

// Class merges Tailwind classes; later classes override conflicting earlier ones
func Class(classes ...string) string {
	return twmerge.Merge(classes...)
}
