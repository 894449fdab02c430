package main

import (
	"fmt"

	"github.com/atotto/clipboard"
)

var writeClipboard = clipboard.WriteAll

// copyProjectLink puts the open project's live link, or its source link,
// on the clipboard.
func (m *model) copyProjectLink() {
	link := m.detail.project.PrimaryLink()
	if link == "" {
		m.errorMessage = fmt.Sprintf("%s has no link", m.detail.project.Title)
		return
	}
	if err := writeClipboard(link); err != nil {
		m.errorMessage = fmt.Sprintf("Failed to copy link: %v", err)
		return
	}
	m.successMessage = "Copied " + link
}
