// Package resources embeds the application icons and chime sounds.
package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	chimeDir = "chimes/"
	logoDir  = "logo/"

	// AppLogo is the window and notification icon.
	AppLogo = "clockdeck.png"
	// TrayLogo is the system tray icon.
	TrayLogo = "tray.png"
)

//go:embed chimes/*.wav
var chimeFS embed.FS

//go:embed logo/*.png
var logoFS embed.FS

var logoCache sync.Map

// Chime returns the raw WAV bytes of an embedded chime file.
func Chime(media string) ([]byte, error) {
	data, err := chimeFS.ReadFile(chimeDir + media)
	if err != nil {
		return nil, fmt.Errorf("load chime %s: %w", media, err)
	}
	return data, nil
}

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	path := logoDir + fileName
	if cached, ok := logoCache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := logoFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(fileName, data)
	logoCache.Store(path, resource)
	return resource, nil
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}
