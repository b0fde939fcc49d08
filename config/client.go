package config

import (
	"os"
	"path/filepath"
)

// Miniprogram client root markers.
const (
	appJSON = "app.json"
	appJS   = "app.js"
	appTS   = "app.ts"
)

// IsWellStructuredClient reports whether clientDir holds the files a
// miniprogram client needs: app.json plus app.js or app.ts.
func IsWellStructuredClient(clientDir string) bool {
	if !fileExists(filepath.Join(clientDir, appJSON)) {
		return false
	}
	return fileExists(filepath.Join(clientDir, appJS)) || fileExists(filepath.Join(clientDir, appTS))
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
