package middleware

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// StaticAssets are the files under static/ that carry a cache-busting version
var StaticAssets = []string{
	"css/app.css",
	"js/app.js",
}

var (
	assetVersions   = map[string]string{}
	assetVersionsMu sync.RWMutex
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions(root string) {
	versions := make(map[string]string, len(StaticAssets))
	for _, name := range StaticAssets {
		version := computeFileHash(filepath.Join(root, name))
		if version == "" {
			version = "1"
		}
		versions[name] = version
	}

	assetVersionsMu.Lock()
	assetVersions = versions
	assetVersionsMu.Unlock()
	log.Printf("[INFO] Asset versions initialized: %d files", len(versions))
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// AssetVersion returns the version hash of a static asset, "1" when unknown
func AssetVersion(name string) string {
	assetVersionsMu.RLock()
	defer assetVersionsMu.RUnlock()
	if v, ok := assetVersions[name]; ok {
		return v
	}
	return "1"
}

// AssetURL returns the public URL of a static asset with its version query
func AssetURL(name string) string {
	return "/static/" + name + "?v=" + AssetVersion(name)
}
