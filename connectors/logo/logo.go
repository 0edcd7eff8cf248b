package logo

import (
	"encoding/base64"
	"errors"
	"net/http"
	"os"
)

// DataURI returns the file at path as a base64 data URI. A missing file yields "".
func DataURI(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	if len(b) == 0 {
		return "", nil
	}
	return "data:" + http.DetectContentType(b) + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}
