package desktop

import (
	"fmt"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"waitingtodo/internal/shell"
)

// AssetOptions serves the window content: the packaged renderer directory in
// production, or a reverse proxy to the development server.
func AssetOptions(source shell.ContentSource) (*assetserver.Options, error) {
	switch source.Kind {
	case shell.SourceURL:
		target, err := url.Parse(source.Location)
		if err != nil {
			return nil, fmt.Errorf("parse dev server url: %w", err)
		}
		if target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("dev server url %q is not absolute", source.Location)
		}
		return &assetserver.Options{Handler: devServerProxy(target)}, nil

	case shell.SourceFile:
		if source.Location == "" {
			return nil, fmt.Errorf("entry file is empty")
		}
		return &assetserver.Options{Assets: os.DirFS(filepath.Dir(source.Location))}, nil

	default:
		return nil, fmt.Errorf("unknown content source %v", source.Kind)
	}
}

func devServerProxy(target *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.SetXForwarded()
		},
	}
}
