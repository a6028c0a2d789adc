package registry

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.trai.ch/crier/internal/adapters/cargo"
	"go.trai.ch/crier/internal/adapters/cas"
	"go.trai.ch/crier/internal/core/ports"
)

// NodeID is the unique identifier for the registry downloader Graft node.
const NodeID graft.ID = "adapter.registry_downloader"

const requestTimeout = 2 * time.Minute

// NewHTTPClient returns the client used to talk to registries. Requests are traced.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   requestTimeout,
	}
}

func init() {
	graft.Register(graft.Node[ports.Downloader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cargo.ManifestNodeID, cas.NodeID},
		Run: func(ctx context.Context) (ports.Downloader, error) {
			manifests, err := graft.Dep[ports.ManifestReader](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.CrateCache](ctx)
			if err != nil {
				return nil, err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}

			return NewDownloader(NewHTTPClient(), NewLocator(cwd), manifests).WithCache(cache), nil
		},
	})
}
