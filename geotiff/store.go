package geotiff

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/karlseguin/ccache/v3"
	"golang.org/x/sync/singleflight"
)

const defaultStoreTTL = 10 * time.Minute

// Store caches decoded rasters by source URI. Because decoding reconstructs
// the full raster eagerly, the cache works at whole-file granularity; a
// singleflight group collapses concurrent loads of the same source so the
// underlying bytes are only fetched and decoded once.
type Store struct {
	cache    *ccache.Cache[*TIFF]
	inflight singleflight.Group
	ttl      time.Duration
	client   *http.Client
}

// NewStore creates a Store. maxSize and itemsToPrune configure the LRU
// cache; ttl of 0 selects the default expiry.
func NewStore(maxSize int64, itemsToPrune uint32, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = defaultStoreTTL
	}
	return &Store{
		cache: ccache.New(ccache.Configure[*TIFF]().MaxSize(maxSize).ItemsToPrune(itemsToPrune)),
		ttl:   ttl,
	}
}

// WithHTTPClient sets the client used for http(s) sources.
func (s *Store) WithHTTPClient(client *http.Client) *Store {
	s.client = client
	return s
}

// Load returns the decoded raster for source, which is either a local file
// path or an http(s) URL served with byte-range support. Decoded rasters are
// immutable, so a cached value is shared freely between callers.
func (s *Store) Load(source string) (*TIFF, error) {
	item := s.cache.Get(source)
	if item != nil && !item.Expired() {
		return item.Value(), nil
	}

	v, err, _ := s.inflight.Do(source, func() (interface{}, error) {
		tiff, err := s.load(source)
		if err != nil {
			return nil, err
		}
		s.cache.Set(source, tiff, s.ttl)
		return tiff, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TIFF), nil
}

func (s *Store) load(source string) (*TIFF, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		r, err := NewHTTPRangeReader(source, s.client)
		if err != nil {
			return nil, fmt.Errorf("failed to create range reader for %s: %w", source, err)
		}
		return Read(r)
	}
	return Open(source)
}
