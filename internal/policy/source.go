package policy

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Source fetches the raw policy document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

type embeddedSource struct{}

// Embedded serves the document compiled into the binary.
func Embedded() Source { return embeddedSource{} }

func (embeddedSource) Fetch(ctx context.Context) ([]byte, error) { return defaultDocument, nil }
func (embeddedSource) String() string { return "embedded" }

// FileSource reads the document from a YAML file.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read policy file")
	}
	return data, nil
}

func (s FileSource) String() string { return "file:" + s.Path }

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisSource reads the document from a single Redis string key, which lets
// several instances share one policy.
type RedisSource struct {
	Client redisGetter
	Key    string
}

func (s RedisSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := s.Client.Get(ctx, s.Key).Bytes()
	if err == redis.Nil {
		return nil, errors.Errorf("policy key %q not found in redis", s.Key)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read policy from redis")
	}
	return data, nil
}

func (s RedisSource) String() string { return "redis:" + s.Key }
