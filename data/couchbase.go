package data

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/couchbase/gocb/v2"
	"go.uber.org/zap"
)

// CouchbaseStore backs the key-value medium with a Couchbase bucket, one
// document per namespace key. The connection is established lazily on first
// use so the server can start before the cluster is reachable.
type CouchbaseStore struct {
	URL    string
	Bucket string
	User   string
	Pass   string

	log     *zap.Logger
	cluster *gocb.Cluster
	bucket  *gocb.Bucket
}

func NewCouchbaseStore(url, bucket, user, pass string, log *zap.Logger) *CouchbaseStore {
	return &CouchbaseStore{
		URL:    url,
		Bucket: bucket,
		User:   user,
		Pass:   pass,
		log:    log,
	}
}

func (s *CouchbaseStore) ensureConnection() error {
	if s.cluster != nil && s.bucket != nil {
		return nil
	}

	cluster, err := gocb.Connect("couchbase://"+s.URL, gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: s.User,
			Password: s.Pass,
		},
	})
	if err != nil {
		return err
	}

	bucket := cluster.Bucket(s.Bucket)
	if err := bucket.WaitUntilReady(5*time.Second, nil); err != nil {
		return err
	}

	s.log.Info("connected to couchbase", zap.String("bucket", s.Bucket))
	s.cluster = cluster
	s.bucket = bucket
	return nil
}

func (s *CouchbaseStore) Get(key string) ([]byte, bool) {
	if err := s.ensureConnection(); err != nil {
		s.log.Warn("couchbase unavailable", zap.Error(err))
		return nil, false
	}

	res, err := s.bucket.DefaultCollection().Get(key, nil)
	if err != nil {
		if !errors.Is(err, gocb.ErrDocumentNotFound) {
			s.log.Warn("couchbase get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var raw json.RawMessage
	if err := res.Content(&raw); err != nil {
		s.log.Warn("couchbase content decode failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return raw, true
}

func (s *CouchbaseStore) Set(key string, value []byte) error {
	if err := s.ensureConnection(); err != nil {
		return err
	}
	_, err := s.bucket.DefaultCollection().Upsert(key, json.RawMessage(value), nil)
	return err
}

func (s *CouchbaseStore) Delete(key string) error {
	if err := s.ensureConnection(); err != nil {
		return err
	}
	_, err := s.bucket.DefaultCollection().Remove(key, nil)
	if errors.Is(err, gocb.ErrDocumentNotFound) {
		return nil
	}
	return err
}
