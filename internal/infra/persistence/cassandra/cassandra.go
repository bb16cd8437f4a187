// Package cassandra contains the wide-column credential store adapter,
// implemented with gocql prepared statements.
package cassandra

import (
	"loginservice/config"
	"loginservice/internal/errors"

	"github.com/gocql/gocql"
)

// NewCluster builds the gocql cluster configuration for the configured
// contact points. Sessions are opened per call by the repository, so this
// only validates and shapes the connection target.
func NewCluster(cfg *config.Config) (*gocql.ClusterConfig, error) {
	if cfg.Cassandra == nil || len(cfg.Cassandra.Hosts) == 0 {
		return nil, errors.New("cassandra hosts must be provided")
	}

	cluster := gocql.NewCluster(cfg.Cassandra.Hosts...)
	cluster.Keyspace = cfg.Cassandra.Keyspace
	cluster.Consistency = gocql.Quorum
	if cfg.Cassandra.Port != 0 {
		cluster.Port = cfg.Cassandra.Port
	}
	if cfg.Cassandra.Timeout != 0 {
		cluster.Timeout = cfg.Cassandra.Timeout
	}

	return cluster, nil
}
