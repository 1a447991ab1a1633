package persistence

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/infrastructure/db"
)

type StaticNetworkRepository struct {
	db *db.DB
}

func NewStaticNetworkRepository(db *db.DB) *StaticNetworkRepository {
	return &StaticNetworkRepository{db: db}
}

func (r *StaticNetworkRepository) Load(ctx context.Context, key string) ([]domain.HostStaticNetworkConfig, error) {
	query := `SELECT network_yaml, mac_interface_map FROM host_static_network_configs WHERE host_group_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load network documents")
	}
	defer rows.Close()

	configs := []domain.HostStaticNetworkConfig{}
	for rows.Next() {
		var config domain.HostStaticNetworkConfig
		var macMap []byte
		if err := rows.Scan(&config.NetworkYAML, &macMap); err != nil {
			return nil, errors.Wrap(err, "failed to scan network document row")
		}
		if err := json.Unmarshal(macMap, &config.MacInterfaceMap); err != nil {
			return nil, errors.Wrap(err, "failed to decode MAC interface map")
		}
		configs = append(configs, config)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate network documents")
	}
	return configs, nil
}

// Save replaces the whole document set of a host group in one transaction.
func (r *StaticNetworkRepository) Save(ctx context.Context, key string, configs []domain.HostStaticNetworkConfig) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM host_static_network_configs WHERE host_group_id = $1`, key); err != nil {
		return errors.Wrap(err, "failed to delete previous network documents")
	}

	query := `
		INSERT INTO host_static_network_configs (host_group_id, position, network_yaml, mac_interface_map)
		VALUES ($1, $2, $3, $4)
	`
	for i, config := range configs {
		macMap, err := json.Marshal(config.MacInterfaceMap)
		if err != nil {
			return errors.Wrap(err, "failed to encode MAC interface map")
		}
		if _, err := tx.ExecContext(ctx, query, key, i, config.NetworkYAML, string(macMap)); err != nil {
			return errors.Wrapf(err, "failed to insert network document %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// Locate resolves a host group to the infra env its documents are stored
// under.
func (r *StaticNetworkRepository) Locate(ctx context.Context, hostGroupID string) (string, error) {
	var infraEnvID string
	err := r.db.QueryRowContext(ctx, `SELECT infra_env_id FROM host_groups WHERE id = $1`, hostGroupID).Scan(&infraEnvID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", errors.Errorf("host group %s not found", hostGroupID)
		}
		return "", errors.Wrap(err, "failed to locate host group")
	}
	return infraEnvID, nil
}
