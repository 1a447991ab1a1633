package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/infrastructure/db"
)

const macMapJSON = `[{"mac_address":"AA:BB:CC:DD:EE:FF","logical_nic_name":"eth0"}]`

func TestLoad(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	repo := NewStaticNetworkRepository(db.NewDB(mockDB))
	ctx := context.Background()

	t.Run("Load documents in position order", func(t *testing.T) {
		mock.ExpectQuery("SELECT network_yaml, mac_interface_map FROM host_static_network_configs").
			WithArgs("infra-1").
			WillReturnRows(sqlmock.NewRows([]string{"network_yaml", "mac_interface_map"}).
				AddRow("# form-view\n", macMapJSON).
				AddRow("# form-view\n", "[]"))

		configs, err := repo.Load(ctx, "infra-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(configs) != 2 {
			t.Fatalf("expected 2 documents, got %d", len(configs))
		}
		want := domain.MacInterfaceEntry{MacAddress: "AA:BB:CC:DD:EE:FF", LogicalNicName: "eth0"}
		if len(configs[0].MacInterfaceMap) != 1 || configs[0].MacInterfaceMap[0] != want {
			t.Errorf("unexpected MAC interface map %+v", configs[0].MacInterfaceMap)
		}
	})

	t.Run("No documents is not an error", func(t *testing.T) {
		mock.ExpectQuery("SELECT network_yaml, mac_interface_map FROM host_static_network_configs").
			WithArgs("infra-2").
			WillReturnRows(sqlmock.NewRows([]string{"network_yaml", "mac_interface_map"}))

		configs, err := repo.Load(ctx, "infra-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if configs == nil || len(configs) != 0 {
			t.Errorf("expected an empty document set, got %+v", configs)
		}
	})

	t.Run("Invalid MAC interface map", func(t *testing.T) {
		mock.ExpectQuery("SELECT network_yaml, mac_interface_map FROM host_static_network_configs").
			WithArgs("infra-1").
			WillReturnRows(sqlmock.NewRows([]string{"network_yaml", "mac_interface_map"}).AddRow("", "{"))

		if _, err := repo.Load(ctx, "infra-1"); err == nil {
			t.Error("expected an error, got nil")
		}
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT network_yaml, mac_interface_map FROM host_static_network_configs").
			WithArgs("infra-1").
			WillReturnError(fmt.Errorf("database error"))

		if _, err := repo.Load(ctx, "infra-1"); err == nil {
			t.Error("expected an error, got nil")
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %s", err)
	}
}

func TestSave(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	repo := NewStaticNetworkRepository(db.NewDB(mockDB))
	ctx := context.Background()
	configs := []domain.HostStaticNetworkConfig{
		{
			NetworkYAML:     "# form-view\n",
			MacInterfaceMap: []domain.MacInterfaceEntry{{MacAddress: "AA:BB:CC:DD:EE:FF", LogicalNicName: "eth0"}},
		},
		{NetworkYAML: "# form-view\n"},
	}

	t.Run("Replace document set", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM host_static_network_configs").
			WithArgs("infra-1").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("INSERT INTO host_static_network_configs").
			WithArgs("infra-1", 0, "# form-view\n", macMapJSON).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO host_static_network_configs").
			WithArgs("infra-1", 1, "# form-view\n", "null").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := repo.Save(ctx, "infra-1", configs); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Insert failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM host_static_network_configs").
			WithArgs("infra-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO host_static_network_configs").
			WithArgs("infra-1", 0, "# form-view\n", macMapJSON).
			WillReturnError(fmt.Errorf("database error"))
		mock.ExpectRollback()

		if err := repo.Save(ctx, "infra-1", configs); err == nil {
			t.Error("expected an error, got nil")
		}
	})

	t.Run("Delete failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM host_static_network_configs").
			WithArgs("infra-1").
			WillReturnError(fmt.Errorf("database error"))
		mock.ExpectRollback()

		if err := repo.Save(ctx, "infra-1", configs); err == nil {
			t.Error("expected an error, got nil")
		}
	})

	t.Run("Commit failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM host_static_network_configs").
			WithArgs("infra-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit().WillReturnError(fmt.Errorf("commit error"))

		if err := repo.Save(ctx, "infra-1", nil); err == nil {
			t.Error("expected an error, got nil")
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %s", err)
	}
}

func TestLocate(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer mockDB.Close()

	repo := NewStaticNetworkRepository(db.NewDB(mockDB))
	ctx := context.Background()

	t.Run("Known host group", func(t *testing.T) {
		mock.ExpectQuery("SELECT infra_env_id FROM host_groups").
			WithArgs("cluster-1").
			WillReturnRows(sqlmock.NewRows([]string{"infra_env_id"}).AddRow("infra-1"))

		key, err := repo.Locate(ctx, "cluster-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != "infra-1" {
			t.Errorf("expected infra-1, got %s", key)
		}
	})

	t.Run("Unknown host group", func(t *testing.T) {
		mock.ExpectQuery("SELECT infra_env_id FROM host_groups").
			WithArgs("cluster-2").
			WillReturnError(sql.ErrNoRows)

		if _, err := repo.Locate(ctx, "cluster-2"); err == nil {
			t.Error("expected an error, got nil")
		}
	})
}
