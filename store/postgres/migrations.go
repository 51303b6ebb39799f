package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Portier store (PostgreSQL).
var Migrations = migrate.NewGroup("portier")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_org_units",
			Version: "20250601000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS portier_org_units (
    id              TEXT PRIMARY KEY,
    kind            TEXT NOT NULL,
    name            TEXT NOT NULL,
    parent_id       TEXT REFERENCES portier_org_units(id),
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_portier_units_kind ON portier_org_units (kind);
CREATE INDEX IF NOT EXISTS idx_portier_units_parent ON portier_org_units (parent_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS portier_org_units`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_direct_assignments",
			Version: "20250601000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS portier_direct_assignments (
    id              TEXT PRIMARY KEY,
    user_id         TEXT NOT NULL,
    unit_kind       TEXT NOT NULL,
    unit_id         TEXT NOT NULL,
    granted_by      TEXT,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(user_id, unit_id)
);

CREATE INDEX IF NOT EXISTS idx_portier_direct_user ON portier_direct_assignments (user_id);
CREATE INDEX IF NOT EXISTS idx_portier_direct_unit ON portier_direct_assignments (unit_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS portier_direct_assignments`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_path_assignments",
			Version: "20250601000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS portier_path_assignments (
    id              TEXT PRIMARY KEY,
    user_id         TEXT NOT NULL,
    pole_id         TEXT NOT NULL,
    direction_id    TEXT,
    service_id      TEXT,
    granted_by      TEXT,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(user_id, pole_id, direction_id, service_id)
);

CREATE INDEX IF NOT EXISTS idx_portier_path_user ON portier_path_assignments (user_id);
CREATE INDEX IF NOT EXISTS idx_portier_path_pole ON portier_path_assignments (pole_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS portier_path_assignments`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_projects",
			Version: "20250601000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS portier_projects (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    pole_id         TEXT,
    direction_id    TEXT,
    service_id      TEXT,
    owner_id        TEXT,
    project_manager TEXT NOT NULL DEFAULT '',
    manager_id      TEXT,
    status          TEXT NOT NULL DEFAULT 'active',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_portier_projects_pole ON portier_projects (pole_id);
CREATE INDEX IF NOT EXISTS idx_portier_projects_direction ON portier_projects (direction_id);
CREATE INDEX IF NOT EXISTS idx_portier_projects_service ON portier_projects (service_id);
CREATE INDEX IF NOT EXISTS idx_portier_projects_owner ON portier_projects (owner_id);
CREATE INDEX IF NOT EXISTS idx_portier_projects_manager ON portier_projects (manager_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS portier_projects`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_project_members",
			Version: "20250601000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS portier_project_members (
    project_id      TEXT NOT NULL REFERENCES portier_projects(id) ON DELETE CASCADE,
    user_id         TEXT NOT NULL,
    added_by        TEXT,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    PRIMARY KEY (project_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_portier_members_user ON portier_project_members (user_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS portier_project_members`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_profiles",
			Version: "20250601000006",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS portier_profiles (
    id              TEXT PRIMARY KEY,
    email           TEXT NOT NULL,
    display_name    TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(email)
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS portier_profiles`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_role_grants",
			Version: "20250601000007",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS portier_role_grants (
    user_id         TEXT NOT NULL,
    label           TEXT NOT NULL,

    PRIMARY KEY (user_id, label)
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS portier_role_grants`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_decision_logs",
			Version: "20250601000008",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS portier_decision_logs (
    id              TEXT PRIMARY KEY,
    user_id         TEXT NOT NULL,
    action          TEXT NOT NULL,
    project_id      TEXT,
    decision        TEXT NOT NULL,
    reason          TEXT NOT NULL DEFAULT '',
    eval_time_ns    BIGINT NOT NULL DEFAULT 0,
    request_ip      TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_portier_logs_user ON portier_decision_logs (user_id);
CREATE INDEX IF NOT EXISTS idx_portier_logs_project ON portier_decision_logs (project_id);
CREATE INDEX IF NOT EXISTS idx_portier_logs_created ON portier_decision_logs (created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS portier_decision_logs`)
				return err
			},
		},
	)
}
