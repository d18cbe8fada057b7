// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	migrate "github.com/rubenv/sql-migrate"
)

// Migration of the documents table. All containers share one table keyed
// by (container, tenant_id, id); natural_key carries the tenant-unique
// attribute of containers that have one.
func Migration() migrate.MemoryMigrationSource {
	return migrate.MemoryMigrationSource{
		Migrations: []*migrate.Migration{
			{
				Id: "documents_01",
				Up: []string{
					`CREATE TABLE IF NOT EXISTS documents (
						container   VARCHAR(64) NOT NULL,
						tenant_id   VARCHAR(254) NOT NULL,
						id          VARCHAR(254) NOT NULL,
						natural_key VARCHAR(254),
						doc         JSONB NOT NULL,
						PRIMARY KEY (container, tenant_id, id)
					)`,
					`CREATE UNIQUE INDEX IF NOT EXISTS documents_natural_key_idx
						ON documents (container, tenant_id, natural_key)
						WHERE natural_key IS NOT NULL AND natural_key <> ''`,
					`CREATE INDEX IF NOT EXISTS documents_doc_idx
						ON documents USING GIN (doc jsonb_path_ops)`,
				},
				Down: []string{
					`DROP TABLE documents`,
				},
			},
		},
	}
}
