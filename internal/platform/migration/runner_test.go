// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/portal/internal/platform/migration"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/portal", "pgx5://u:p@db:5432/portal"},
		{"postgresql://u:p@db/portal?sslmode=disable", "pgx5://u:p@db/portal?sslmode=disable"},
		{"pgx5://u:p@db/portal", "pgx5://u:p@db/portal"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, migration.ToPgx5DSN(tt.in), tt.in)
	}
}
