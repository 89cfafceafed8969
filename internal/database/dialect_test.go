package database

import (
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "sqlite"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if result {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "postgres"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "mysql"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO users (name, email) VALUES (?, ?)",
			expected: "INSERT INTO users (name, email) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE users SET name = ?, email = ? WHERE id = ?",
			expected: "UPDATE users SET name = ?, email = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestInsertIgnore(t *testing.T) {
	insert := "INSERT INTO user_badges (user_id, badge) VALUES (?, ?)"

	tests := []struct {
		name     string
		dialect  Dialect
		expected string
	}{
		{
			name:     "SQLite",
			dialect:  NewSQLiteDialect(),
			expected: "INSERT OR IGNORE INTO user_badges (user_id, badge) VALUES (?, ?)",
		},
		{
			name:     "PostgreSQL",
			dialect:  NewPostgresDialect(),
			expected: "INSERT INTO user_badges (user_id, badge) VALUES (?, ?) ON CONFLICT DO NOTHING",
		},
		{
			name:     "MySQL",
			dialect:  NewMySQLDialect(),
			expected: "INSERT IGNORE INTO user_badges (user_id, badge) VALUES (?, ?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.InsertIgnore(insert)
			if result != tt.expected {
				t.Errorf("InsertIgnore() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestForUpdate(t *testing.T) {
	if got := NewSQLiteDialect().ForUpdate(); got != "" {
		t.Errorf("SQLite ForUpdate() = %q, want empty", got)
	}
	if got := NewPostgresDialect().ForUpdate(); got != " FOR UPDATE" {
		t.Errorf("PostgreSQL ForUpdate() = %q", got)
	}
	if got := NewMySQLDialect().ForUpdate(); got != " FOR UPDATE" {
		t.Errorf("MySQL ForUpdate() = %q", got)
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		config   DialectConfig
		expected string
	}{
		{
			name:     "SQLite path",
			dialect:  NewSQLiteDialect(),
			config:   DialectConfig{Path: "ilmkids.db"},
			expected: "ilmkids.db?_txlock=immediate&_busy_timeout=5000&_foreign_keys=on",
		},
		{
			name:     "SQLite path with options",
			dialect:  NewSQLiteDialect(),
			config:   DialectConfig{Path: "file:test.db?cache=shared"},
			expected: "file:test.db?cache=shared&_txlock=immediate&_busy_timeout=5000&_foreign_keys=on",
		},
		{
			name:     "PostgreSQL passthrough",
			dialect:  NewPostgresDialect(),
			config:   DialectConfig{URL: "postgres://u:p@localhost/ilmkids?sslmode=disable"},
			expected: "postgres://u:p@localhost/ilmkids?sslmode=disable",
		},
		{
			name:     "MySQL parses time",
			dialect:  NewMySQLDialect(),
			config:   DialectConfig{URL: "u:p@tcp(localhost:3306)/ilmkids"},
			expected: "u:p@tcp(localhost:3306)/ilmkids?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.DSN(tt.config)
			if result != tt.expected {
				t.Errorf("DSN() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestNewDialect(t *testing.T) {
	tests := []struct {
		dbType  string
		driver  string
		wantErr bool
	}{
		{dbType: "sqlite", driver: "sqlite3"},
		{dbType: "postgresql", driver: "postgres"},
		{dbType: "MySQL", driver: "mysql"},
		{dbType: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			d, err := NewDialect(tt.dbType)
			if tt.wantErr {
				if err == nil {
					t.Error("NewDialect() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDialect() error = %v", err)
			}
			if d.DriverName() != tt.driver {
				t.Errorf("DriverName() = %v, want %v", d.DriverName(), tt.driver)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	content := `-- header comment
CREATE TABLE a (id INTEGER);

-- second
CREATE TABLE b (id INTEGER);
`
	stmts := SplitStatements(content)
	if len(stmts) != 2 {
		t.Fatalf("SplitStatements() returned %d statements, want 2", len(stmts))
	}
	if stmts[0] != "CREATE TABLE a (id INTEGER)" {
		t.Errorf("first statement = %q", stmts[0])
	}
}
