package database

import (
	"github.com/Lumos-Labs-HQ/whseed/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/whseed/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/whseed/internal/database/sqlite"
	"github.com/Lumos-Labs-HQ/whseed/internal/types"
)

func NewAdapter(provider string, tables types.Tables) DatabaseAdapter {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New(tables)
	case "mysql":
		return mysql.New(tables)
	case "sqlite", "sqlite3":
		return sqlite.New(tables)
	default:
		return postgres.New(tables)
	}
}
