package db

import (
	"fmt"
)

// Dialect identifies a supported database family.
type Dialect string

const (
	DialectPostgres  Dialect = "postgresql"
	DialectSQLServer Dialect = "sqlserver"
	DialectMySQL     Dialect = "mysql"
)

// Descriptor holds the connection parameters for a target database. A
// descriptor arrives with every API call; it is not persisted server-side.
type Descriptor struct {
	Host     string  `json:"host" validate:"required"`
	Port     int     `json:"port" validate:"required,min=1,max=65535"`
	Database string  `json:"database" validate:"required"`
	Username string  `json:"username" validate:"required"`
	Password string  `json:"password" validate:"required"`
	Schema   string  `json:"schema,omitempty"`
	Dialect  Dialect `json:"databaseType" validate:"required,oneof=postgresql sqlserver mysql"`
}

// Key returns the pool-cache identity for the descriptor. The password is
// deliberately excluded so a credential rotation against the same endpoint
// keeps hitting the cached pool until it is closed explicitly.
func (d Descriptor) Key() string {
	return fmt.Sprintf("%s:%s:%d:%s:%s", d.Dialect, d.Host, d.Port, d.Database, d.Username)
}

// Endpoint returns a loggable identity without credentials.
func (d Descriptor) Endpoint() string {
	return fmt.Sprintf("%s:%d/%s", d.Host, d.Port, d.Database)
}

// TestResult is the envelope returned by connection tests. Failures are
// reported inside the envelope, never as an error.
type TestResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ServerVersion string `json:"serverVersion,omitempty"`
}
